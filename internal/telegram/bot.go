package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"diet-planner/internal/app"
	"diet-planner/internal/config"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/shared"
	"diet-planner/internal/spoonacular"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// planTimeout bounds one generation run started from a chat message.
const planTimeout = 2 * time.Minute

// Service is what the bot needs from the application.
type Service interface {
	Plan(ctx context.Context, pd nutrition.PersonalData, flags nutrition.SymptomFlags) shared.Result[*app.PlanResult]
	Recipe(ctx context.Context, id int) shared.Result[*spoonacular.Recipe]
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot wraps the Telegram API and the planner service.
type Bot struct {
	api     *tgbotapi.BotAPI
	out     sender
	service Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, service Service, logger *zap.Logger) (*Bot, error) {
	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	webhookURL := cfg.TelegramWebhookURL
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook for %s: %w", webhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	logger.Info("webhook set", zap.String("description", resp.Description))

	return &Bot{
		api:     bot,
		out:     bot,
		service: service,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// RegisterHandlers registers the webhook handler on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("error parsing update", zap.Error(err))
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", update.Message.From.ID),
			zap.String("username", update.Message.From.UserName))
		return
	}

	go b.processMessage(update.Message)
}

// isAllowed reports whether userID may use the bot. An empty allow-list
// serves everyone.
func (b *Bot) isAllowed(userID int64) bool {
	if len(b.cfg.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	command, args := splitCommand(msg.Text)
	switch command {
	case "/plan":
		b.handlePlanRequest(msg, args)
	case "/recipe":
		b.handleRecipeRequest(msg, args)
	case "/metrics":
		b.handleMetricsRequest(msg)
	default:
		b.sendMarkdown(msg.Chat.ID, usageText)
	}
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message, args string) {
	pd, flags, err := parsePlanArgs(args)
	if err != nil {
		b.sendMarkdown(msg.Chat.ID, invalidInputText(err))
		return
	}

	pending, _ := formatPlanMarkdownParts(shared.Pending[*app.PlanResult]())
	sentMsg, err := b.sendMarkdown(msg.Chat.ID, pending)
	if err != nil {
		b.logger.Error("failed to send initial reply", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), planTimeout)
	defer cancel()

	res := b.service.Plan(ctx, pd, flags)
	if res.IsFailure() {
		b.logger.Warn("plan request failed", zap.Int64("chat_id", msg.Chat.ID), zap.Error(res.Err))
	}

	summary, plan := formatPlanMarkdownParts(res)
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, summary)
	edit.ParseMode = tgbotapi.ModeMarkdown
	b.out.Send(edit)

	if plan != "" {
		b.sendMarkdown(msg.Chat.ID, plan)
	}
}

func (b *Bot) handleRecipeRequest(msg *tgbotapi.Message, args string) {
	id, err := parseRecipeArgs(args)
	if err != nil {
		b.sendMarkdown(msg.Chat.ID, invalidInputText(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), planTimeout)
	defer cancel()

	b.sendMarkdown(msg.Chat.ID, formatRecipeMarkdown(b.service.Recipe(ctx, id)))
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From == nil || msg.From.ID != b.cfg.AdminTelegramID {
		b.out.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.sendMarkdown(msg.Chat.ID, formatHealthMarkdown())
}

func (b *Bot) sendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	return b.out.Send(m)
}
