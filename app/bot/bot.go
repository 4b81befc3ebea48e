// Package bot implements the Telegram admin bot: new-order and
// new-message alerts plus an inline admin panel with stats, recent
// orders, recent messages, and the product list.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/popays/backend/app/catalog"
	"github.com/popays/backend/app/services"
	"github.com/popays/backend/config"
	"github.com/popays/backend/pkg/logger"
	"github.com/popays/backend/pkg/telegram"
)

const deniedText = "❌ Sizda admin huquqi yo'q!"

// Bot handles incoming Telegram updates and delivers admin alerts.
// It implements both telegram.UpdateHandler and services.Notifier.
type Bot struct {
	cfg         *config.Config
	client      *telegram.Client
	stats       *services.StatsService
	catalog     catalog.Catalog
	adminChatID int64
}

// New wires the bot. Fails when ADMIN_CHAT_ID is not a numeric chat id.
func New(cfg *config.Config, client *telegram.Client, stats *services.StatsService, cat catalog.Catalog) (*Bot, error) {
	adminID, err := strconv.ParseInt(cfg.AdminChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bot: invalid ADMIN_CHAT_ID %q: %w", cfg.AdminChatID, err)
	}
	return &Bot{
		cfg:         cfg,
		client:      client,
		stats:       stats,
		catalog:     cat,
		adminChatID: adminID,
	}, nil
}

// Notify sends an alert to the admin chat.
func (b *Bot) Notify(ctx context.Context, text string) error {
	_, err := b.client.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:    b.adminChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	return err
}

// authorized is the single authorization check for every admin surface.
func (b *Bot) authorized(userID int64) bool {
	return strconv.FormatInt(userID, 10) == b.cfg.AdminChatID
}

// HandleUpdate dispatches one incoming update.
func (b *Bot) HandleUpdate(ctx context.Context, upd telegram.Update) {
	switch {
	case upd.Message != nil && upd.Message.Text != "":
		b.handleCommand(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *telegram.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "/start":
		b.sendStart(ctx, msg.Chat.ID)
	case "/admin":
		if msg.From == nil || !b.authorized(msg.From.ID) {
			b.send(ctx, msg.Chat.ID, deniedText, nil)
			return
		}
		b.send(ctx, msg.Chat.ID, adminPanelText(), adminPanelKeyboard())
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if !b.authorized(cb.From.ID) {
		b.answer(ctx, cb.ID, deniedText, true)
		return
	}
	if cb.Message == nil {
		b.answer(ctx, cb.ID, "", false)
		return
	}

	var text string
	var keyboard *telegram.InlineKeyboardMarkup
	var err error

	switch cb.Data {
	case "admin_stats":
		text, err = b.statsText()
	case "admin_orders":
		text, err = b.ordersText()
		keyboard = backKeyboard()
	case "admin_messages":
		text, err = b.messagesText()
		keyboard = backKeyboard()
	case "admin_products":
		text, err = b.productsText()
		keyboard = backKeyboard()
	case "back_to_admin":
		text, keyboard = adminPanelText(), adminPanelKeyboard()
	default:
		b.answer(ctx, cb.ID, "", false)
		return
	}

	if err != nil {
		logger.WithCtx(ctx).Error("admin panel query failed", "action", cb.Data, "error", err)
		b.answer(ctx, cb.ID, "Xatolik yuz berdi", true)
		return
	}

	b.answer(ctx, cb.ID, "", false)
	editErr := b.client.EditMessageText(ctx, telegram.EditMessageTextParams{
		ChatID:      cb.Message.Chat.ID,
		MessageID:   cb.Message.MessageID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
	if editErr != nil {
		logger.WithCtx(ctx).Warn("edit admin panel failed", "error", editErr)
	}
}

func (b *Bot) sendStart(ctx context.Context, chatID int64) {
	text := fmt.Sprintf(
		"🍔 <b>%s Bot</b>\n\n"+
			"Assalomu alaykum! Men %s botiman.\n"+
			"Buyurtma berish va aloqa uchun botdan foydalaning.\n\n"+
			"📱 <b>Buyurtma berish:</b> Web App orqali\n"+
			"✉️ <b>Aloqa:</b> Xabar yuborish\n"+
			"📞 <b>Qo'llab-quvvatlash:</b> 24/7",
		b.cfg.RestaurantName, b.cfg.RestaurantName,
	)
	b.send(ctx, chatID, text, nil)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboardMarkup) {
	_, err := b.client.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
	if err != nil {
		logger.WithCtx(ctx).Warn("send failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answer(ctx context.Context, queryID, text string, alert bool) {
	if err := b.client.AnswerCallbackQuery(ctx, queryID, text, alert); err != nil {
		logger.WithCtx(ctx).Warn("answer callback failed", "error", err)
	}
}
