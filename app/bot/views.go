package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/services"
	"github.com/popays/backend/pkg/telegram"
)

// recentLimit is how many orders/messages the panel lists.
const recentLimit = 5

const panelTimeLayout = "02.01.2006 15:04"

// listTimeLayout matches the truncated timestamps of the panel lists.
const listTimeLayout = "2006-01-02 15:04"

func adminPanelText() string {
	return "🔧 <b>Admin Panel</b>\n\nQuyidagi bo'limlardan birini tanlang:"
}

func adminPanelKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "📊 Statistika", CallbackData: "admin_stats"}},
			{{Text: "📦 Buyurtmalar", CallbackData: "admin_orders"}},
			{{Text: "✉️ Xabarlar", CallbackData: "admin_messages"}},
			{{Text: "🍽️ Mahsulotlar", CallbackData: "admin_products"}},
		},
	}
}

func backKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "🔙 Orqaga", CallbackData: "back_to_admin"}},
		},
	}
}

func (b *Bot) statsText() (string, error) {
	st, err := b.stats.Totals()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"📊 <b>Statistika</b>\n\n"+
			"📦 <b>Jami buyurtmalar:</b> %d\n"+
			"⏳ <b>Kutilayotgan:</b> %d\n"+
			"✉️ <b>Jami xabarlar:</b> %d\n"+
			"🆕 <b>Yangi xabarlar:</b> %d\n"+
			"🍽️ <b>Mahsulotlar:</b> %d\n\n"+
			"📅 <b>Oxirgi yangilanish:</b> %s",
		st.Orders, st.PendingOrders, st.Messages, st.NewMessages, st.Products,
		time.Now().Format(panelTimeLayout),
	), nil
}

func (b *Bot) ordersText() (string, error) {
	orders, err := b.stats.RecentOrders(recentLimit)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "📦 Hozircha buyurtmalar yo'q.", nil
	}

	var sb strings.Builder
	sb.WriteString("📦 <b>So'nggi buyurtmalar:</b>\n\n")
	for _, o := range orders {
		fmt.Fprintf(&sb,
			"%s <b>#%d</b>\n👤 %s\n📞 %s\n🏪 %s\n💰 %s so'm\n📅 %s\n\n",
			orderStatusGlyph(o.Status),
			o.ID,
			o.CustomerName,
			o.CustomerPhone,
			b.cfg.BranchName(o.Branch),
			services.FormatAmount(o.Total),
			o.CreatedAt.Format(listTimeLayout),
		)
	}
	return sb.String(), nil
}

func (b *Bot) messagesText() (string, error) {
	msgs, err := b.stats.RecentMessages(recentLimit)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "✉️ Hozircha xabarlar yo'q.", nil
	}

	var sb strings.Builder
	sb.WriteString("✉️ <b>So'nggi xabarlar:</b>\n\n")
	for _, m := range msgs {
		fmt.Fprintf(&sb,
			"%s <b>#%d</b>\n👤 %s\n📞 %s\n💬 %s...\n📅 %s\n\n",
			messageStatusGlyph(m.Status),
			m.ID,
			m.CustomerName,
			m.CustomerPhone,
			truncate(m.Message, 50),
			m.CreatedAt.Format(listTimeLayout),
		)
	}
	return sb.String(), nil
}

func (b *Bot) productsText() (string, error) {
	products, err := b.catalog.Products("")
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "🍽️ Hozircha mahsulotlar yo'q.", nil
	}

	var sb strings.Builder
	sb.WriteString("🍽️ <b>Mahsulotlar:</b>\n\n")
	for _, p := range products {
		fmt.Fprintf(&sb, "• <b>%s</b> - %d so'm (%s, %d dona)\n", p.Name, p.Price, p.Category, p.Stock)
	}
	return sb.String(), nil
}

func orderStatusGlyph(status string) string {
	switch status {
	case models.OrderStatusPending:
		return "⏳"
	case models.OrderStatusCompleted:
		return "✅"
	default:
		return "❌"
	}
}

func messageStatusGlyph(status string) string {
	switch status {
	case models.MessageStatusNew:
		return "🆕"
	case models.MessageStatusRead:
		return "✅"
	default:
		return "📝"
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
