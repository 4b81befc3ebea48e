package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popays/backend/app/catalog"
	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/repositories"
	"github.com/popays/backend/app/services"
	"github.com/popays/backend/config"
	"github.com/popays/backend/pkg/database"
	"github.com/popays/backend/pkg/telegram"
)

const adminID int64 = 123456

// apiCall is one captured Bot API request.
type apiCall struct {
	method string
	params map[string]interface{}
}

func fakeAPI(t *testing.T) (*httptest.Server, *[]apiCall) {
	t.Helper()
	var calls []apiCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		var params map[string]interface{}
		json.NewDecoder(r.Body).Decode(&params)
		calls = append(calls, apiCall{method: method, params: params})

		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"result": map[string]interface{}{
				"message_id": 1,
				"chat":       map[string]interface{}{"id": adminID},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestBot(t *testing.T) (*Bot, *[]apiCall, *repositories.OrderRepository, *repositories.MessageRepository) {
	t.Helper()

	db, err := database.Connect("sqlite", filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Order{}, &models.ContactMessage{},
		&models.Product{}, &models.Category{},
	))

	orders := repositories.NewOrderRepository(db)
	messages := repositories.NewMessageRepository(db)
	products := repositories.NewProductRepository(db)
	categories := repositories.NewCategoryRepository(db)
	cat := catalog.NewDB(products, categories)

	srv, calls := fakeAPI(t)
	cfg := &config.Config{
		AdminChatID:    "123456",
		RestaurantName: "Popays Fast Food",
		Branches:       map[string]string{"kosmonavt": "Kosmonavt"},
	}
	b, err := New(cfg, telegram.NewClient("TOKEN", srv.URL), services.NewStatsService(orders, messages, cat), cat)
	require.NoError(t, err)
	return b, calls, orders, messages
}

func messageUpdate(userID, chatID int64, text string) telegram.Update {
	return telegram.Update{
		Message: &telegram.Message{
			From: &telegram.User{ID: userID},
			Chat: telegram.Chat{ID: chatID},
			Text: text,
		},
	}
}

func callbackUpdate(userID int64, data string) telegram.Update {
	return telegram.Update{
		CallbackQuery: &telegram.CallbackQuery{
			ID:   "cb1",
			From: telegram.User{ID: userID},
			Data: data,
			Message: &telegram.Message{
				MessageID: 10,
				Chat:      telegram.Chat{ID: adminID},
			},
		},
	}
}

func TestStartCommandIsPublic(t *testing.T) {
	b, calls, _, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), messageUpdate(999, 999, "/start"))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "sendMessage", call.method)
	assert.Contains(t, call.params["text"], "Popays Fast Food Bot")
}

func TestWhitespaceMessageIsIgnored(t *testing.T) {
	b, calls, _, _ := newTestBot(t)

	for _, text := range []string{" ", "   ", "\n", "\t \n"} {
		assert.NotPanics(t, func() {
			b.HandleUpdate(context.Background(), messageUpdate(999, 999, text))
		}, "text %q", text)
	}
	assert.Empty(t, *calls)
}

func TestAdminCommandDeniedForStranger(t *testing.T) {
	b, calls, _, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), messageUpdate(999, 999, "/admin"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "sendMessage", (*calls)[0].method)
	assert.Equal(t, "❌ Sizda admin huquqi yo'q!", (*calls)[0].params["text"])
}

func TestAdminCommandShowsPanel(t *testing.T) {
	b, calls, _, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), messageUpdate(adminID, adminID, "/admin"))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Contains(t, call.params["text"], "Admin Panel")
	assert.NotNil(t, call.params["reply_markup"])
}

func TestEveryCallbackDeniedForStranger(t *testing.T) {
	b, calls, _, _ := newTestBot(t)

	for _, data := range []string{"admin_stats", "admin_orders", "admin_messages", "admin_products", "back_to_admin"} {
		*calls = nil
		b.HandleUpdate(context.Background(), callbackUpdate(999, data))

		require.Len(t, *calls, 1, "callback %s", data)
		call := (*calls)[0]
		assert.Equal(t, "answerCallbackQuery", call.method)
		assert.Equal(t, "❌ Sizda admin huquqi yo'q!", call.params["text"])
		assert.Equal(t, true, call.params["show_alert"])
	}
}

func TestAdminStatsCallback(t *testing.T) {
	b, calls, orders, messages := newTestBot(t)

	require.NoError(t, orders.Create(&models.Order{
		Branch: "kosmonavt", CustomerName: "Aziz", CustomerPhone: "+998901234567",
		CustomerLocation: "Chilonzor", Items: models.OrderItems{{Name: "Cola", Quantity: 1, Total: 12000}},
		Total: 12000,
	}))
	require.NoError(t, messages.Create(&models.ContactMessage{
		CustomerName: "Dilnoza", CustomerPhone: "+998935551122", Message: "Salom",
	}))

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, "admin_stats"))

	require.Len(t, *calls, 2)
	assert.Equal(t, "answerCallbackQuery", (*calls)[0].method)
	edit := (*calls)[1]
	assert.Equal(t, "editMessageText", edit.method)
	text := edit.params["text"].(string)
	assert.Contains(t, text, "Jami buyurtmalar:</b> 1")
	assert.Contains(t, text, "Kutilayotgan:</b> 1")
	assert.Contains(t, text, "Yangi xabarlar:</b> 1")
}

func TestAdminOrdersEmptyAndRecent(t *testing.T) {
	b, calls, orders, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, "admin_orders"))
	require.Len(t, *calls, 2)
	assert.Equal(t, "📦 Hozircha buyurtmalar yo'q.", (*calls)[1].params["text"])

	for i := 0; i < 7; i++ {
		require.NoError(t, orders.Create(&models.Order{
			Branch: "kosmonavt", CustomerName: "Aziz", CustomerPhone: "+998901234567",
			CustomerLocation: "Chilonzor", Items: models.OrderItems{{Name: "Cola", Quantity: 1, Total: 12000}},
			Total: 12000,
		}))
	}

	*calls = nil
	b.HandleUpdate(context.Background(), callbackUpdate(adminID, "admin_orders"))
	require.Len(t, *calls, 2)
	text := (*calls)[1].params["text"].(string)
	assert.Contains(t, text, "So'nggi buyurtmalar")
	// Totals carry thousands separators.
	assert.Contains(t, text, "💰 12,000 so'm")
	// Only the newest five are listed.
	assert.Equal(t, 5, strings.Count(text, "⏳ <b>#"))
	assert.NotContains(t, text, "#1<")
}

func TestAdminMessagesTruncates(t *testing.T) {
	b, calls, _, messages := newTestBot(t)

	long := strings.Repeat("juda uzun xabar ", 10)
	require.NoError(t, messages.Create(&models.ContactMessage{
		CustomerName: "Dilnoza", CustomerPhone: "+998935551122", Message: long,
	}))

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, "admin_messages"))
	require.Len(t, *calls, 2)
	text := (*calls)[1].params["text"].(string)
	assert.Contains(t, text, truncate(long, 50)+"...")
	assert.NotContains(t, text, long)
}

func TestBackToAdminRestoresPanel(t *testing.T) {
	b, calls, _, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, "back_to_admin"))
	require.Len(t, *calls, 2)
	edit := (*calls)[1]
	assert.Equal(t, "editMessageText", edit.method)
	assert.Contains(t, edit.params["text"], "Admin Panel")
	assert.NotNil(t, edit.params["reply_markup"])
}

func TestNotifySendsToAdminChat(t *testing.T) {
	b, calls, _, _ := newTestBot(t)

	require.NoError(t, b.Notify(context.Background(), "🍔 YANGI BUYURTMA #1"))
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "sendMessage", call.method)
	assert.EqualValues(t, adminID, call.params["chat_id"])
	assert.Equal(t, "HTML", call.params["parse_mode"])
}

func TestNewRejectsBadAdminID(t *testing.T) {
	_, err := New(&config.Config{AdminChatID: "not-a-number"}, telegram.NewClient("T", ""), nil, nil)
	assert.Error(t, err)
}
