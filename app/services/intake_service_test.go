package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/repositories"
	"github.com/popays/backend/config"
	"github.com/popays/backend/pkg/database"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultBranch: "kosmonavt",
		Branches:      map[string]string{"kosmonavt": "Kosmonavt", "derizli": "Derizli Kosmonavt"},
		NotifyTimeout: time.Second,
	}
}

func newIntake(t *testing.T, n Notifier) (*IntakeService, *repositories.OrderRepository, *repositories.MessageRepository) {
	t.Helper()

	db, err := database.Connect("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.ContactMessage{}))

	orders := repositories.NewOrderRepository(db)
	messages := repositories.NewMessageRepository(db)
	return NewIntakeService(testConfig(), orders, messages, n), orders, messages
}

func TestIntakeOrderPersistsAndNotifies(t *testing.T) {
	n := &fakeNotifier{}
	svc, orders, _ := newIntake(t, n)

	order, err := svc.IntakeOrder(context.Background(), OrderInput{
		Branch: "derizli",
		Customer: OrderCustomer{
			Name:     "Aziz",
			Phone:    "+998901234567",
			Location: "Chilonzor 9",
		},
		Items: []OrderItemInput{
			{Name: "Chizburger", Quantity: 2, Total: 56000},
		},
		Total: 56000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, "pending", order.Status)
	assert.NotNil(t, order.NotifiedAt)

	require.Len(t, n.sent, 1)
	text := n.sent[0]
	assert.Contains(t, text, "YANGI BUYURTMA")
	assert.Contains(t, text, "Derizli Kosmonavt")
	assert.Contains(t, text, "Aziz")
	assert.Contains(t, text, "• Chizburger x2 - 56,000 so'm")
	assert.Contains(t, text, "Jami:</b> 56,000 so'm")

	unnotified, err := orders.Unnotified()
	require.NoError(t, err)
	assert.Empty(t, unnotified)
}

func TestIntakeOrderDefaultsBranch(t *testing.T) {
	n := &fakeNotifier{}
	svc, _, _ := newIntake(t, n)

	order, err := svc.IntakeOrder(context.Background(), OrderInput{
		Customer: OrderCustomer{Name: "Olim", Phone: "+998900000000", Location: "Yunusobod"},
		Items:    []OrderItemInput{{Name: "Cola", Quantity: 1, Total: 12000}},
		Total:    12000,
	})
	require.NoError(t, err)
	assert.Equal(t, "kosmonavt", order.Branch)
	assert.Contains(t, n.sent[0], "Kosmonavt")
}

func TestIntakeOrderSurvivesNotifyFailure(t *testing.T) {
	n := &fakeNotifier{err: errors.New("gateway down")}
	svc, orders, _ := newIntake(t, n)

	order, err := svc.IntakeOrder(context.Background(), OrderInput{
		Customer: OrderCustomer{Name: "Aziz", Phone: "+998901234567", Location: "Chilonzor"},
		Items:    []OrderItemInput{{Name: "Fri", Quantity: 1, Total: 15000}},
		Total:    15000,
	})
	require.NoError(t, err, "persistence must not depend on the gateway")
	assert.Nil(t, order.NotifiedAt)

	unnotified, err := orders.Unnotified()
	require.NoError(t, err)
	require.Len(t, unnotified, 1)
	assert.Equal(t, order.OrderID, unnotified[0].OrderID)
}

func TestIntakeContactOptionalEmail(t *testing.T) {
	n := &fakeNotifier{}
	svc, _, _ := newIntake(t, n)

	msg, err := svc.IntakeContact(context.Background(), ContactInput{
		Customer: ContactCustomer{Name: "Dilnoza", Phone: "+998935551122"},
		Message:  "Yetkazib berish qancha vaqt oladi?",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", msg.Status)

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "YANGI XABAR")
	assert.Contains(t, n.sent[0], "Email:</b> Kiritilmagan")
}

func TestNotifyUnnotifiedReconciles(t *testing.T) {
	down := &fakeNotifier{err: errors.New("gateway down")}
	svc, orders, messages := newIntake(t, down)

	_, err := svc.IntakeOrder(context.Background(), OrderInput{
		Customer: OrderCustomer{Name: "Aziz", Phone: "+998901234567", Location: "Chilonzor"},
		Items:    []OrderItemInput{{Name: "Hotdog", Quantity: 1, Total: 18000}},
		Total:    18000,
	})
	require.NoError(t, err)
	_, err = svc.IntakeContact(context.Background(), ContactInput{
		Customer: ContactCustomer{Name: "Dilnoza", Phone: "+998935551122", Email: "d@example.com"},
		Message:  "Salom",
	})
	require.NoError(t, err)

	// Gateway comes back; reconciliation drains the backlog.
	up := &fakeNotifier{}
	svc2 := NewIntakeService(testConfig(), orders, messages, up)
	require.NoError(t, svc2.NotifyUnnotified(context.Background()))
	assert.Len(t, up.sent, 2)

	stillOrders, err := orders.Unnotified()
	require.NoError(t, err)
	assert.Empty(t, stillOrders)
	stillMsgs, err := messages.Unnotified()
	require.NoError(t, err)
	assert.Empty(t, stillMsgs)

	// Second run has nothing left to send.
	up.sent = nil
	require.NoError(t, svc2.NotifyUnnotified(context.Background()))
	assert.Empty(t, up.sent)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "950", FormatAmount(950))
	assert.Equal(t, "28,000", FormatAmount(28000))
	assert.Equal(t, "1,250,000", FormatAmount(1250000))
}
