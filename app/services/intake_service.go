// Package services implements the intake pipeline: persist incoming
// orders and contact messages, then alert the admin chat.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/repositories"
	"github.com/popays/backend/config"
	"github.com/popays/backend/pkg/logger"
	"github.com/popays/backend/pkg/metrics"
)

// Notifier delivers a rendered alert to the admin chat.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// OrderCustomer is the customer block of an order payload.
type OrderCustomer struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// OrderItemInput is one line item of an order payload.
type OrderItemInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Total    int    `json:"total" validate:"gte=0"`
}

// MapData carries optional map context submitted with the order.
type MapData struct {
	Coordinates map[string]interface{} `json:"coordinates"`
	MapLinks    map[string]string      `json:"mapLinks"`
}

// OrderInput is the order payload received over the webhook. Total is
// caller-supplied and stored as-is.
type OrderInput struct {
	Branch   string           `json:"branch"`
	Customer OrderCustomer    `json:"customer" validate:"required"`
	Items    []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Total    int              `json:"total" validate:"gte=0"`
	MapData  *MapData         `json:"mapData"`
}

// ContactCustomer is the customer block of a contact payload.
// Email is optional.
type ContactCustomer struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ContactInput is the contact payload received over the webhook.
type ContactInput struct {
	Customer ContactCustomer `json:"customer" validate:"required"`
	Message  string          `json:"message" validate:"required"`
}

// IntakeService persists intake payloads and sends admin alerts.
// Persistence is authoritative: a failed alert never fails the intake,
// it only leaves the record unnotified for later reconciliation.
type IntakeService struct {
	cfg      *config.Config
	orders   *repositories.OrderRepository
	messages *repositories.MessageRepository
	notifier Notifier
}

func NewIntakeService(
	cfg *config.Config,
	orders *repositories.OrderRepository,
	messages *repositories.MessageRepository,
	notifier Notifier,
) *IntakeService {
	return &IntakeService{cfg: cfg, orders: orders, messages: messages, notifier: notifier}
}

// IntakeOrder persists the order and alerts the admin chat.
func (s *IntakeService) IntakeOrder(ctx context.Context, in OrderInput) (*models.Order, error) {
	branch := in.Branch
	if branch == "" {
		branch = s.cfg.DefaultBranch
	}

	items := make(models.OrderItems, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.OrderItem{Name: it.Name, Quantity: it.Quantity, Total: it.Total})
	}

	order := &models.Order{
		Branch:           branch,
		CustomerName:     in.Customer.Name,
		CustomerPhone:    in.Customer.Phone,
		CustomerLocation: in.Customer.Location,
		Items:            items,
		Total:            in.Total,
		Coordinates:      coordinates(in.MapData),
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	log := logger.WithCtx(ctx)
	log.Info("order received", "order_id", order.OrderID, "branch", branch, "total", order.Total)

	s.notify(ctx, s.renderOrder(order, in.MapData), func(at time.Time) error {
		order.NotifiedAt = &at
		return s.orders.MarkNotified(order.ID, at)
	})
	return order, nil
}

// IntakeContact persists the contact message and alerts the admin chat.
func (s *IntakeService) IntakeContact(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		CustomerName:  in.Customer.Name,
		CustomerPhone: in.Customer.Phone,
		CustomerEmail: in.Customer.Email,
		Message:       in.Message,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}

	log := logger.WithCtx(ctx)
	log.Info("contact message received", "message_id", msg.ID)

	s.notify(ctx, s.renderContact(msg), func(at time.Time) error {
		msg.NotifiedAt = &at
		return s.messages.MarkNotified(msg.ID, at)
	})
	return msg, nil
}

// notify sends text to the admin chat under the configured timeout and
// records the send on success. Failures are logged and counted only.
func (s *IntakeService) notify(ctx context.Context, text string, mark func(time.Time) error) {
	if s.notifier == nil {
		return
	}

	nctx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(nctx, text); err != nil {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		logger.WithCtx(ctx).Warn("admin notification failed", "error", err)
		return
	}

	metrics.NotificationsSent.WithLabelValues("sent").Inc()
	if err := mark(time.Now()); err != nil {
		logger.WithCtx(ctx).Warn("mark notified failed", "error", err)
	}
}

// NotifyUnnotified re-sends alerts for persisted records whose original
// alert never went out. Run at startup, after the gateway is reachable.
func (s *IntakeService) NotifyUnnotified(ctx context.Context) error {
	orders, err := s.orders.Unnotified()
	if err != nil {
		return err
	}
	for i := range orders {
		o := orders[i]
		s.notify(ctx, s.renderOrder(&o, nil), func(at time.Time) error {
			return s.orders.MarkNotified(o.ID, at)
		})
	}

	msgs, err := s.messages.Unnotified()
	if err != nil {
		return err
	}
	for i := range msgs {
		m := msgs[i]
		s.notify(ctx, s.renderContact(&m), func(at time.Time) error {
			return s.messages.MarkNotified(m.ID, at)
		})
	}
	return nil
}

const timeLayout = "02.01.2006 15:04"

func (s *IntakeService) renderOrder(order *models.Order, md *MapData) string {
	var items strings.Builder
	for _, it := range order.Items {
		fmt.Fprintf(&items, "• %s x%d - %s so'm\n", it.Name, it.Quantity, FormatAmount(it.Total))
	}

	var mapLinks strings.Builder
	if md != nil && len(md.MapLinks) > 0 {
		mapLinks.WriteString("\n\n🗺️ <b>Xarita:</b>\n")
		names := make([]string, 0, len(md.MapLinks))
		for name := range md.MapLinks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&mapLinks, "📍 %s: %s\n", titleCase(name), md.MapLinks[name])
		}
	}

	return fmt.Sprintf(
		"🍔 <b>YANGI BUYURTMA #%d</b>\n\n"+
			"🏪 <b>Filial:</b> %s\n"+
			"👤 <b>Mijoz:</b> %s\n"+
			"📞 <b>Telefon:</b> %s\n"+
			"📍 <b>Lokatsiya:</b> %s\n\n"+
			"🛒 <b>Buyurtma:</b>\n%s\n"+
			"💰 <b>Jami:</b> %s so'm%s\n\n"+
			"⏰ <b>Vaqt:</b> %s",
		order.ID,
		s.cfg.BranchName(order.Branch),
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerLocation,
		strings.TrimRight(items.String(), "\n"),
		FormatAmount(order.Total),
		mapLinks.String(),
		order.CreatedAt.Format(timeLayout),
	)
}

func (s *IntakeService) renderContact(msg *models.ContactMessage) string {
	email := msg.CustomerEmail
	if email == "" {
		email = "Kiritilmagan"
	}

	return fmt.Sprintf(
		"✉️ <b>YANGI XABAR #%d</b>\n\n"+
			"👤 <b>Mijoz:</b> %s\n"+
			"📞 <b>Telefon:</b> %s\n"+
			"📧 <b>Email:</b> %s\n\n"+
			"💬 <b>Xabar:</b>\n%s\n\n"+
			"⏰ <b>Vaqt:</b> %s",
		msg.ID,
		msg.CustomerName,
		msg.CustomerPhone,
		email,
		msg.Message,
		msg.CreatedAt.Format(timeLayout),
	)
}

func coordinates(md *MapData) models.JSONMap {
	if md == nil || len(md.Coordinates) == 0 {
		return nil
	}
	return models.JSONMap(md.Coordinates)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatAmount renders an amount with thousands separators: 28000 -> "28,000".
// Shared with the admin panel lists.
func FormatAmount(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
