package services

import (
	"github.com/popays/backend/app/catalog"
	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/repositories"
)

// Stats are the counters shown on the admin panel.
type Stats struct {
	Orders        int64
	PendingOrders int64
	Messages      int64
	NewMessages   int64
	Products      int64
}

// StatsService aggregates admin panel numbers from the store and the
// catalogue.
type StatsService struct {
	orders   *repositories.OrderRepository
	messages *repositories.MessageRepository
	catalog  catalog.Catalog
}

func NewStatsService(
	orders *repositories.OrderRepository,
	messages *repositories.MessageRepository,
	cat catalog.Catalog,
) *StatsService {
	return &StatsService{orders: orders, messages: messages, catalog: cat}
}

// Totals collects the current counters.
func (s *StatsService) Totals() (Stats, error) {
	var st Stats
	var err error

	if st.Orders, err = s.orders.Count(); err != nil {
		return st, err
	}
	if st.PendingOrders, err = s.orders.CountByStatus(models.OrderStatusPending); err != nil {
		return st, err
	}
	if st.Messages, err = s.messages.Count(); err != nil {
		return st, err
	}
	if st.NewMessages, err = s.messages.CountByStatus(models.MessageStatusNew); err != nil {
		return st, err
	}

	products, err := s.catalog.Products("")
	if err != nil {
		return st, err
	}
	st.Products = int64(len(products))
	return st, nil
}

// RecentOrders returns the newest n orders for the admin panel.
func (s *StatsService) RecentOrders(n int) ([]models.Order, error) {
	return s.orders.Recent(n)
}

// RecentMessages returns the newest n contact messages for the admin panel.
func (s *StatsService) RecentMessages(n int) ([]models.ContactMessage, error) {
	return s.messages.Recent(n)
}
