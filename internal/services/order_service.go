package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
	"pizzeria/pkg/factory"
	"pizzeria/pkg/rabbitmq"
)

// OrderService handles business logic related to diner orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	factory   *factory.Client
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, factoryClient *factory.Client, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		factory:   factoryClient,
		mqClient:  mqClient,
	}
}

// ListForDiner retrieves one page of the diner's order history.
func (s *OrderService) ListForDiner(diner *models.User, page int) ([]models.DinerOrder, error) {
	return s.orderRepo.ListByDiner(diner.ID, page)
}

// Create persists the order, hands it to the order factory and publishes an
// order.created event. A factory failure fails the call after the order is
// stored; a broker failure is only logged.
func (s *OrderService) Create(diner *models.User, order *models.DinerOrder) (*models.DinerOrder, *factory.Fulfillment, error) {
	order.DinerID = diner.ID
	if err := s.orderRepo.Create(order); err != nil {
		return nil, nil, err
	}

	fulfillment, err := s.factory.Fulfill(diner, order)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fulfill order %d at factory: %w", order.ID, err)
	}

	s.publishOrderCreated(order)
	return order, fulfillment, nil
}

func (s *OrderService) publishOrderCreated(order *models.DinerOrder) {
	if s.mqClient == nil {
		logrus.Debug("RabbitMQ client not configured, skipping order event")
		return
	}

	var total float64
	for _, item := range order.Items {
		total += item.Price
	}
	event := map[string]interface{}{
		"eventId":     uuid.New().String(),
		"orderId":     order.ID,
		"dinerId":     order.DinerID,
		"franchiseId": order.FranchiseID,
		"storeId":     order.StoreID,
		"total":       total,
	}

	body, err := json.Marshal(event)
	if err != nil {
		logrus.Errorf("failed to marshal order event for order %d: %v", order.ID, err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.OrderEventsQueue, body); err != nil {
		logrus.Warnf("failed to publish order.created for order %d: %v", order.ID, err)
		return
	}
	logrus.Infof("published order.created for order %d", order.ID)
}
