package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
	"github.com/angelmondragon/bakery-backend/pkg/logger"
)

// Service is the order boundary used by the API. Create is the only way to
// place an order; the saga steps are never exposed on their own.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	List(ctx context.Context, branchID *uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo     Repository
	saga     *Saga
	notifier Notifier
	logg     *logger.Logger
}

// NewService builds the order service. notifier may be nil when real-time
// notifications are disabled.
func NewService(repo Repository, saga *Saga, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("orders repository required")
	}
	if saga == nil {
		return nil, errors.New("order saga required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:     repo,
		saga:     saga,
		notifier: notifier,
		logg:     logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	order, err := s.saga.Run(ctx, input)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		// The order is committed; a lost notification is only logged.
		if err := s.notifier.OrderCreated(ctx, order); err != nil {
			s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()), "order.notify_failed", err)
		}
	}
	return order, nil
}

func (s *service) List(ctx context.Context, branchID *uuid.UUID) ([]models.Order, error) {
	return s.repo.List(ctx, branchID)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
