package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/angelmondragon/bakery-backend/internal/loyalty"
	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
	"github.com/angelmondragon/bakery-backend/pkg/logger"
	"github.com/angelmondragon/bakery-backend/pkg/metrics"
)

const tracerName = "github.com/angelmondragon/bakery-backend/internal/orders"

// State is a position in the order saga.
type State string

const (
	StateValidating      State = "validating"
	StateDeducting       State = "deducting"
	StatePersisting      State = "persisting"
	StateAccruingLoyalty State = "accruing_loyalty"
	StateCompensating    State = "compensating"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// Step names used in logs, spans and the failed_step metric label.
const (
	stepValidate = "validate"
	stepDeduct   = "deduct"
	stepPersist  = "persist"
	stepLoyalty  = "loyalty"
)

// Transition is one recorded state change of a saga run.
type Transition struct {
	From State
	To   State
	At   time.Time
}

// SagaParams wires the gateways and ambient collaborators of a Saga.
type SagaParams struct {
	Inventory InventoryGateway
	Orders    OrderGateway
	Loyalty   LoyaltyGateway

	Logger  *logger.Logger
	Metrics *metrics.SagaMetrics
	Tracer  trace.Tracer

	// StepTimeout bounds each forward step; zero leaves it to the caller's context.
	StepTimeout time.Duration
	// CompensationTimeout bounds each compensating call.
	CompensationTimeout time.Duration
}

// Saga places an order across inventory, orders and loyalty, undoing completed
// steps in reverse order when a later one fails.
type Saga struct {
	inventory InventoryGateway
	orders    OrderGateway
	loyalty   LoyaltyGateway

	logg    *logger.Logger
	metrics *metrics.SagaMetrics
	tracer  trace.Tracer

	stepTimeout         time.Duration
	compensationTimeout time.Duration
}

// NewSaga validates the wiring and builds a Saga.
func NewSaga(p SagaParams) (*Saga, error) {
	if p.Inventory == nil {
		return nil, errors.New("inventory gateway required")
	}
	if p.Orders == nil {
		return nil, errors.New("order gateway required")
	}
	if p.Loyalty == nil {
		return nil, errors.New("loyalty gateway required")
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	tracer := p.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Saga{
		inventory:           p.Inventory,
		orders:              p.Orders,
		loyalty:             p.Loyalty,
		logg:                logg,
		metrics:             p.Metrics,
		tracer:              tracer,
		stepTimeout:         p.StepTimeout,
		compensationTimeout: p.CompensationTimeout,
	}, nil
}

// Run executes one saga. It returns the persisted order, or exactly one typed
// error and no order. Compensation failures are logged, never returned.
func (s *Saga) Run(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	run := s.execute(ctx, input)
	if run.err != nil {
		return nil, run.err
	}
	return run.order, nil
}

type sagaRun struct {
	saga       *Saga
	state      State
	history    []Transition
	undo       undoLog
	stack      compensationStack
	order      *models.Order
	err        error
	failedStep string
}

func (s *Saga) execute(ctx context.Context, input CreateOrderInput) *sagaRun {
	started := time.Now()
	run := &sagaRun{saga: s, state: StateValidating}

	ctx, span := s.tracer.Start(ctx, "orders.saga", trace.WithAttributes(
		attribute.String("branch_id", input.BranchID.String()),
		attribute.Int("items", len(input.Items)),
		attribute.Bool("loyalty", input.CustomerID != nil),
	))
	defer span.End()

	ctx = s.logg.WithBranchID(ctx, input.BranchID.String())
	s.logg.Info(s.logg.WithField(ctx, "items", len(input.Items)), "saga.start")

	defer func() {
		outcome := metrics.OutcomeCompleted
		if run.err != nil {
			outcome = metrics.OutcomeFailed
			span.RecordError(run.err)
			span.SetStatus(codes.Error, run.failedStep)
		}
		s.metrics.ObserveRun(outcome, run.failedStep, time.Since(started))
	}()

	if err := input.Validate(); err != nil {
		run.fail(ctx, stepValidate, err)
		return run
	}
	if err := run.step(ctx, "saga.validate", func(ctx context.Context) error {
		return validateStock(ctx, s.inventory, input.BranchID, input.Items)
	}); err != nil {
		run.fail(ctx, stepValidate, err)
		return run
	}

	run.moveTo(ctx, StateDeducting)
	if err := run.step(ctx, "saga.deduct", func(ctx context.Context) error {
		return deductStock(ctx, s.inventory, input.BranchID, input.Items, &run.undo, func(entry undoEntry) {
			run.stack.push(actionRestoreStock, entry.itemID.String(), func(ctx context.Context) error {
				return s.inventory.UpdateQuantity(ctx, entry.itemID, input.BranchID, entry.previous)
			})
		})
	}); err != nil {
		run.compensateAndFail(ctx, stepDeduct, err)
		return run
	}

	run.moveTo(ctx, StatePersisting)
	if err := run.step(ctx, "saga.persist", func(ctx context.Context) error {
		created, err := s.orders.Insert(ctx, input.toOrder())
		if err != nil {
			return typed(err, "Create order")
		}
		run.order = created
		return nil
	}); err != nil {
		run.compensateAndFail(ctx, stepPersist, err)
		return run
	}
	orderID := run.order.ID
	run.stack.push(actionDeleteOrder, orderID.String(), func(ctx context.Context) error {
		return s.orders.DeleteByID(ctx, orderID)
	})
	ctx = s.logg.WithOrderID(ctx, orderID.String())
	span.SetAttributes(attribute.String("order_id", orderID.String()))

	if input.CustomerID != nil {
		customerID := *input.CustomerID
		run.moveTo(ctx, StateAccruingLoyalty)
		if err := run.step(ctx, "saga.loyalty", func(ctx context.Context) error {
			return s.accrueLoyalty(ctx, customerID, input)
		}); err != nil {
			run.compensateAndFail(ctx, stepLoyalty, err)
			return run
		}
	}

	run.moveTo(ctx, StateDone)
	s.logg.Info(ctx, "saga.completed")
	return run
}

func (s *Saga) accrueLoyalty(ctx context.Context, customerID uuid.UUID, input CreateOrderInput) error {
	current, err := s.loyalty.GetPoints(ctx, customerID)
	if err != nil {
		return typed(err, "Fetch customer for loyalty update")
	}
	points, tier := loyalty.Accrue(current, input.TotalAmount)
	if err := s.loyalty.UpdatePointsAndTier(ctx, customerID, points, tier); err != nil {
		return typed(err, "Update customer loyalty points")
	}
	return nil
}

// step runs one forward step in its own span, bounded by the step timeout.
func (r *sagaRun) step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := r.saga.tracer.Start(ctx, name)
	defer span.End()

	if r.saga.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.saga.stepTimeout)
		defer cancel()
	}
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(pkgerrors.CodeOf(err)))
	}
	return err
}

func (r *sagaRun) moveTo(ctx context.Context, next State) {
	r.history = append(r.history, Transition{From: r.state, To: next, At: time.Now()})
	r.saga.logg.Debug(r.saga.logg.WithFields(ctx, map[string]any{
		"from": string(r.state),
		"to":   string(next),
	}), "saga.transition")
	r.state = next
}

func (r *sagaRun) compensateAndFail(ctx context.Context, step string, err error) {
	r.logStepFailed(ctx, step, err)
	r.moveTo(ctx, StateCompensating)

	ctx, span := r.saga.tracer.Start(ctx, "saga.compensate", trace.WithAttributes(
		attribute.Int("compensations", r.stack.len()),
	))
	compErr := r.stack.unwind(ctx, r.saga.compensationTimeout, func(c compensation, err error) {
		r.saga.metrics.IncCompensation(c.action, err)
	})
	if compErr != nil {
		span.RecordError(compErr)
		span.SetStatus(codes.Error, "compensation failed")
		r.saga.logg.Error(r.saga.logg.WithFields(ctx, map[string]any{
			"failed_step":          step,
			"compensations_failed": len(multierr.Errors(compErr)),
		}), "saga.compensation_failed", compErr)
	}
	span.End()

	r.finish(ctx, step, err)
}

func (r *sagaRun) fail(ctx context.Context, step string, err error) {
	r.logStepFailed(ctx, step, err)
	r.finish(ctx, step, err)
}

func (r *sagaRun) logStepFailed(ctx context.Context, step string, err error) {
	r.saga.logg.Warn(r.saga.logg.WithFields(ctx, map[string]any{
		"step":  step,
		"code":  string(pkgerrors.CodeOf(err)),
		"error": err.Error(),
	}), "saga.step_failed")
}

func (r *sagaRun) finish(ctx context.Context, step string, err error) {
	r.moveTo(ctx, StateFailed)
	r.order = nil
	r.err = err
	r.failedStep = step

	failCtx := r.saga.logg.WithField(ctx, "failed_step", step)
	if pkgerrors.CodeOf(err) == pkgerrors.CodeInternal {
		r.saga.logg.Error(failCtx, "saga.failed", err)
		return
	}
	r.saga.logg.Warn(failCtx, "saga.failed")
}
