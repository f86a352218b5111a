package orders

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bakery-backend/api/responses"
	"github.com/angelmondragon/bakery-backend/api/validators"
	internalorders "github.com/angelmondragon/bakery-backend/internal/orders"
	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
	"github.com/angelmondragon/bakery-backend/pkg/logger"
)

const maxPaymentMethodLen = 32

type createOrderItem struct {
	ItemID   string          `json:"item_id" validate:"required,uuid"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity" validate:"min=1"`
	Price    decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	ID            string            `json:"id" validate:"omitempty,uuid"`
	CreatedAt     *time.Time        `json:"created_at"`
	BranchID      string            `json:"branch_id" validate:"required,uuid"`
	CustomerID    string            `json:"customer_id" validate:"omitempty,uuid"`
	Items         []createOrderItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount   *decimal.Decimal  `json:"total_amount" validate:"required"`
	Status        string            `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

func (req createOrderRequest) toInput() internalorders.CreateOrderInput {
	input := internalorders.CreateOrderInput{
		BranchID:      uuid.MustParse(req.BranchID),
		CreatedAt:     req.CreatedAt,
		Status:        enums.OrderStatus(req.Status),
		PaymentMethod: validators.SanitizeString(req.PaymentMethod, maxPaymentMethodLen),
		Items:         make([]models.OrderItem, 0, len(req.Items)),
	}
	if req.TotalAmount != nil {
		input.TotalAmount = *req.TotalAmount
	}
	if req.ID != "" {
		id := uuid.MustParse(req.ID)
		input.ID = &id
	}
	if req.CustomerID != "" {
		customerID := uuid.MustParse(req.CustomerID)
		input.CustomerID = &customerID
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, models.OrderItem{
			ItemID:   uuid.MustParse(item.ItemID),
			Name:     strings.TrimSpace(item.Name),
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return input
}

// Create places an order through the saga and returns it with 201.
func Create(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithBranchID(ctx, req.BranchID)
		}

		order, err := svc.Create(ctx, req.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// List returns every order, newest first, optionally narrowed by ?branch_id=.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		branchID, err := validators.ParseQueryUUID(r, "branch_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), branchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list)
	}
}

func UpdateStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		rawOrderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if rawOrderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}
		orderID, err := validators.ParsePathUUID(rawOrderID, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, orderID.String())
		}

		order, err := svc.UpdateStatus(ctx, orderID, enums.OrderStatus(req.Status))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
