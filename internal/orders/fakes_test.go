package orders

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
)

type stockWrite struct {
	itemID   uuid.UUID
	quantity int
}

type fakeInventory struct {
	mu     sync.Mutex
	branch uuid.UUID
	stock  map[uuid.UUID]int

	reads  int
	writes []stockWrite

	getErr error
	// onRead runs before the nth read (1-based) is served.
	onRead func(call int)
	// beforeWrite runs before a write is applied; a non-nil error fails it.
	beforeWrite func(ctx context.Context, itemID uuid.UUID, quantity int) error
}

func newFakeInventory(branch uuid.UUID, stock map[uuid.UUID]int) *fakeInventory {
	copied := make(map[uuid.UUID]int, len(stock))
	for id, qty := range stock {
		copied[id] = qty
	}
	return &fakeInventory{branch: branch, stock: copied}
}

func (f *fakeInventory) GetByIDsInBranch(ctx context.Context, ids []uuid.UUID, branchID uuid.UUID) ([]models.InventoryItem, error) {
	f.mu.Lock()
	f.reads++
	call := f.reads
	hook := f.onRead
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if f.getErr != nil {
		return nil, f.getErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if branchID != f.branch {
		return []models.InventoryItem{}, nil
	}
	rows := make([]models.InventoryItem, 0, len(ids))
	for _, id := range ids {
		if qty, ok := f.stock[id]; ok {
			rows = append(rows, models.InventoryItem{ID: id, BranchID: branchID, Quantity: qty})
		}
	}
	return rows, nil
}

func (f *fakeInventory) UpdateQuantity(ctx context.Context, id, branchID uuid.UUID, quantity int) error {
	if f.beforeWrite != nil {
		if err := f.beforeWrite(ctx, id, quantity); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stock[id]; !ok || branchID != f.branch {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Update inventory quantity not found")
	}
	f.stock[id] = quantity
	f.writes = append(f.writes, stockWrite{itemID: id, quantity: quantity})
	return nil
}

func (f *fakeInventory) quantity(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[id]
}

func (f *fakeInventory) set(id uuid.UUID, qty int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[id] = qty
}

func (f *fakeInventory) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

type fakeOrders struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]models.Order
	deleted []uuid.UUID

	insertErr error
	deleteErr error
	onInsert  func(ctx context.Context)
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{rows: make(map[uuid.UUID]models.Order)}
}

func (f *fakeOrders) Insert(ctx context.Context, order *models.Order) (*models.Order, error) {
	if f.onInsert != nil {
		f.onInsert(ctx)
	}
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.rows[order.ID] = *order
	return order, nil
}

func (f *fakeOrders) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Delete order not found")
	}
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type loyaltyAccount struct {
	points int
	tier   enums.LoyaltyTier
}

type fakeLoyalty struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]loyaltyAccount
	updates  int

	getErr    error
	updateErr error
	onGet     func()
}

func newFakeLoyalty() *fakeLoyalty {
	return &fakeLoyalty{accounts: make(map[uuid.UUID]loyaltyAccount)}
}

func (f *fakeLoyalty) GetPoints(ctx context.Context, customerID uuid.UUID) (int, error) {
	if f.onGet != nil {
		f.onGet()
	}
	if f.getErr != nil {
		return 0, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[customerID]
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "Fetch customer for loyalty update not found")
	}
	return account.points, nil
}

func (f *fakeLoyalty) UpdatePointsAndTier(ctx context.Context, customerID uuid.UUID, points int, tier enums.LoyaltyTier) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[customerID] = loyaltyAccount{points: points, tier: tier}
	f.updates++
	return nil
}

func (f *fakeLoyalty) account(customerID uuid.UUID) loyaltyAccount {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[customerID]
}
