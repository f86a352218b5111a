package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
)

// undoEntry remembers the quantity an item had before this saga touched it.
type undoEntry struct {
	itemID   uuid.UUID
	previous int
}

// undoLog is saga-local and ordered. The first observed quantity per item wins,
// so an item ordered twice is restored to its pre-saga value.
type undoLog struct {
	entries []undoEntry
	seen    map[uuid.UUID]struct{}
}

// record adds the entry unless the item is already logged. It reports whether
// a new entry was added.
func (u *undoLog) record(itemID uuid.UUID, previous int) bool {
	if u.seen == nil {
		u.seen = make(map[uuid.UUID]struct{})
	}
	if _, ok := u.seen[itemID]; ok {
		return false
	}
	u.seen[itemID] = struct{}{}
	u.entries = append(u.entries, undoEntry{itemID: itemID, previous: previous})
	return true
}

func distinctItemIDs(items []models.OrderItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ItemID]; ok {
			continue
		}
		seen[item.ItemID] = struct{}{}
		ids = append(ids, item.ItemID)
	}
	return ids
}

func insufficientStock(itemID uuid.UUID, available, requested int) error {
	return pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
		"insufficient stock for item %s: available=%d, requested=%d", itemID, available, requested).
		WithDetails(StockShortage{ItemID: itemID, Available: available, Requested: requested})
}

func itemNotFound(itemID uuid.UUID) error {
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "inventory item %s not found in branch", itemID)
}

// validateStock checks every requested line against one batched read. Lines are
// checked in input order and repeated ids are compared individually, not summed.
// It never writes.
func validateStock(ctx context.Context, inventory InventoryGateway, branchID uuid.UUID, items []models.OrderItem) error {
	rows, err := inventory.GetByIDsInBranch(ctx, distinctItemIDs(items), branchID)
	if err != nil {
		return typed(err, "Validate order stock")
	}
	available := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		available[row.ID] = row.Quantity
	}
	for _, item := range items {
		qty, ok := available[item.ItemID]
		if !ok {
			return itemNotFound(item.ItemID)
		}
		if qty < item.Quantity {
			return insufficientStock(item.ItemID, qty, item.Quantity)
		}
	}
	return nil
}

// deductStock re-reads and rewrites each line in input order. The previous
// quantity is logged before the write is issued, and recorded is called for
// every newly logged item so the caller can stack its restore. A re-read that
// shows less than requested fails without writing.
func deductStock(ctx context.Context, inventory InventoryGateway, branchID uuid.UUID, items []models.OrderItem, undo *undoLog, recorded func(undoEntry)) error {
	for _, item := range items {
		rows, err := inventory.GetByIDsInBranch(ctx, []uuid.UUID{item.ItemID}, branchID)
		if err != nil {
			return typed(err, "Deduct inventory stock")
		}
		if len(rows) == 0 {
			return itemNotFound(item.ItemID)
		}
		current := rows[0].Quantity
		if current < item.Quantity {
			return insufficientStock(item.ItemID, current, item.Quantity)
		}

		if undo.record(item.ItemID, current) && recorded != nil {
			recorded(undoEntry{itemID: item.ItemID, previous: current})
		}
		if err := inventory.UpdateQuantity(ctx, item.ItemID, branchID, current-item.Quantity); err != nil {
			return typed(err, "Deduct inventory stock")
		}
	}
	return nil
}

// typed keeps classified errors as they are and wraps anything else as internal.
func typed(err error, op string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op+" failed: "+err.Error())
}
