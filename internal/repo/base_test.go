package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/bakery-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestNewBaseStoresConnection(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	if base.db != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil {
		t.Fatalf("expected non-nil DB when context provided")
	}
	if withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	withoutCtx := base.DB(nil)
	if withoutCtx != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestBaseFailClassifiesStoreErrors(t *testing.T) {
	base := NewBase(newTestDB(t))

	if err := base.Fail(nil, "Update widget"); err != nil {
		t.Fatalf("expected nil for nil error, got %v", err)
	}

	err := base.Fail(gorm.ErrRecordNotFound, "Load widget")
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	typed := pkgerrors.New(pkgerrors.CodeConflict, "widget taken")
	if got := base.Fail(typed, "Insert widget"); pkgerrors.CodeOf(got) != pkgerrors.CodeConflict {
		t.Fatalf("expected typed error to pass through, got %v", got)
	}
}

func TestBaseAffected(t *testing.T) {
	base := NewBase(newTestDB(t))
	cause := errors.New("disk I/O error")

	err := base.Affected(&gorm.DB{Error: cause}, "Update widget")
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	if pkgerrors.CodeOf(err) != pkgerrors.CodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %s", pkgerrors.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "Update widget failed") {
		t.Fatalf("expected operation in message, got %q", err.Error())
	}

	err = base.Affected(&gorm.DB{RowsAffected: 0}, "Update widget")
	if !errors.Is(err, db.ErrNoRowsMatched) {
		t.Fatalf("expected ErrNoRowsMatched, got %v", err)
	}
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", pkgerrors.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "Update widget not found") {
		t.Fatalf("expected operation in message, got %q", err.Error())
	}

	if err := base.Affected(&gorm.DB{RowsAffected: 2}, "Update widget"); err != nil {
		t.Fatalf("expected nil when rows matched, got %v", err)
	}
}

func TestBaseAffectedOnConditionalUpdate(t *testing.T) {
	conn := newTestDB(t)
	base := NewBase(conn)
	ctx := context.Background()

	if err := conn.Exec(`CREATE TABLE IF NOT EXISTS base_widgets (id TEXT PRIMARY KEY, qty INTEGER NOT NULL)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := conn.Exec(`DELETE FROM base_widgets`).Error; err != nil {
		t.Fatalf("clear table: %v", err)
	}
	if err := conn.Exec(`INSERT INTO base_widgets (id, qty) VALUES (?, ?)`, "w1", 3).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := base.DB(ctx).Table("base_widgets").Where("id = ?", "w1").Update("qty", 2)
	if err := base.Affected(res, "Update widget"); err != nil {
		t.Fatalf("expected matched update to succeed, got %v", err)
	}

	res = base.DB(ctx).Table("base_widgets").Where("id = ?", "missing").Update("qty", 2)
	err := base.Affected(res, "Update widget")
	if !errors.Is(err, db.ErrNoRowsMatched) {
		t.Fatalf("expected ErrNoRowsMatched for unmatched update, got %v", err)
	}
}
