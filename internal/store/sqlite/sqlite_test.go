package sqlite

import (
	"context"
	"testing"

	"github.com/planora/planora-server/internal/store"
	"github.com/planora/planora-server/internal/store/storetest"
)

func makeLiteStore(t *testing.T) store.Store {
	t.Helper()
	s, err := New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeLiteStore)
}
