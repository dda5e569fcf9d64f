package stats

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type MemoryStore struct {
	mu    sync.RWMutex
	stats map[string]Stats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{stats: make(map[string]Stats)}
}

func (s *MemoryStore) Increment(ctx context.Context, userID, counter string, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats[userID]
	st.UserID = userID
	switch counter {
	case CounterProcessed:
		st.DocumentsProcessed += delta
	case CounterMatched:
		st.DocumentsMatched += delta
	case CounterFlagged:
		st.DocumentsFlagged += delta
	case CounterInvoices:
		st.Invoices += delta
	case CounterPurchaseOrders:
		st.PurchaseOrders += delta
	case CounterStatements:
		st.BankStatements += delta
	default:
		return fmt.Errorf("unknown stats counter: %s", counter)
	}
	st.UpdatedAt = time.Now().UTC()
	s.stats[userID] = st
	return nil
}

func (s *MemoryStore) GetByUser(ctx context.Context, userID string) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stats[userID]
	if !ok {
		return Stats{UserID: userID, UpdatedAt: time.Now().UTC()}, nil
	}
	return st, nil
}

var _ Store = (*MemoryStore)(nil)
