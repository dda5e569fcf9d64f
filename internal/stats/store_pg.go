package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PGStore struct {
	DB *sql.DB
}

// Increment upserts the user row and bumps one counter. The counter name is
// interpolated, so it must come from the closed set above.
func (s *PGStore) Increment(ctx context.Context, userID, counter string, delta int) error {
	switch counter {
	case CounterProcessed, CounterMatched, CounterFlagged, CounterInvoices, CounterPurchaseOrders, CounterStatements:
	default:
		return fmt.Errorf("unknown stats counter: %s", counter)
	}
	query := fmt.Sprintf(`
INSERT INTO user_stats (user_id, %[1]s, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET
  %[1]s = user_stats.%[1]s + EXCLUDED.%[1]s,
  updated_at = now()`, counter)
	_, err := s.DB.ExecContext(ctx, query, userID, delta)
	return err
}

func (s *PGStore) GetByUser(ctx context.Context, userID string) (Stats, error) {
	const query = `
SELECT user_id, documents_processed, documents_matched, documents_flagged, invoices, purchase_orders, bank_statements, updated_at
FROM user_stats
WHERE user_id = $1
LIMIT 1`
	var st Stats
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(
		&st.UserID,
		&st.DocumentsProcessed,
		&st.DocumentsMatched,
		&st.DocumentsFlagged,
		&st.Invoices,
		&st.PurchaseOrders,
		&st.BankStatements,
		&st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Stats{UserID: userID, UpdatedAt: time.Now().UTC()}, nil
		}
		return Stats{}, err
	}
	return st, nil
}

var _ Store = (*PGStore)(nil)
