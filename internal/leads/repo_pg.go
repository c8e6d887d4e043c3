package leads

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo records leads in the Postgres leads table.
type PGRepo struct {
	DB *sql.DB
}

// Record inserts ev as one row.
func (r *PGRepo) Record(ctx context.Context, ev Event) error {
	const query = `
INSERT INTO leads (request_id, created_at, client_name, nam_name, industry, size, annual_budget_inr,
  products_already_sold, recommended_products, combined_pitch_generated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	created := ev.Timestamp
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.DB.ExecContext(ctx, query,
		ev.RequestID,
		created.UTC(),
		ev.ClientName,
		ev.NAMName,
		ev.Industry,
		nullableInt(ev.Size),
		ev.AnnualBudget,
		nonNil(ev.SoldIDs),
		nonNil(ev.RecommendedIDs),
		ev.PitchGenerated,
	)
	return err
}

// Count returns the number of recorded leads.
func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM leads`).Scan(&n)
	return n, err
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
