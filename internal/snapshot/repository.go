package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested snapshot was not found.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored account record with the manifest of which
// sub-fetches produced it.
type Snapshot struct {
	ID            int             `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	SnapshotDate  time.Time       `json:"snapshotDate"`
	Record        json.RawMessage `json:"record"`
	Manifest      json.RawMessage `json:"manifest"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for account snapshots.
type Repository interface {
	Save(ctx context.Context, accountNumber string, date time.Time, record, manifest json.RawMessage) error
	GetLatest(ctx context.Context, accountNumber string) (*Snapshot, error)
	GetByDate(ctx context.Context, accountNumber string, date time.Time) (*Snapshot, error)
	List(ctx context.Context, accountNumber string, limit int) ([]Snapshot, error)
	Accounts(ctx context.Context) ([]string, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, accountNumber string, date time.Time, record, manifest json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO account_snapshots (account_number, snapshot_date, record, manifest)
		 VALUES ($1, $2, $3::jsonb, $4::jsonb)
		 ON CONFLICT (account_number, snapshot_date)
		 DO UPDATE SET record = $3::jsonb, manifest = $4::jsonb`,
		accountNumber, date, record, manifest)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context, accountNumber string) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT id, account_number, snapshot_date, record, manifest, created_at
		 FROM account_snapshots
		 WHERE account_number = $1
		 ORDER BY snapshot_date DESC
		 LIMIT 1`, accountNumber).
		Scan(&s.ID, &s.AccountNumber, &s.SnapshotDate, &s.Record, &s.Manifest, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) GetByDate(ctx context.Context, accountNumber string, date time.Time) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT id, account_number, snapshot_date, record, manifest, created_at
		 FROM account_snapshots
		 WHERE account_number = $1 AND snapshot_date = $2`, accountNumber, date).
		Scan(&s.ID, &s.AccountNumber, &s.SnapshotDate, &s.Record, &s.Manifest, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting snapshot by date: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) List(ctx context.Context, accountNumber string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, account_number, snapshot_date, record, manifest, created_at
		 FROM account_snapshots
		 WHERE account_number = $1
		 ORDER BY snapshot_date DESC
		 LIMIT $2`, accountNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.AccountNumber, &s.SnapshotDate, &s.Record, &s.Manifest, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *PgRepository) Accounts(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT account_number FROM account_snapshots ORDER BY account_number`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scanning account number: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accounts, nil
}
