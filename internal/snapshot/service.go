package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fplstat/fplstat/internal/aggregate"
	"github.com/fplstat/fplstat/internal/domain"
)

// Aggregator runs the account aggregation pipeline.
type Aggregator interface {
	Aggregate(ctx context.Context, accountID string) (domain.AccountRecord, aggregate.Manifest, error)
}

// Service captures aggregated account records as dated snapshots.
type Service struct {
	aggregator Aggregator
	repo       Repository
}

// NewService creates a new snapshot Service.
func NewService(aggregator Aggregator, repo Repository) *Service {
	return &Service{aggregator: aggregator, repo: repo}
}

// Capture aggregates the account and stores the merged record together with
// its stage manifest under the given date, replacing any snapshot already
// stored for that day.
func (s *Service) Capture(ctx context.Context, accountNumber string, date time.Time) (domain.AccountRecord, aggregate.Manifest, error) {
	record, manifest, err := s.aggregator.Aggregate(ctx, accountNumber)
	if err != nil {
		return domain.AccountRecord{}, nil, fmt.Errorf("aggregating %s: %w", accountNumber, err)
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return domain.AccountRecord{}, nil, fmt.Errorf("marshaling record: %w", err)
	}
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return domain.AccountRecord{}, nil, fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := s.repo.Save(ctx, accountNumber, date, recordJSON, manifestJSON); err != nil {
		return domain.AccountRecord{}, nil, fmt.Errorf("saving snapshot: %w", err)
	}

	return record, manifest, nil
}

// GetLatest retrieves the most recent snapshot for the account.
func (s *Service) GetLatest(ctx context.Context, accountNumber string) (*Snapshot, error) {
	return s.repo.GetLatest(ctx, accountNumber)
}

// GetByDate retrieves the account's snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, accountNumber string, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, accountNumber, date)
}

// List retrieves recent snapshots for the account.
func (s *Service) List(ctx context.Context, accountNumber string, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, accountNumber, limit)
}

// Accounts lists every account number with at least one stored snapshot.
func (s *Service) Accounts(ctx context.Context) ([]string, error) {
	return s.repo.Accounts(ctx)
}
