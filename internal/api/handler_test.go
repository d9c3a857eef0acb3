package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fplstat/fplstat/internal/aggregate"
	"github.com/fplstat/fplstat/internal/domain"
	"github.com/fplstat/fplstat/internal/snapshot"
)

type mockSnapshotRepo struct {
	snapshots     []snapshot.Snapshot
	accounts      []string
	lastListLimit int
}

func (m *mockSnapshotRepo) Save(_ context.Context, _ string, _ time.Time, _, _ json.RawMessage) error {
	return nil
}

func (m *mockSnapshotRepo) GetLatest(_ context.Context, account string) (*snapshot.Snapshot, error) {
	for _, s := range m.snapshots {
		if s.AccountNumber == account {
			return &s, nil
		}
	}
	return nil, snapshot.ErrNotFound
}

func (m *mockSnapshotRepo) GetByDate(_ context.Context, account string, date time.Time) (*snapshot.Snapshot, error) {
	for _, s := range m.snapshots {
		if s.AccountNumber == account && s.SnapshotDate.Equal(date) {
			return &s, nil
		}
	}
	return nil, snapshot.ErrNotFound
}

func (m *mockSnapshotRepo) List(_ context.Context, _ string, limit int) ([]snapshot.Snapshot, error) {
	m.lastListLimit = limit
	if limit > len(m.snapshots) {
		limit = len(m.snapshots)
	}
	return m.snapshots[:limit], nil
}

func (m *mockSnapshotRepo) Accounts(_ context.Context) ([]string, error) {
	return m.accounts, nil
}

type nopAggregator struct{}

func (nopAggregator) Aggregate(_ context.Context, _ string) (domain.AccountRecord, aggregate.Manifest, error) {
	return domain.AccountRecord{}, aggregate.Manifest{}, nil
}

type mockRefresher struct {
	calls int
	err   error
}

func (m *mockRefresher) RefreshOnce(_ context.Context) error {
	m.calls++
	return m.err
}

func newTestHandler(repo *mockSnapshotRepo, refresher Refresher) *Handler {
	svc := snapshot.NewService(nopAggregator{}, repo)
	return NewHandler(svc, refresher)
}

func TestListAccounts(t *testing.T) {
	repo := &mockSnapshotRepo{accounts: []string{"11111", "22222"}}
	handler := newTestHandler(repo, &mockRefresher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	handler.ListAccounts(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var result []string
	json.NewDecoder(w.Body).Decode(&result)
	if len(result) != 2 {
		t.Errorf("account count = %d, want 2", len(result))
	}
}

func TestGetLatestSnapshotSuccess(t *testing.T) {
	record, _ := json.Marshal(map[string]string{"account_id": "11111"})
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{
			{ID: 1, AccountNumber: "11111", SnapshotDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Record: record},
		},
	}
	handler := newTestHandler(repo, &mockRefresher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/11111/latest", nil)
	req.SetPathValue("account", "11111")
	w := httptest.NewRecorder()
	handler.GetLatestSnapshot(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var result snapshot.Snapshot
	json.NewDecoder(w.Body).Decode(&result)
	if result.ID != 1 {
		t.Errorf("snapshot ID = %d, want 1", result.ID)
	}
}

func TestGetLatestSnapshotNotFound(t *testing.T) {
	handler := newTestHandler(&mockSnapshotRepo{}, &mockRefresher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/99999/latest", nil)
	req.SetPathValue("account", "99999")
	w := httptest.NewRecorder()
	handler.GetLatestSnapshot(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetSnapshotByDateSuccess(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	record, _ := json.Marshal(map[string]string{"account_id": "11111"})
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{
			{ID: 1, AccountNumber: "11111", SnapshotDate: date, Record: record},
		},
	}
	handler := newTestHandler(repo, &mockRefresher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/11111/snapshots/2024-01-15", nil)
	req.SetPathValue("account", "11111")
	req.SetPathValue("date", "2024-01-15")
	w := httptest.NewRecorder()
	handler.GetSnapshotByDate(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestGetSnapshotByDateInvalid(t *testing.T) {
	handler := newTestHandler(&mockSnapshotRepo{}, &mockRefresher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/11111/snapshots/not-a-date", nil)
	req.SetPathValue("account", "11111")
	req.SetPathValue("date", "not-a-date")
	w := httptest.NewRecorder()
	handler.GetSnapshotByDate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListSnapshotsLimitCappedAt365(t *testing.T) {
	record, _ := json.Marshal(map[string]string{})
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{
			{ID: 1, AccountNumber: "11111", Record: record},
		},
	}
	handler := newTestHandler(repo, &mockRefresher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/11111/snapshots?limit=9999", nil)
	req.SetPathValue("account", "11111")
	w := httptest.NewRecorder()
	handler.ListSnapshots(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if repo.lastListLimit != 365 {
		t.Errorf("limit passed to repo = %d, want 365 (should be capped)", repo.lastListLimit)
	}
}

func TestListSnapshotsNegativeLimit(t *testing.T) {
	record, _ := json.Marshal(map[string]string{})
	repo := &mockSnapshotRepo{
		snapshots: []snapshot.Snapshot{
			{ID: 1, AccountNumber: "11111", Record: record},
			{ID: 2, AccountNumber: "11111", Record: record},
		},
	}
	handler := newTestHandler(repo, &mockRefresher{})

	// Negative limit should fall back to default 30
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/11111/snapshots?limit=-5", nil)
	req.SetPathValue("account", "11111")
	w := httptest.NewRecorder()
	handler.ListSnapshots(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var result []snapshot.Snapshot
	json.NewDecoder(w.Body).Decode(&result)
	if len(result) != 2 {
		t.Errorf("snapshot count = %d, want 2 (default limit should apply)", len(result))
	}
}

func TestTriggerRefresh(t *testing.T) {
	refresher := &mockRefresher{}
	handler := newTestHandler(&mockSnapshotRepo{}, refresher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	w := httptest.NewRecorder()
	handler.TriggerRefresh(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if refresher.calls != 1 {
		t.Errorf("refresher calls = %d, want 1", refresher.calls)
	}
}

func TestTriggerRefreshFailure(t *testing.T) {
	refresher := &mockRefresher{err: errors.New("login rejected")}
	handler := newTestHandler(&mockSnapshotRepo{}, refresher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	w := httptest.NewRecorder()
	handler.TriggerRefresh(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
