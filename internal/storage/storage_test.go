// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/shift-service/internal/db"
	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/monitoring"
	"github.com/canonical/shift-service/internal/tracing"
	"github.com/canonical/shift-service/internal/types"
)

var errNotExecuted = errors.New("statement recorded, not executed")

// queryRecorder satisfies the squirrel runner interfaces and captures the
// rendered statement instead of executing it, so tests can assert on the
// SQL the builders produce.
type queryRecorder struct {
	query string
	args  []any
}

func (r *queryRecorder) Exec(query string, args ...any) (sql.Result, error) {
	r.query, r.args = query, args
	return driver.RowsAffected(1), nil
}

func (r *queryRecorder) Query(query string, args ...any) (*sql.Rows, error) {
	r.query, r.args = query, args
	return nil, errNotExecuted
}

func (r *queryRecorder) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	return r.Exec(query, args...)
}

func (r *queryRecorder) QueryContext(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.Query(query, args...)
}

func (r *queryRecorder) QueryRow(query string, args ...any) sq.RowScanner {
	r.query, r.args = query, args
	return r
}

func (r *queryRecorder) QueryRowContext(_ context.Context, query string, args ...any) sq.RowScanner {
	return r.QueryRow(query, args...)
}

func (r *queryRecorder) Scan(...any) error {
	return errNotExecuted
}

type recorderClient struct {
	runner *queryRecorder
}

var _ db.DBClientInterface = (*recorderClient)(nil)

func (c *recorderClient) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(c.runner)
}

func (c *recorderClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (c *recorderClient) Close() {}

func newRecordedStorage() (*Storage, *queryRecorder) {
	runner := new(queryRecorder)
	client := &recorderClient{runner: runner}
	s := NewStorage(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("shift-service"), logging.NewNoopLogger())
	return s, runner
}

func TestListShiftsTombstoneFilter(t *testing.T) {
	testCases := []struct {
		name           string
		includeDeleted bool
	}{
		{name: "active listing excludes tombstones", includeDeleted: false},
		{name: "tombstones visible when included", includeDeleted: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, runner := newRecordedStorage()

			_, err := s.ListShifts(context.Background(), "t1", ShiftFilter{IncludeDeleted: tc.includeDeleted})
			if !errors.Is(err, errNotExecuted) {
				t.Fatalf("expected the recorded statement error, got %v", err)
			}

			if !strings.Contains(runner.query, "tenant_id = $1") {
				t.Errorf("expected a tenant predicate, got %q", runner.query)
			}
			if runner.args[0] != "t1" {
				t.Errorf("expected tenant t1 as first argument, got %v", runner.args[0])
			}

			filtered := strings.Contains(runner.query, "deleted = $")
			if filtered == tc.includeDeleted {
				t.Errorf("includeDeleted=%v built %q", tc.includeDeleted, runner.query)
			}
			if filtered && runner.args[1] != false {
				t.Errorf("expected deleted=false predicate argument, got %v", runner.args[1])
			}
		})
	}
}

func TestListUsersTombstoneFilter(t *testing.T) {
	for _, includeDeleted := range []bool{false, true} {
		s, runner := newRecordedStorage()

		_, err := s.ListUsers(context.Background(), "t1", includeDeleted)
		if !errors.Is(err, errNotExecuted) {
			t.Fatalf("expected the recorded statement error, got %v", err)
		}

		filtered := strings.Contains(runner.query, "deleted = $")
		if filtered == includeDeleted {
			t.Errorf("includeDeleted=%v built %q", includeDeleted, runner.query)
		}
	}
}

func TestListChangedSinceInclusiveBoundary(t *testing.T) {
	const since = int64(1773576000000)

	testCases := []struct {
		name string
		list func(*Storage) error
	}{
		{
			name: "shifts",
			list: func(s *Storage) error {
				_, err := s.ListShiftsChangedSince(context.Background(), "t1", since)
				return err
			},
		},
		{
			name: "users",
			list: func(s *Storage) error {
				_, err := s.ListUsersChangedSince(context.Background(), "t1", since)
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, runner := newRecordedStorage()

			if err := tc.list(s); !errors.Is(err, errNotExecuted) {
				t.Fatalf("expected the recorded statement error, got %v", err)
			}

			// A record changed exactly at the client's watermark must be
			// returned, so the comparison is >= and not >.
			if !strings.Contains(runner.query, "last_changed_at >= $2") {
				t.Errorf("expected an inclusive watermark comparison, got %q", runner.query)
			}
			if runner.args[1] != since {
				t.Errorf("expected watermark %d, got %v", since, runner.args[1])
			}

			// The change feed carries tombstones to sync consumers.
			if strings.Contains(runner.query, "deleted = $") {
				t.Errorf("expected tombstones in the change feed, got %q", runner.query)
			}
		})
	}
}

func TestDeleteShiftWritesTombstone(t *testing.T) {
	s, runner := newRecordedStorage()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	if err := s.DeleteShift(context.Background(), "t1", "shift-1", 3, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(runner.query, "UPDATE shifts SET") {
		t.Fatalf("expected a soft delete, got %q", runner.query)
	}
	if strings.Contains(runner.query, "DELETE") {
		t.Errorf("expected the row to survive as a tombstone, got %q", runner.query)
	}
	if !strings.Contains(runner.query, "deleted = $1") {
		t.Errorf("expected the tombstone flag to be set, got %q", runner.query)
	}

	// deleted, updated_at, version, last_changed_at, then id, tenant_id,
	// version from the conditional write predicate.
	if runner.args[0] != true {
		t.Errorf("expected deleted=true, got %v", runner.args[0])
	}
	if runner.args[2] != int64(4) {
		t.Errorf("expected version bump to 4, got %v", runner.args[2])
	}
	if runner.args[3] != now.UnixMilli() {
		t.Errorf("expected last_changed_at %d, got %v", now.UnixMilli(), runner.args[3])
	}
	if runner.args[6] != int64(3) {
		t.Errorf("expected the write to be conditional on version 3, got %v", runner.args[6])
	}
}

func TestCreateShiftGeneratesID(t *testing.T) {
	s, runner := newRecordedStorage()

	sh := &types.Shift{TenantID: "t1", Title: "Night Watch", State: types.ShiftPending}
	if _, err := s.CreateShift(context.Background(), sh); !errors.Is(err, errNotExecuted) {
		t.Fatalf("expected the recorded statement error, got %v", err)
	}

	if !strings.HasPrefix(runner.query, "INSERT INTO shifts") {
		t.Fatalf("expected an insert, got %q", runner.query)
	}

	id, ok := runner.args[0].(string)
	if !ok || id == "" {
		t.Errorf("expected a generated shift ID as first argument, got %v", runner.args[0])
	}
}
