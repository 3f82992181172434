// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/shift-service/internal/db"
	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/monitoring"
	"github.com/canonical/shift-service/internal/tracing"
	"github.com/canonical/shift-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var (
	userColumns = []string{
		"id", "tenant_id", "role", "email", "first_name", "last_name", "phone",
		"created_at", "updated_at", "version", "deleted", "last_changed_at",
	}
	shiftColumns = []string{
		"id", "tenant_id", "title", "location", "start_at", "end_at", "rate",
		"state", "user_id", "created_at", "updated_at", "version", "deleted",
		"last_changed_at",
	}
)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// selectUsers and selectShifts are the tenant gate: every read goes through
// one of them, so no query can forget the tenant predicate.
func (s *Storage) selectUsers(ctx context.Context, tenantID string) sq.SelectBuilder {
	return s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"tenant_id": tenantID})
}

func (s *Storage) selectShifts(ctx context.Context, tenantID string) sq.SelectBuilder {
	return s.db.Statement(ctx).
		Select(shiftColumns...).
		From("shifts").
		Where(sq.Eq{"tenant_id": tenantID})
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	var created types.User
	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "tenant_id", "role", "email", "first_name", "last_name", "phone",
			"created_at", "updated_at", "version", "deleted", "last_changed_at").
		Values(id.String(), u.TenantID, string(u.Role), u.Email, u.FirstName, u.LastName, u.Phone,
			u.CreatedAt, u.UpdatedAt, 1, false, u.LastChangedAt).
		Suffix("RETURNING " + columnList(userColumns)).
		QueryRowContext(ctx).
		Scan(userFields(&created)...)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user with email %q: %w", u.Email, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetUser(ctx context.Context, tenantID, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUser")
	defer span.End()

	var u types.User
	err := s.selectUsers(ctx, tenantID).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(userFields(&u)...)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (s *Storage) ListUsers(ctx context.Context, tenantID string, includeDeleted bool) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUsers")
	defer span.End()

	query := s.selectUsers(ctx, tenantID).OrderBy("created_at")
	if !includeDeleted {
		query = query.Where(sq.Eq{"deleted": false})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*types.User
	for rows.Next() {
		var u types.User
		if err := rows.Scan(userFields(&u)...); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, u *types.User, expectedVersion int64) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateUser")
	defer span.End()

	var updated types.User
	err := s.db.Statement(ctx).
		Update("users").
		Set("role", string(u.Role)).
		Set("email", u.Email).
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("phone", u.Phone).
		Set("updated_at", u.UpdatedAt).
		Set("version", expectedVersion+1).
		Set("last_changed_at", u.LastChangedAt).
		Where(sq.Eq{
			"id":        u.ID,
			"tenant_id": u.TenantID,
			"version":   expectedVersion,
		}).
		Suffix("RETURNING " + columnList(userColumns)).
		QueryRowContext(ctx).
		Scan(userFields(&updated)...)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.versionCheckError(ctx, "users", u.TenantID, u.ID)
		}
		if IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user with email %q: %w", u.Email, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &updated, nil
}

func (s *Storage) DeleteUser(ctx context.Context, tenantID, id string, expectedVersion int64, now time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteUser")
	defer span.End()

	return s.tombstone(ctx, "users", tenantID, id, expectedVersion, now)
}

func (s *Storage) ListUsersChangedSince(ctx context.Context, tenantID string, since int64) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUsersChangedSince")
	defer span.End()

	// Inclusive of equal timestamps so no record changed exactly at the
	// client's watermark is ever skipped.
	rows, err := s.selectUsers(ctx, tenantID).
		Where(sq.GtOrEq{"last_changed_at": since}).
		OrderBy("last_changed_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed users: %w", err)
	}
	defer rows.Close()

	var users []*types.User
	for rows.Next() {
		var u types.User
		if err := rows.Scan(userFields(&u)...); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

func (s *Storage) CreateShift(ctx context.Context, sh *types.Shift) (*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateShift")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate shift ID: %w", err)
	}

	var created types.Shift
	err = s.db.Statement(ctx).
		Insert("shifts").
		Columns("id", "tenant_id", "title", "location", "start_at", "end_at", "rate",
			"state", "user_id", "created_at", "updated_at", "version", "deleted", "last_changed_at").
		Values(id.String(), sh.TenantID, sh.Title, sh.Location, sh.StartAt, sh.EndAt, sh.Rate,
			string(sh.State), sh.UserID, sh.CreatedAt, sh.UpdatedAt, 1, false, sh.LastChangedAt).
		Suffix("RETURNING " + columnList(shiftColumns)).
		QueryRowContext(ctx).
		Scan(shiftFields(&created)...)

	if err != nil {
		return nil, fmt.Errorf("failed to insert shift: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetShift(ctx context.Context, tenantID, id string) (*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetShift")
	defer span.End()

	var sh types.Shift
	err := s.selectShifts(ctx, tenantID).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(shiftFields(&sh)...)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}

	return &sh, nil
}

func (s *Storage) ListShifts(ctx context.Context, tenantID string, f ShiftFilter) ([]*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListShifts")
	defer span.End()

	query := s.selectShifts(ctx, tenantID).OrderBy("start_at")
	if !f.IncludeDeleted {
		query = query.Where(sq.Eq{"deleted": false})
	}
	if f.State != "" {
		query = query.Where(sq.Eq{"state": string(f.State)})
	}
	if f.UserID != "" {
		query = query.Where(sq.Eq{"user_id": f.UserID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*types.Shift
	for rows.Next() {
		var sh types.Shift
		if err := rows.Scan(shiftFields(&sh)...); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, &sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return shifts, nil
}

// UpdateShift performs the conditional write that backs optimistic
// concurrency: the UPDATE matches on the expected version, so a concurrent
// writer that already advanced it makes this a zero-row statement and the
// caller gets ErrVersionConflict instead of a lost update.
func (s *Storage) UpdateShift(ctx context.Context, sh *types.Shift, expectedVersion int64) (*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateShift")
	defer span.End()

	var updated types.Shift
	err := s.db.Statement(ctx).
		Update("shifts").
		Set("title", sh.Title).
		Set("location", sh.Location).
		Set("start_at", sh.StartAt).
		Set("end_at", sh.EndAt).
		Set("rate", sh.Rate).
		Set("state", string(sh.State)).
		Set("user_id", sh.UserID).
		Set("updated_at", sh.UpdatedAt).
		Set("version", expectedVersion+1).
		Set("last_changed_at", sh.LastChangedAt).
		Where(sq.Eq{
			"id":        sh.ID,
			"tenant_id": sh.TenantID,
			"version":   expectedVersion,
		}).
		Suffix("RETURNING " + columnList(shiftColumns)).
		QueryRowContext(ctx).
		Scan(shiftFields(&updated)...)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.versionCheckError(ctx, "shifts", sh.TenantID, sh.ID)
		}
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	return &updated, nil
}

func (s *Storage) DeleteShift(ctx context.Context, tenantID, id string, expectedVersion int64, now time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteShift")
	defer span.End()

	return s.tombstone(ctx, "shifts", tenantID, id, expectedVersion, now)
}

func (s *Storage) ListShiftsChangedSince(ctx context.Context, tenantID string, since int64) ([]*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListShiftsChangedSince")
	defer span.End()

	rows, err := s.selectShifts(ctx, tenantID).
		Where(sq.GtOrEq{"last_changed_at": since}).
		OrderBy("last_changed_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*types.Shift
	for rows.Next() {
		var sh types.Shift
		if err := rows.Scan(shiftFields(&sh)...); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, &sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return shifts, nil
}

func (s *Storage) GetIdempotencyKey(ctx context.Context, tenantID, key string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetIdempotencyKey")
	defer span.End()

	var shiftID string
	err := s.db.Statement(ctx).
		Select("shift_id").
		From("idempotency_keys").
		Where(sq.Eq{"tenant_id": tenantID, "key": key}).
		QueryRowContext(ctx).
		Scan(&shiftID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get idempotency key: %w", err)
	}

	return shiftID, nil
}

func (s *Storage) PutIdempotencyKey(ctx context.Context, tenantID, key, shiftID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.PutIdempotencyKey")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("idempotency_keys").
		Columns("tenant_id", "key", "shift_id").
		Values(tenantID, key, shiftID).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

// tombstone soft-deletes a row with the same compare-and-swap discipline as
// updates. Rows are never physically removed so sync consumers observe the
// deletion.
func (s *Storage) tombstone(ctx context.Context, table, tenantID, id string, expectedVersion int64, now time.Time) error {
	res, err := s.db.Statement(ctx).
		Update(table).
		Set("deleted", true).
		Set("updated_at", now).
		Set("version", expectedVersion+1).
		Set("last_changed_at", now.UnixMilli()).
		Where(sq.Eq{
			"id":        id,
			"tenant_id": tenantID,
			"version":   expectedVersion,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return s.versionCheckError(ctx, table, tenantID, id)
	}

	return nil
}

// versionCheckError disambiguates a zero-row conditional write: the row is
// either absent or its version moved on.
func (s *Storage) versionCheckError(ctx context.Context, table, tenantID, id string) error {
	var version int64
	err := s.db.Statement(ctx).
		Select("version").
		From(table).
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		QueryRowContext(ctx).
		Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check stored version: %w", err)
	}

	return fmt.Errorf("stored version is %d: %w", version, ErrVersionConflict)
}

func columnList(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}

func userFields(u *types.User) []any {
	return []any{
		&u.ID, &u.TenantID, (*string)(&u.Role), &u.Email, &u.FirstName, &u.LastName, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt, &u.Version, &u.Deleted, &u.LastChangedAt,
	}
}

func shiftFields(sh *types.Shift) []any {
	return []any{
		&sh.ID, &sh.TenantID, &sh.Title, &sh.Location, &sh.StartAt, &sh.EndAt, &sh.Rate,
		(*string)(&sh.State), &sh.UserID, &sh.CreatedAt, &sh.UpdatedAt, &sh.Version, &sh.Deleted, &sh.LastChangedAt,
	}
}
