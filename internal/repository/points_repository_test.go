package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/barber-loyalty/internal/model"
)

var (
	selectEntryForUpdate = regexp.QuoteMeta("SELECT id, user_id, haircut_id, points, status, created_at, updated_at FROM points WHERE id=? FOR UPDATE")
	entryCols            = []string{"id", "user_id", "haircut_id", "points", "status", "created_at", "updated_at"}
)

func TestSetStatusUnknownEntryRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPointsRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(selectEntryForUpdate).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(entryCols))
	mock.ExpectRollback()

	if _, err := repo.SetStatus(context.Background(), 99, model.StatusApproved); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
	expectMet(t, mock)
}

// Re-reviewing an entry into its current status rewrites the status but
// must not touch the user's balance at all.
func TestSetStatusSameStatusSkipsBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPointsRepo(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEntryForUpdate).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(int64(5), int64(1), int64(2), int64(80), "approved", now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE points SET status=? WHERE id=?")).
		WithArgs("approved", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := repo.SetStatus(context.Background(), 5, model.StatusApproved)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if entry.Status != model.StatusApproved {
		t.Fatalf("status = %s, want approved", entry.Status)
	}
	expectMet(t, mock)
}

// Denying a previously approved entry claws the points back with a
// negative delta, floored at zero in SQL.
func TestSetStatusDenyAfterApproveDebits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPointsRepo(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEntryForUpdate).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(int64(5), int64(1), int64(2), int64(80), "approved", now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE points SET status=? WHERE id=?")).
		WithArgs("denied", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT points_balance FROM users WHERE id=? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"points_balance"}).AddRow(int64(80)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET points_balance=GREATEST(0, points_balance + ?) WHERE id=?")).
		WithArgs(int64(-80), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := repo.SetStatus(context.Background(), 5, model.StatusDenied); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	expectMet(t, mock)
}
