package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestRevokeAllForUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.RevokeAllForUser(context.Background(), 4); err != nil {
		t.Fatalf("RevokeAllForUser: %v", err)
	}
	expectMet(t, mock)
}

func TestValidateRefreshRejectsRevokedAndExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepo(db)
	sel := regexp.QuoteMeta("SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1")
	cols := []string{"user_id", "expires_at", "revoked_at"}
	now := time.Now().UTC()

	mock.ExpectQuery(sel).WithArgs("revoked-hash").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(4), now.Add(time.Hour), now.Add(-time.Minute)))
	if _, err := repo.ValidateRefresh(context.Background(), "revoked-hash"); err == nil {
		t.Fatal("revoked token validated")
	}

	mock.ExpectQuery(sel).WithArgs("expired-hash").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(4), now.Add(-time.Hour), nil))
	if _, err := repo.ValidateRefresh(context.Background(), "expired-hash"); err == nil {
		t.Fatal("expired token validated")
	}

	mock.ExpectQuery(sel).WithArgs("live-hash").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(4), now.Add(time.Hour), nil))
	uid, err := repo.ValidateRefresh(context.Background(), "live-hash")
	if err != nil || uid != 4 {
		t.Fatalf("ValidateRefresh = %d, %v; want 4, nil", uid, err)
	}
	expectMet(t, mock)
}
