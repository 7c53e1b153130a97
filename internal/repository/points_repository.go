package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/barber-loyalty/internal/model"
)

// PointsRepo provides access to the points ledger.  Entries are append-only
// apart from their status column; the owning user's balance column is
// adjusted exclusively inside SetStatus (and by coupon redemption in
// CouponRepo), always in the same transaction as the write that caused the
// adjustment.  All timestamp fields are stored in UTC.
type PointsRepo struct {
	db *sql.DB
}

// NewPointsRepo returns a new PointsRepo bound to the given database.
func NewPointsRepo(db *sql.DB) *PointsRepo { return &PointsRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions that
// span repositories.
func (r *PointsRepo) DB() *sql.DB { return r.db }

// CreatePending inserts a new ledger entry in the pending state.  points is
// the haircut's point value snapshotted by the caller at booking time.  The
// user's balance is untouched: pending points become spendable only through
// SetStatus.
func (r *PointsRepo) CreatePending(ctx context.Context, userID, haircutID uint64, points int64) (model.PointsEntry, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO points (user_id, haircut_id, points, status) VALUES (?,?,?,?)",
		userID, haircutID, points, model.StatusPending)
	if err != nil {
		return model.PointsEntry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PointsEntry{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single ledger entry.  ErrEntryNotFound is returned
// when no row matches.
func (r *PointsRepo) GetByID(ctx context.Context, id uint64) (model.PointsEntry, error) {
	var e model.PointsEntry
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, haircut_id, points, status, created_at, updated_at FROM points WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.UserID, &e.HaircutID, &e.Points, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.PointsEntry{}, ErrEntryNotFound
	}
	return e, err
}

// SetStatus transitions a ledger entry to newStatus and applies the
// matching balance adjustment to the owning user as a single atomic unit.
// The entry row and the user row are both locked before anything is
// computed, so concurrent transitions and redemptions for the same user
// serialize against each other.  Repeating a transition into the entry's
// current status rewrites the status idempotently and leaves the balance
// alone.  The debit side is floored at zero in SQL so a reversal can never
// drive the balance negative even if earlier adjustments were inconsistent.
func (r *PointsRepo) SetStatus(ctx context.Context, entryID uint64, newStatus model.PointsStatus) (model.PointsEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.PointsEntry{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var e model.PointsEntry
	err = tx.QueryRowContext(ctx,
		"SELECT id, user_id, haircut_id, points, status, created_at, updated_at FROM points WHERE id=? FOR UPDATE",
		entryID).Scan(&e.ID, &e.UserID, &e.HaircutID, &e.Points, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.PointsEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return model.PointsEntry{}, err
	}

	delta := model.BalanceDelta(e.Status, newStatus, e.Points)

	if _, err := tx.ExecContext(ctx,
		"UPDATE points SET status=? WHERE id=?", newStatus, entryID); err != nil {
		return model.PointsEntry{}, err
	}

	if delta != 0 {
		// Lock the user row before touching the balance so the read-modify
		// -write below cannot interleave with a concurrent redemption.
		var balance int64
		if err := tx.QueryRowContext(ctx,
			"SELECT points_balance FROM users WHERE id=? FOR UPDATE", e.UserID).Scan(&balance); err != nil {
			return model.PointsEntry{}, err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET points_balance=GREATEST(0, points_balance + ?) WHERE id=?",
			delta, e.UserID); err != nil {
			return model.PointsEntry{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.PointsEntry{}, err
	}
	committed = true

	e.Status = newStatus
	e.UpdatedAt = time.Now().UTC()
	return e, nil
}

// TransactionDetail joins a ledger entry with its user and haircut for the
// admin dashboard.  It mirrors what the admin needs to decide an approval:
// who earned the points, on which service, and for how much.
type TransactionDetail struct {
	ID           uint64             `json:"id"`
	UserID       uint64             `json:"user_id"`
	Username     string             `json:"user_name"`
	UserEmail    string             `json:"user_email"`
	HaircutTitle string             `json:"haircut_title"`
	AmountCents  uint32             `json:"amount_cents"`
	Points       int64              `json:"points"`
	Status       model.PointsStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ListDetails returns ledger entries joined with user and haircut data,
// newest first.  When status is non-empty only entries in that state are
// returned (the pending queue uses this).
func (r *PointsRepo) ListDetails(ctx context.Context, status model.PointsStatus) ([]TransactionDetail, error) {
	q := `SELECT p.id, p.user_id, u.username, u.email,
	             h.title, h.price_cents, p.points, p.status, p.created_at
	      FROM points p
	      JOIN users u ON u.id = p.user_id
	      JOIN haircuts h ON h.id = p.haircut_id`
	args := []interface{}{}
	if status != "" {
		q += " WHERE p.status = ?"
		args = append(args, status)
	}
	q += " ORDER BY p.created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TransactionDetail, 0)
	for rows.Next() {
		var d TransactionDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.Username, &d.UserEmail,
			&d.HaircutTitle, &d.AmountCents, &d.Points, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByUser returns a user's ledger entries, optionally filtered by
// status, newest first.  The customer points page passes StatusApproved to
// show what makes up the current balance.
func (r *PointsRepo) ListByUser(ctx context.Context, userID uint64, status model.PointsStatus) ([]model.PointsEntry, error) {
	q := "SELECT id, user_id, haircut_id, points, status, created_at, updated_at FROM points WHERE user_id=?"
	args := []interface{}{userID}
	if status != "" {
		q += " AND status=?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PointsEntry, 0)
	for rows.Next() {
		var e model.PointsEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.HaircutID, &e.Points, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
