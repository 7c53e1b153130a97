package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/barber-loyalty/internal/model"
	"github.com/iliyamo/barber-loyalty/internal/utils"
)

// CouponRepo provides access to issued coupons and owns the two operations
// with real concurrency requirements on them: redeeming points for a new
// coupon and consuming a coupon at the counter.  Both run inside a single
// transaction with row locks so that exactly one of any set of concurrent
// callers wins.
type CouponRepo struct {
	db *sql.DB
}

// NewCouponRepo returns a new CouponRepo bound to the given database.
func NewCouponRepo(db *sql.DB) *CouponRepo { return &CouponRepo{db: db} }

const couponColumns = "id, user_id, code, is_used, expiry_date, created_at"

func scanCouponRows(rows *sql.Rows) (model.Coupon, error) {
	var c model.Coupon
	var userID sql.NullInt64
	var expiry sql.NullTime
	if err := rows.Scan(&c.ID, &userID, &c.Code, &c.IsUsed, &expiry, &c.CreatedAt); err != nil {
		return model.Coupon{}, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		c.UserID = &uid
	}
	if expiry.Valid {
		exp := expiry.Time
		c.ExpiryDate = &exp
	}
	return c, nil
}

// Redeem exchanges cost points of the user's balance for a freshly minted
// coupon.  The balance row is locked first, so the precondition check and
// the debit form one serialized unit against concurrent redemptions and
// ledger transitions: with exactly cost points available, one of two
// concurrent calls succeeds and the other fails with ErrInsufficientPoints.
// The generated code is retried on the (astronomically unlikely) unique-key
// collision.  Returns the coupon and the balance after the debit.
func (r *CouponRepo) Redeem(ctx context.Context, userID uint64, cost int64) (model.Coupon, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Coupon{}, 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var balance int64
	err = tx.QueryRowContext(ctx,
		"SELECT points_balance FROM users WHERE id=? FOR UPDATE", userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return model.Coupon{}, 0, ErrUserNotFound
	}
	if err != nil {
		return model.Coupon{}, 0, err
	}
	if balance < cost {
		return model.Coupon{}, 0, ErrInsufficientPoints
	}

	newBalance := balance - cost
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET points_balance=? WHERE id=?", newBalance, userID); err != nil {
		return model.Coupon{}, 0, err
	}

	var couponID uint64
	var code string
	for attempt := 0; ; attempt++ {
		code, err = utils.NewCouponCode()
		if err != nil {
			return model.Coupon{}, 0, err
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO coupons (user_id, code, is_used) VALUES (?,?,0)", userID, code)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") && attempt < 3 {
				continue
			}
			return model.Coupon{}, 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return model.Coupon{}, 0, err
		}
		couponID = uint64(id)
		break
	}

	if err := tx.Commit(); err != nil {
		return model.Coupon{}, 0, err
	}
	committed = true

	uid := userID
	return model.Coupon{
		ID:        couponID,
		UserID:    &uid,
		Code:      code,
		IsUsed:    false,
		CreatedAt: time.Now().UTC(),
	}, newBalance, nil
}

// Consume marks the coupon with the given code as used.  The row is locked
// by code before the checks run, so concurrent verification attempts on the
// same code serialize: exactly one caller sees the coupon unused and flips
// it, every later caller gets ErrCouponUsed.  Expired coupons fail with
// ErrCouponExpired even when still unused.  The returned coupon includes
// the owner for display at the counter.
func (r *CouponRepo) Consume(ctx context.Context, code string) (model.Coupon, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Coupon{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var c model.Coupon
	var userID sql.NullInt64
	var expiry sql.NullTime
	err = tx.QueryRowContext(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE code=? FOR UPDATE",
		strings.TrimSpace(code)).Scan(&c.ID, &userID, &c.Code, &c.IsUsed, &expiry, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Coupon{}, ErrCouponNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		c.UserID = &uid
	}
	if expiry.Valid {
		exp := expiry.Time
		c.ExpiryDate = &exp
	}

	if c.IsUsed {
		return model.Coupon{}, ErrCouponUsed
	}
	if c.ExpiryDate != nil && time.Now().UTC().After(*c.ExpiryDate) {
		return model.Coupon{}, ErrCouponExpired
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE coupons SET is_used=1 WHERE id=?", c.ID); err != nil {
		return model.Coupon{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Coupon{}, err
	}
	committed = true

	c.IsUsed = true
	return c, nil
}

// Grant mints a coupon directly, without touching any balance.  userID may
// be nil for a coupon handed out before it is assigned to a customer, and
// expiry may be nil for a coupon that never expires.  When code is empty a
// random one is generated.  A caller-specified code that already exists
// fails with ErrConflict immediately; only generated codes are redrawn on
// collision.
func (r *CouponRepo) Grant(ctx context.Context, userID *uint64, code string, expiry *time.Time) (model.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	supplied := code != ""
	for attempt := 0; ; attempt++ {
		if !supplied {
			generated, err := utils.NewCouponCode()
			if err != nil {
				return model.Coupon{}, err
			}
			code = generated
		}
		var uid interface{}
		if userID != nil {
			uid = *userID
		}
		var exp interface{}
		if expiry != nil {
			exp = expiry.UTC()
		}
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO coupons (user_id, code, is_used, expiry_date) VALUES (?,?,0,?)",
			uid, code, exp)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				if supplied || attempt >= 3 {
					return model.Coupon{}, ErrConflict
				}
				continue
			}
			return model.Coupon{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return model.Coupon{}, err
		}
		return model.Coupon{
			ID:         uint64(id),
			UserID:     userID,
			Code:       code,
			IsUsed:     false,
			ExpiryDate: expiry,
			CreatedAt:  time.Now().UTC(),
		}, nil
	}
}

// ListByUser returns a customer's coupons newest-first.
func (r *CouponRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Coupon, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE user_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCoupons(rows)
}

// ListAll returns every issued coupon newest-first for the admin view.
func (r *CouponRepo) ListAll(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+couponColumns+" FROM coupons ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCoupons(rows)
}

func collectCoupons(rows *sql.Rows) ([]model.Coupon, error) {
	out := make([]model.Coupon, 0)
	for rows.Next() {
		c, err := scanCouponRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
