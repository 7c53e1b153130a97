package model

import "time"

// Coupon is a single-use token redeemable for a free service.  A coupon is
// minted either by a customer spending their points balance or directly by
// an admin (no balance debit); admin-granted coupons may have no owner yet.
// The unused -> used transition is one-way and happens at most once.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owning customer (null for unassigned admin grants).
//  Code       – unique, unguessable redemption code.
//  IsUsed     – whether the coupon has been consumed.
//  ExpiryDate – optional expiry; a past expiry makes the coupon dead.
//  CreatedAt  – creation timestamp.
type Coupon struct {
	ID         uint64     // coupons.id
	UserID     *uint64    // coupons.user_id (nullable)
	Code       string     // coupons.code
	IsUsed     bool       // coupons.is_used
	ExpiryDate *time.Time // coupons.expiry_date (nullable)
	CreatedAt  time.Time  // coupons.created_at
}
