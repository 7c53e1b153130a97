package model

import "time"

// User represents an application user record as stored in the
// `users` table. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// PointsBalance is the user's current redeemable total. It is a derived
// aggregate kept in its own column rather than recomputed from the points
// table: the only writers are the ledger status transition and the coupon
// redemption, both of which adjust it inside the same transaction that
// performs their own writes.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Username      – unique display name.
//  Email         – unique email address.
//  PasswordHash  – bcrypt hashed password.
//  Role          – role name (CUSTOMER or ADMIN).
//  PointsBalance – redeemable points total, never negative.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
	ID            uint64    // users.id
	Username      string    // users.username
	Email         string    // users.email
	PasswordHash  string    // users.password_hash
	Role          string    // users.role
	PointsBalance int64     // users.points_balance
	CreatedAt     time.Time // users.created_at
	UpdatedAt     time.Time // users.updated_at
}
