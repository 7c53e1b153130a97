// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrInsufficientPoints indicates that a redemption was
// rejected before any state changed, while ErrConflict signals that
// an operation cannot proceed due to existing dependent records
// (e.g. deleting a haircut that ledger entries still reference).
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a haircut that points entries still reference. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrHaircutNotFound is returned when a referenced haircut does not
// exist in the catalog.
var ErrHaircutNotFound = errors.New("haircut not found")

// ErrEntryNotFound is returned when a points entry lookup or status
// transition references an id that does not exist.
var ErrEntryNotFound = errors.New("points entry not found")

// ErrUserNotFound is returned when a balance operation references a user
// id that does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrCouponNotFound is returned when no coupon matches the given code.
var ErrCouponNotFound = errors.New("coupon not found")

// ErrInsufficientPoints is returned when a redemption is attempted
// with a balance below the coupon cost. No state is changed.
var ErrInsufficientPoints = errors.New("insufficient points")

// ErrCouponUsed is returned when verifying a coupon that has already
// been consumed. Exactly one concurrent verifier of a fresh coupon
// succeeds; every other caller receives this error.
var ErrCouponUsed = errors.New("coupon already used")

// ErrCouponExpired is returned when verifying a coupon whose expiry
// date lies in the past.
var ErrCouponExpired = errors.New("coupon expired")
