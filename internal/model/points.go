package model

import (
	"fmt"
	"strings"
	"time"
)

// PointsStatus is the approval state of a points entry.  It is stored as a
// string column but modelled as a closed enumeration so that handlers and
// repositories validate transitions instead of comparing loose strings.
type PointsStatus string

const (
	StatusPending  PointsStatus = "pending"
	StatusApproved PointsStatus = "approved"
	StatusDenied   PointsStatus = "denied"
)

// ParsePointsStatus normalizes and validates a status string supplied by a
// client.  Only states an admin may transition an entry into are accepted;
// "pending" is the creation-time state and cannot be re-entered.
func ParsePointsStatus(s string) (PointsStatus, error) {
	switch PointsStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusDenied:
		return StatusDenied, nil
	}
	return "", fmt.Errorf("invalid points status %q", s)
}

// BalanceDelta returns the adjustment to apply to the owning user's balance
// when an entry moves from old to new.  The rule keeps the balance equal to
// the sum of approved points: only transitions into or out of approved move
// the balance, everything else (including a repeated status) is neutral.
// A negative delta must be floored at zero by the caller when applying it.
func BalanceDelta(old, new PointsStatus, points int64) int64 {
	if old == new {
		return 0
	}
	if old != StatusApproved && new == StatusApproved {
		return points
	}
	if old == StatusApproved && new != StatusApproved {
		return -points
	}
	return 0
}

// PointsEntry records the points earned from a single booking, together
// with its own approval lifecycle.  Points is a snapshot of the haircut's
// point value at booking time and is never recomputed.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – customer who booked the haircut.
//  HaircutID – service that was booked.
//  Points    – points value captured at creation, >= 0.
//  Status    – pending, approved or denied.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type PointsEntry struct {
	ID        uint64       // points.id
	UserID    uint64       // points.user_id
	HaircutID uint64       // points.haircut_id
	Points    int64        // points.points
	Status    PointsStatus // points.status
	CreatedAt time.Time    // points.created_at
	UpdatedAt time.Time    // points.updated_at
}
