// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the loyalty.activity queue.
const (
	KindPointsReviewed = "points.reviewed"
	KindCouponRedeemed = "coupon.redeemed"
)

// PointsReviewedEvent is published when an admin approves or denies a
// points entry.  It carries enough for downstream consumers to log or
// notify without querying the primary database.
type PointsReviewedEvent struct {
	EntryID    uint64 `json:"entry_id"`
	UserID     uint64 `json:"user_id"`
	Points     int64  `json:"points"`
	Status     string `json:"status"`
	ReviewedAt string `json:"reviewed_at"`
}

// CouponRedeemedEvent is published when a customer successfully exchanges
// points for a coupon.
type CouponRedeemedEvent struct {
	CouponID   uint64 `json:"coupon_id"`
	UserID     uint64 `json:"user_id"`
	Code       string `json:"code"`
	Cost       int64  `json:"cost"`
	NewBalance int64  `json:"new_balance"`
	RedeemedAt string `json:"redeemed_at"`
}

// Envelope wraps either event type with a Kind discriminator so a single
// durable queue can carry both.
type Envelope struct {
	Kind           string               `json:"kind"`
	PointsReviewed *PointsReviewedEvent `json:"points_reviewed,omitempty"`
	CouponRedeemed *CouponRedeemedEvent `json:"coupon_redeemed,omitempty"`
}
