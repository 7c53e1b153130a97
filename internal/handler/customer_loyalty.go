package handler

import (
	"context"  // context with cancellation for DB calls
	"net/http" // HTTP status codes
	"time"     // timeouts and latency measurement

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/barber-loyalty/internal/config"     // app configuration
	"github.com/iliyamo/barber-loyalty/internal/metrics"    // Prometheus collectors
	"github.com/iliyamo/barber-loyalty/internal/model"      // domain models
	q "github.com/iliyamo/barber-loyalty/internal/queue"    // broker event payloads
	"github.com/iliyamo/barber-loyalty/internal/repository" // DB repositories
	queuepub "github.com/iliyamo/barber-loyalty/internal/service" // broker publisher
)

// CustomerLoyaltyHandler covers the customer-facing loyalty surface:
// recording purchases, the points page, redemption and the coupon wallet.
type CustomerLoyaltyHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Haircuts *repository.HaircutRepo
	Points   *repository.PointsRepo
	Coupons  *repository.CouponRepo
}

func NewCustomerLoyaltyHandler(cfg config.Config, u *repository.UserRepo, h *repository.HaircutRepo, p *repository.PointsRepo, cp *repository.CouponRepo) *CustomerLoyaltyHandler {
	return &CustomerLoyaltyHandler{Cfg: cfg, Users: u, Haircuts: h, Points: p, Coupons: cp}
}

type purchaseReq struct {
	HaircutID uint64 `json:"haircut_id"`
}

// CreatePurchase records a booked haircut as a pending ledger entry.  The
// haircut's point value is snapshotted now; later catalog edits do not
// change what this entry is worth.
func (h *CustomerLoyaltyHandler) CreatePurchase(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil || req.HaircutID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "haircut_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hc, err := h.Haircuts.GetByID(ctx, req.HaircutID)
	if err != nil {
		if err == repository.ErrHaircutNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "haircut not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	entry, err := h.Points.CreatePending(ctx, userID, hc.ID, hc.PointValue)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record purchase failed"})
	}
	return c.JSON(http.StatusCreated, viewPointsEntry(entry))
}

// GetPoints returns the caller's spendable balance plus the approved
// entries that make it up.
func (h *CustomerLoyaltyHandler) GetPoints(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	balance, err := h.Users.GetBalance(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	entries, err := h.Points.ListByUser(ctx, userID, model.StatusApproved)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"balance": balance,
		"entries": viewPointsEntries(entries),
	})
}

// Redeem exchanges points for a coupon at the configured cost.  The debit
// and the mint are one transaction in the repository, so two concurrent
// calls with one coupon's worth of points produce exactly one coupon.
func (h *CustomerLoyaltyHandler) Redeem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	coupon, newBalance, err := h.Coupons.Redeem(ctx, userID, h.Cfg.CouponCost)
	metrics.RedemptionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if err == repository.ErrInsufficientPoints {
			metrics.Redemptions.WithLabelValues("insufficient_points").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient points"})
		}
		if err == repository.ErrUserNotFound {
			metrics.Redemptions.WithLabelValues("error").Inc()
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		metrics.Redemptions.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "redeem failed"})
	}
	metrics.Redemptions.WithLabelValues("success").Inc()

	// Fire-and-forget: the redemption already committed, a broker outage
	// must not turn it into a 5xx.
	_ = queuepub.PublishActivity(ctx, q.Envelope{
		Kind: q.KindCouponRedeemed,
		CouponRedeemed: &q.CouponRedeemedEvent{
			CouponID:   coupon.ID,
			UserID:     userID,
			Code:       coupon.Code,
			Cost:       h.Cfg.CouponCost,
			NewBalance: newBalance,
			RedeemedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"coupon":      viewCoupon(coupon),
		"new_balance": newBalance,
	})
}

// MyCoupons lists the caller's coupons newest-first.
func (h *CustomerLoyaltyHandler) MyCoupons(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	coupons, err := h.Coupons.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coupons": viewCoupons(coupons)})
}

// GetConfig exposes the client-relevant settings, currently just the
// coupon cost so the frontend can render the redeem button state.
func (h *CustomerLoyaltyHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"coupon_cost": h.Cfg.CouponCost})
}
