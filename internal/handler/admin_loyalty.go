package handler

import (
	"context"  // context with cancellation for DB calls
	"net/http" // HTTP status codes
	"strconv"  // path parameter parsing
	"strings"  // input normalization
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/barber-loyalty/internal/metrics"    // Prometheus collectors
	"github.com/iliyamo/barber-loyalty/internal/model"      // domain models
	q "github.com/iliyamo/barber-loyalty/internal/queue"    // broker event payloads
	"github.com/iliyamo/barber-loyalty/internal/repository" // DB repositories
	queuepub "github.com/iliyamo/barber-loyalty/internal/service" // broker publisher
)

// AdminLoyaltyHandler covers the admin review queue and the coupon desk:
// listing transactions, approving or denying them, granting coupons and
// verifying them at the counter.
type AdminLoyaltyHandler struct {
	Points  *repository.PointsRepo
	Coupons *repository.CouponRepo
}

func NewAdminLoyaltyHandler(p *repository.PointsRepo, c *repository.CouponRepo) *AdminLoyaltyHandler {
	return &AdminLoyaltyHandler{Points: p, Coupons: c}
}

// ListTransactions returns every ledger entry joined with user and haircut
// data.  An optional ?status= query narrows to one state.
func (h *AdminLoyaltyHandler) ListTransactions(c echo.Context) error {
	var status model.PointsStatus
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		switch model.PointsStatus(s) {
		case model.StatusPending, model.StatusApproved, model.StatusDenied:
			status = model.PointsStatus(s)
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Points.ListDetails(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"transactions": list})
}

// ListPending returns only the review queue.
func (h *AdminLoyaltyHandler) ListPending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Points.ListDetails(ctx, model.StatusPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"transactions": list})
}

type reviewReq struct {
	Status string `json:"status"`
}

// Review transitions a ledger entry to approved or denied and adjusts the
// owner's balance atomically.  Any entry can be re-reviewed: denying a
// previously approved entry claws the points back.
func (h *AdminLoyaltyHandler) Review(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid transaction id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status, err := model.ParsePointsStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or denied"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entry, err := h.Points.SetStatus(ctx, id, status)
	if err != nil {
		if err == repository.ErrEntryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	metrics.LedgerTransitions.WithLabelValues(string(status)).Inc()

	_ = queuepub.PublishActivity(ctx, q.Envelope{
		Kind: q.KindPointsReviewed,
		PointsReviewed: &q.PointsReviewedEvent{
			EntryID:    entry.ID,
			UserID:     entry.UserID,
			Points:     entry.Points,
			Status:     string(status),
			ReviewedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})

	return c.JSON(http.StatusOK, viewPointsEntry(entry))
}

type grantCouponReq struct {
	UserID     *uint64 `json:"user_id"`
	Code       string  `json:"code"`
	ExpiryDate *string `json:"expiry_date"` // RFC 3339; omit for no expiry
}

// GrantCoupon mints a coupon outside the points flow, e.g. a promotion or
// a goodwill gesture.
func (h *AdminLoyaltyHandler) GrantCoupon(c echo.Context) error {
	var req grantCouponReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var expiry *time.Time
	if req.ExpiryDate != nil && strings.TrimSpace(*req.ExpiryDate) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.ExpiryDate))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "expiry_date must be RFC 3339"})
		}
		expiry = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	coupon, err := h.Coupons.Grant(ctx, req.UserID, req.Code, expiry)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "coupon code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "grant failed"})
	}
	return c.JSON(http.StatusCreated, viewCoupon(coupon))
}

// ListCoupons returns every coupon ever issued.
func (h *AdminLoyaltyHandler) ListCoupons(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	coupons, err := h.Coupons.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coupons": viewCoupons(coupons)})
}

type verifyCouponReq struct {
	Code string `json:"code"`
}

// VerifyCoupon consumes a coupon at the counter.  Consumption is one-shot:
// the first successful call flips is_used, every later attempt with the
// same code reports it as already used.
func (h *AdminLoyaltyHandler) VerifyCoupon(c echo.Context) error {
	var req verifyCouponReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	coupon, err := h.Coupons.Consume(ctx, strings.TrimSpace(req.Code))
	switch err {
	case nil:
		metrics.CouponVerifications.WithLabelValues("consumed").Inc()
		return c.JSON(http.StatusOK, echo.Map{"valid": true, "coupon": viewCoupon(coupon)})
	case repository.ErrCouponNotFound:
		metrics.CouponVerifications.WithLabelValues("not_found").Inc()
		return c.JSON(http.StatusNotFound, echo.Map{"valid": false, "error": "coupon not found"})
	case repository.ErrCouponUsed:
		metrics.CouponVerifications.WithLabelValues("already_used").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"valid": false, "error": "coupon already used"})
	case repository.ErrCouponExpired:
		metrics.CouponVerifications.WithLabelValues("expired").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"valid": false, "error": "coupon expired"})
	default:
		metrics.CouponVerifications.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
}
