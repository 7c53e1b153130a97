package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/barber-loyalty/internal/model"
)

// Role names as stored in users.role and carried in the JWT "role" claim.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT numeric claims decode as float64, but some callers store
// the id in other widths, so all the plausible types are handled.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// Response views.  Models stay tag-free; these are the JSON shapes the API
// actually returns.

type haircutView struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  uint32    `json:"price_cents"`
	PointValue  int64     `json:"point_value"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewHaircut(h model.Haircut) haircutView {
	return haircutView{
		ID:          h.ID,
		Title:       h.Title,
		Description: h.Description,
		PriceCents:  h.PriceCents,
		PointValue:  h.PointValue,
		ImageURL:    h.ImageURL,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func viewHaircuts(in []model.Haircut) []haircutView {
	out := make([]haircutView, 0, len(in))
	for _, h := range in {
		out = append(out, viewHaircut(h))
	}
	return out
}

type pointsEntryView struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	HaircutID uint64    `json:"haircut_id"`
	Points    int64     `json:"points"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func viewPointsEntry(e model.PointsEntry) pointsEntryView {
	return pointsEntryView{
		ID:        e.ID,
		UserID:    e.UserID,
		HaircutID: e.HaircutID,
		Points:    e.Points,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func viewPointsEntries(in []model.PointsEntry) []pointsEntryView {
	out := make([]pointsEntryView, 0, len(in))
	for _, e := range in {
		out = append(out, viewPointsEntry(e))
	}
	return out
}

type couponView struct {
	ID         uint64     `json:"id"`
	UserID     *uint64    `json:"user_id,omitempty"`
	Code       string     `json:"code"`
	IsUsed     bool       `json:"is_used"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func viewCoupon(c model.Coupon) couponView {
	return couponView{
		ID:         c.ID,
		UserID:     c.UserID,
		Code:       c.Code,
		IsUsed:     c.IsUsed,
		ExpiryDate: c.ExpiryDate,
		CreatedAt:  c.CreatedAt,
	}
}

func viewCoupons(in []model.Coupon) []couponView {
	out := make([]couponView, 0, len(in))
	for _, c := range in {
		out = append(out, viewCoupon(c))
	}
	return out
}
