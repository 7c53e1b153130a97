package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/barber-loyalty/internal/config"
	"github.com/iliyamo/barber-loyalty/internal/repository"
)

// newJSONContext builds an echo context for a request with a JSON body.
// Handlers under test here never reach their repositories; every case
// fails validation first.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReviewRejectsBadInput(t *testing.T) {
	h := NewAdminLoyaltyHandler(nil, nil)

	cases := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"non-numeric id", "abc", `{"status":"approved"}`, http.StatusBadRequest},
		{"zero id", "0", `{"status":"approved"}`, http.StatusBadRequest},
		{"pending not re-enterable", "5", `{"status":"pending"}`, http.StatusBadRequest},
		{"unknown status", "5", `{"status":"maybe"}`, http.StatusBadRequest},
		{"empty status", "5", `{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPatch, "/v1/admin/transactions/"+tc.id, tc.body)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			if err := h.Review(c); err != nil {
				t.Fatalf("Review returned error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestVerifyCouponRequiresCode(t *testing.T) {
	h := NewAdminLoyaltyHandler(nil, nil)
	for _, body := range []string{`{}`, `{"code":""}`, `{"code":"   "}`} {
		c, rec := newJSONContext(http.MethodPost, "/v1/admin/coupons/verify", body)
		if err := h.VerifyCoupon(c); err != nil {
			t.Fatalf("VerifyCoupon returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestGrantCouponRejectsBadExpiry(t *testing.T) {
	h := NewAdminLoyaltyHandler(nil, nil)
	c, rec := newJSONContext(http.MethodPost, "/v1/admin/coupons", `{"expiry_date":"next tuesday"}`)
	if err := h.GrantCoupon(c); err != nil {
		t.Fatalf("GrantCoupon returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListTransactionsRejectsBadStatusFilter(t *testing.T) {
	h := NewAdminLoyaltyHandler(nil, nil)
	c, rec := newJSONContext(http.MethodGet, "/v1/admin/transactions?status=bogus", "")
	if err := h.ListTransactions(c); err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreatePurchaseRequiresAuthAndHaircut(t *testing.T) {
	h := NewCustomerLoyaltyHandler(config.Config{}, nil, nil, nil, nil)

	// No user_id in context: unauthorized.
	c, rec := newJSONContext(http.MethodPost, "/v1/purchases", `{"haircut_id":1}`)
	if err := h.CreatePurchase(c); err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	// Authenticated but no haircut_id: bad request.
	c, rec = newJSONContext(http.MethodPost, "/v1/purchases", `{}`)
	c.Set("user_id", uint64(9))
	if err := h.CreatePurchase(c); err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetConfigReturnsCouponCost(t *testing.T) {
	h := NewCustomerLoyaltyHandler(config.Config{CouponCost: 150}, nil, nil, nil, nil)
	c, rec := newJSONContext(http.MethodGet, "/v1/config", "")
	if err := h.GetConfig(c); err != nil {
		t.Fatalf("GetConfig returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["coupon_cost"] != 150 {
		t.Fatalf("coupon_cost = %d, want 150", body["coupon_cost"])
	}
}

func TestRegisterAdminRequiresKey(t *testing.T) {
	h := NewAuthHandler(config.Config{AdminKey: "shop-secret"}, nil, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing key", `{"username":"a","email":"a@b.c","password":"p"}`},
		{"wrong key", `{"username":"a","email":"a@b.c","password":"p","admin_key":"nope"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPost, "/v1/auth/register/admin", tc.body)
			if err := h.RegisterAdmin(c); err != nil {
				t.Fatalf("RegisterAdmin returned error: %v", err)
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rec.Code)
			}
		})
	}
}

func TestRegisterAdminDisabledWithoutConfiguredKey(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/register/admin",
		`{"username":"a","email":"a@b.c","password":"p","admin_key":""}`)
	if err := h.RegisterAdmin(c); err != nil {
		t.Fatalf("RegisterAdmin returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestLogoutAllRequiresAuth(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)
	c, rec := newJSONContext(http.MethodPost, "/v1/logout-all", "")
	if err := h.LogoutAll(c); err != nil {
		t.Fatalf("LogoutAll returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

// A redemption for a user row that no longer exists is a 404, not a 500.
func TestRedeemMapsUnknownUserTo404(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT points_balance FROM users WHERE id=? FOR UPDATE")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"points_balance"}))
	mock.ExpectRollback()

	h := NewCustomerLoyaltyHandler(config.Config{CouponCost: 100}, nil, nil, nil, repository.NewCouponRepo(db))
	c, rec := newJSONContext(http.MethodPost, "/v1/coupons/redeem", "")
	c.Set("user_id", uint64(9))
	if err := h.Redeem(c); err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterValidatesBody(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"username":"a"}`},
		{"password mismatch", `{"username":"a","email":"a@b.c","password":"p1","confirm_password":"p2"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPost, "/v1/auth/register", tc.body)
			if err := h.Register(c); err != nil {
				t.Fatalf("Register returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}
