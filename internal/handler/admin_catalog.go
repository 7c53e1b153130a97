package handler

import (
	"context"  // context with cancellation for DB calls
	"net/http" // HTTP status codes
	"strconv"  // path parameter parsing
	"strings"  // input normalization
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/barber-loyalty/internal/model"      // domain models
	"github.com/iliyamo/barber-loyalty/internal/repository" // DB repositories
)

// AdminCatalogHandler covers the admin-only haircut CRUD surface.
type AdminCatalogHandler struct {
	Haircuts *repository.HaircutRepo
}

func NewAdminCatalogHandler(h *repository.HaircutRepo) *AdminCatalogHandler {
	return &AdminCatalogHandler{Haircuts: h}
}

type createHaircutReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PriceCents  uint32  `json:"price_cents"`
	PointValue  int64   `json:"point_value"`
	ImageURL    *string `json:"image_url"`
}

type updateHaircutReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PriceCents  *uint32 `json:"price_cents"`
	PointValue  *int64  `json:"point_value"`
	ImageURL    *string `json:"image_url"`
}

// Create adds a haircut to the catalog.
func (h *AdminCatalogHandler) Create(c echo.Context) error {
	var req createHaircutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.PointValue < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "point_value must be >= 0"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hc := model.Haircut{
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		PointValue:  req.PointValue,
		ImageURL:    req.ImageURL,
	}
	if err := h.Haircuts.Create(ctx, &hc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, viewHaircut(hc))
}

// Update modifies catalog fields of an existing haircut.  Point value
// changes only affect future bookings; entries already written keep the
// value they were created with.
func (h *AdminCatalogHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid haircut id"})
	}
	var req updateHaircutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
	}
	if req.PointValue != nil && *req.PointValue < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "point_value must be >= 0"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hc, err := h.Haircuts.Update(ctx, id, req.Title, req.Description, req.PriceCents, req.PointValue, req.ImageURL)
	if err != nil {
		if err == repository.ErrHaircutNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "haircut not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, viewHaircut(hc))
}

// Delete removes an unreferenced haircut.  409 when points history still
// points at it.
func (h *AdminCatalogHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid haircut id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Haircuts.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrHaircutNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "haircut not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "haircut has points history"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
