package handler

import (
	"context"  // context with cancellation for DB calls
	"net/http" // HTTP status codes
	"strconv"  // path parameter parsing
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/barber-loyalty/internal/repository" // DB repositories
)

// CatalogHandler serves the public haircut catalog.
type CatalogHandler struct {
	Haircuts *repository.HaircutRepo
}

func NewCatalogHandler(h *repository.HaircutRepo) *CatalogHandler {
	return &CatalogHandler{Haircuts: h}
}

// List returns every haircut in the catalog, newest first.
func (h *CatalogHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Haircuts.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"haircuts": viewHaircuts(items)})
}

// Get returns one haircut by id.
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid haircut id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Haircuts.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrHaircutNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "haircut not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, viewHaircut(item))
}
