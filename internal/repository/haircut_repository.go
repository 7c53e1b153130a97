package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/barber-loyalty/internal/model"
)

// HaircutRepo provides CRUD operations for the haircut catalog.  The
// catalog is the read-only source of point values for the ledger: when a
// customer books a haircut, its PointValue is snapshotted into the new
// points entry and never recomputed afterwards.
type HaircutRepo struct {
	db *sql.DB
}

// NewHaircutRepo returns a new HaircutRepo bound to the given database.
func NewHaircutRepo(db *sql.DB) *HaircutRepo { return &HaircutRepo{db: db} }

const haircutColumns = "id, title, description, price_cents, point_value, image_url, created_at, updated_at"

func scanHaircut(row *sql.Row) (model.Haircut, error) {
	var h model.Haircut
	var image sql.NullString
	err := row.Scan(&h.ID, &h.Title, &h.Description, &h.PriceCents, &h.PointValue, &image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return model.Haircut{}, err
	}
	if image.Valid {
		img := image.String
		h.ImageURL = &img
	}
	return h, nil
}

// Create inserts a haircut and returns the stored row.
func (r *HaircutRepo) Create(ctx context.Context, h *model.Haircut) error {
	var image interface{}
	if h.ImageURL != nil && strings.TrimSpace(*h.ImageURL) != "" {
		image = strings.TrimSpace(*h.ImageURL)
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO haircuts (title, description, price_cents, point_value, image_url) VALUES (?,?,?,?,?)",
		h.Title, h.Description, h.PriceCents, h.PointValue, image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	created, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = created
	return nil
}

// GetByID returns a single haircut.  ErrHaircutNotFound is returned when
// no row matches.
func (r *HaircutRepo) GetByID(ctx context.Context, id uint64) (model.Haircut, error) {
	h, err := scanHaircut(r.db.QueryRowContext(ctx,
		"SELECT "+haircutColumns+" FROM haircuts WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Haircut{}, ErrHaircutNotFound
	}
	return h, err
}

// List returns the full catalog newest-first.
func (r *HaircutRepo) List(ctx context.Context) ([]model.Haircut, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+haircutColumns+" FROM haircuts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Haircut, 0)
	for rows.Next() {
		var h model.Haircut
		var image sql.NullString
		if err := rows.Scan(&h.ID, &h.Title, &h.Description, &h.PriceCents, &h.PointValue, &image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if image.Valid {
			img := image.String
			h.ImageURL = &img
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update applies non-nil fields to an existing haircut and returns the
// updated row.  ErrHaircutNotFound is returned when the id does not exist.
func (r *HaircutRepo) Update(ctx context.Context, id uint64, title, description *string, priceCents *uint32, pointValue *int64, imageURL *string) (model.Haircut, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if title != nil {
		sets = append(sets, "title=?")
		args = append(args, strings.TrimSpace(*title))
	}
	if description != nil {
		sets = append(sets, "description=?")
		args = append(args, *description)
	}
	if priceCents != nil {
		sets = append(sets, "price_cents=?")
		args = append(args, *priceCents)
	}
	if pointValue != nil {
		sets = append(sets, "point_value=?")
		args = append(args, *pointValue)
	}
	if imageURL != nil {
		sets = append(sets, "image_url=?")
		args = append(args, strings.TrimSpace(*imageURL))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE haircuts SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return model.Haircut{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either missing or identical values; disambiguate with a lookup.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Haircut{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a haircut from the catalog.  Haircuts that points entries
// still reference cannot be removed; ErrConflict is returned so history
// stays resolvable.
func (r *HaircutRepo) Delete(ctx context.Context, id uint64) error {
	var refs int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM points WHERE haircut_id=?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM haircuts WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHaircutNotFound
	}
	return nil
}
