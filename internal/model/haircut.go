package model

import "time"

// Haircut represents a bookable service in the shop's catalog.  Each
// haircut carries the number of loyalty points a customer earns when an
// admin approves a purchase of it.  PointValue is snapshotted into the
// points entry at booking time, so later edits to the catalog never
// change already-recorded entries.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display name of the service.
//  Description – longer description shown in listings.
//  PriceCents  – price in cents.
//  PointValue  – loyalty points earned per approved purchase.
//  ImageURL    – optional image for the listing.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Haircut struct {
	ID          uint64    // haircuts.id
	Title       string    // haircuts.title
	Description string    // haircuts.description
	PriceCents  uint32    // haircuts.price_cents
	PointValue  int64     // haircuts.point_value
	ImageURL    *string   // haircuts.image_url (nullable)
	CreatedAt   time.Time // haircuts.created_at
	UpdatedAt   time.Time // haircuts.updated_at
}
