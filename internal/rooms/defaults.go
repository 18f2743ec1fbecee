// Package rooms owns the estimate's room list: default construction, field
// edits with their dependent-field cascade, and repricing after every change.
package rooms

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/pricing"
)

var (
	ErrIncompleteCatalog = errors.New("catalog cannot produce a default room")
	ErrRoomNotFound      = errors.New("room not found")
)

// IDFunc generates room identifiers.
type IDFunc func() string

// NewID is the default IDFunc.
func NewID() string {
	return uuid.NewString()
}

// DefaultSizePolicy names how a size is picked when none is selected:
// the median of the sizes available for the room type.
const DefaultSizePolicy = "median"

// DefaultSize picks the median entry (len/2) of sizes.
func DefaultSize(sizes []catalog.RoomSize) (catalog.RoomSize, bool) {
	if len(sizes) == 0 {
		return catalog.RoomSize{}, false
	}
	return sizes[len(sizes)/2], true
}

// New builds a priced room with default selections for the catalog's first room type.
func New(cat catalog.Catalog, newID IDFunc) (models.Room, error) {
	if !cat.Complete() {
		return models.Room{}, ErrIncompleteCatalog
	}
	if newID == nil {
		newID = NewID
	}

	roomType := cat.RoomTypes[0]
	size, ok := DefaultSize(cat.SizesFor(roomType.ID))
	if !ok {
		size = cat.RoomSizes[0]
	}
	paint, _ := cat.DefaultPaintType()

	room := models.Room{
		ID:          newID(),
		Name:        roomType.Name,
		RoomTypeID:  roomType.ID,
		SizeID:      size.ID,
		PaintTypeID: paint.ID,
		Baseboard:   catalog.BaseboardNone,
		Doors:       models.Openings{PaintMethod: catalog.MethodSpray},
		Windows:     models.Openings{PaintMethod: catalog.MethodSpray},
		Fireplace:   catalog.FireplaceNone,
		Repairs:     catalog.RepairsNone,
	}
	return pricing.ComputeRoomPrice(room, cat), nil
}
