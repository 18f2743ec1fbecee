package rooms

import (
	"errors"
	"fmt"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/pricing"
)

var (
	ErrUnknownRoomType = errors.New("unknown room type")
	ErrUnknownSize     = errors.New("unknown room size")
	ErrSizeMismatch    = errors.New("room size does not belong to the room type")
	ErrUnknownPaint    = errors.New("unknown paint type")
	ErrUnknownOption   = errors.New("unknown option")
	ErrNegativeCount   = errors.New("count must not be negative")
)

// Edit is a single field change. The set of edits is closed; see the types below.
type Edit interface {
	apply(room models.Room, cat catalog.Catalog) (models.Room, error)
}

type SetRoomType struct{ RoomTypeID string }
type SetSize struct{ SizeID string }
type SetPaintType struct{ PaintTypeID string }
type SetBaseboard struct{ Tier catalog.BaseboardTier }
type SetToggle struct {
	Toggle models.Toggle
	On     bool
}
type SetAddOn struct {
	Key string
	On  bool
}
type SetDoors struct {
	Count  int
	Method catalog.PaintMethod
}
type SetWindows struct {
	Count  int
	Method catalog.PaintMethod
}
type SetClosets struct{ WalkIn, Regular int }
type SetFireplace struct{ Name string }
type SetRepairs struct{ Name string }
type SetBaseboardFeet struct{ Feet float64 }
type Rename struct{ Name string }

// Apply is the room reducer: it applies edit, re-derives dependent fields,
// clears millwork priming when it is no longer available, and reprices.
// On error the original room is returned unchanged.
func Apply(room models.Room, edit Edit, cat catalog.Catalog) (models.Room, error) {
	next, err := edit.apply(room.Clone(), cat)
	if err != nil {
		return room, err
	}
	return pricing.ComputeRoomPrice(normalize(next), cat), nil
}

// normalize clears selections the room can no longer carry.
func normalize(room models.Room) models.Room {
	if room.Toggles.MillworkPriming && !pricing.MillworkEligible(room) {
		room.Toggles.MillworkPriming = false
	}
	return room
}

func (e SetRoomType) apply(room models.Room, cat catalog.Catalog) (models.Room, error) {
	rt, ok := cat.RoomType(e.RoomTypeID)
	if !ok {
		return room, fmt.Errorf("%w: %q", ErrUnknownRoomType, e.RoomTypeID)
	}
	previous, hadPrevious := cat.RoomType(room.RoomTypeID)
	room.RoomTypeID = rt.ID
	if room.Name == "" || (hadPrevious && room.Name == previous.Name) {
		room.Name = rt.Name
	}

	sizes := cat.SizesFor(rt.ID)
	for _, s := range sizes {
		if s.ID == room.SizeID {
			return room, nil
		}
	}
	if replacement, ok := DefaultSize(sizes); ok {
		room.SizeID = replacement.ID
	} else {
		room.SizeID = ""
	}
	return room, nil
}

func (e SetSize) apply(room models.Room, cat catalog.Catalog) (models.Room, error) {
	size, ok := cat.Size(e.SizeID)
	if !ok {
		return room, fmt.Errorf("%w: %q", ErrUnknownSize, e.SizeID)
	}
	if size.RoomTypeID != room.RoomTypeID {
		return room, fmt.Errorf("%w: %q is not a %q size", ErrSizeMismatch, size.ID, room.RoomTypeID)
	}
	room.SizeID = size.ID
	return room, nil
}

func (e SetPaintType) apply(room models.Room, cat catalog.Catalog) (models.Room, error) {
	if _, ok := cat.PaintType(e.PaintTypeID); !ok {
		return room, fmt.Errorf("%w: %q", ErrUnknownPaint, e.PaintTypeID)
	}
	room.PaintTypeID = e.PaintTypeID
	return room, nil
}

func (e SetBaseboard) apply(room models.Room, _ catalog.Catalog) (models.Room, error) {
	if _, err := catalog.ParseBaseboardTier(string(e.Tier)); err != nil {
		return room, fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	room.Baseboard = e.Tier
	return room, nil
}

func (e SetToggle) apply(room models.Room, _ catalog.Catalog) (models.Room, error) {
	if _, err := models.ParseToggle(string(e.Toggle)); err != nil {
		return room, fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	room.Toggles = room.Toggles.With(e.Toggle, e.On)
	return room, nil
}

func (e SetAddOn) apply(room models.Room, cat catalog.Catalog) (models.Room, error) {
	if _, ok := cat.AddOn(e.Key); !ok {
		return room, fmt.Errorf("%w: add-on %q", ErrUnknownOption, e.Key)
	}
	if !e.On {
		delete(room.AddOns, e.Key)
		return room, nil
	}
	if room.AddOns == nil {
		room.AddOns = map[string]bool{}
	}
	room.AddOns[e.Key] = true
	return room, nil
}

func (e SetDoors) apply(room models.Room, _ catalog.Catalog) (models.Room, error) {
	openings, err := setOpenings(room.Doors, e.Count, e.Method)
	if err != nil {
		return room, fmt.Errorf("doors: %w", err)
	}
	room.Doors = openings
	return room, nil
}

func (e SetWindows) apply(room models.Room, _ catalog.Catalog) (models.Room, error) {
	openings, err := setOpenings(room.Windows, e.Count, e.Method)
	if err != nil {
		return room, fmt.Errorf("windows: %w", err)
	}
	room.Windows = openings
	return room, nil
}

// setOpenings keeps the current method when method is empty.
func setOpenings(current models.Openings, count int, method catalog.PaintMethod) (models.Openings, error) {
	if count < 0 {
		return current, ErrNegativeCount
	}
	current.Count = count
	if method != "" {
		if _, err := catalog.ParsePaintMethod(string(method)); err != nil {
			return current, fmt.Errorf("%w: %v", ErrUnknownOption, err)
		}
		current.PaintMethod = method
	}
	return current, nil
}

func (e SetClosets) apply(room models.Room, _ catalog.Catalog) (models.Room, error) {
	if e.WalkIn < 0 || e.Regular < 0 {
		return room, fmt.Errorf("closets: %w", ErrNegativeCount)
	}
	room.Closets = models.Closets{WalkInCount: e.WalkIn, RegularCount: e.Regular}
	return room, nil
}

func (e SetFireplace) apply(room models.Room, cat catalog.Catalog) (models.Room, error) {
	if _, ok := cat.Fireplace(e.Name); !ok && e.Name != catalog.FireplaceNone {
		return room, fmt.Errorf("%w: fireplace %q", ErrUnknownOption, e.Name)
	}
	room.Fireplace = e.Name
	return room, nil
}

func (e SetRepairs) apply(room models.Room, cat catalog.Catalog) (models.Room, error) {
	if _, ok := cat.Repair(e.Name); !ok && e.Name != catalog.RepairsNone {
		return room, fmt.Errorf("%w: repairs %q", ErrUnknownOption, e.Name)
	}
	room.Repairs = e.Name
	return room, nil
}

func (e SetBaseboardFeet) apply(room models.Room, _ catalog.Catalog) (models.Room, error) {
	if e.Feet < 0 {
		return room, fmt.Errorf("baseboard installation: %w", ErrNegativeCount)
	}
	room.BaseboardInstallationFeet = e.Feet
	return room, nil
}

func (e Rename) apply(room models.Room, _ catalog.Catalog) (models.Room, error) {
	room.Name = e.Name
	return room, nil
}
