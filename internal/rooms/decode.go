package rooms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
)

var ErrUnknownField = errors.New("unknown room field")

const (
	togglePrefix = "toggles."
	addOnPrefix  = "addOns."
)

type openingsValue struct {
	Count       int    `json:"count"`
	PaintMethod string `json:"paintMethod"`
}

type closetsValue struct {
	WalkInCount  int `json:"walkInCount"`
	RegularCount int `json:"regularCount"`
}

// DecodeEdit turns a {field, value} pair from the API into an Edit.
// Field names follow the room's JSON shape; toggles and add-ons are
// addressed as "toggles.<name>" and "addOns.<key>".
func DecodeEdit(field string, value json.RawMessage) (Edit, error) {
	switch {
	case strings.HasPrefix(field, togglePrefix):
		toggle, err := models.ParseToggle(strings.TrimPrefix(field, togglePrefix))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownField, err)
		}
		var on bool
		if err := decodeValue(field, value, &on); err != nil {
			return nil, err
		}
		return SetToggle{Toggle: toggle, On: on}, nil
	case strings.HasPrefix(field, addOnPrefix):
		var on bool
		if err := decodeValue(field, value, &on); err != nil {
			return nil, err
		}
		return SetAddOn{Key: strings.TrimPrefix(field, addOnPrefix), On: on}, nil
	}

	switch field {
	case "name":
		var s string
		err := decodeValue(field, value, &s)
		return Rename{Name: strings.TrimSpace(s)}, err
	case "roomTypeId":
		var s string
		err := decodeValue(field, value, &s)
		return SetRoomType{RoomTypeID: s}, err
	case "sizeId":
		var s string
		err := decodeValue(field, value, &s)
		return SetSize{SizeID: s}, err
	case "paintTypeId":
		var s string
		err := decodeValue(field, value, &s)
		return SetPaintType{PaintTypeID: s}, err
	case "baseboard":
		var s string
		err := decodeValue(field, value, &s)
		return SetBaseboard{Tier: catalog.BaseboardTier(s)}, err
	case "doors":
		var v openingsValue
		err := decodeValue(field, value, &v)
		return SetDoors{Count: v.Count, Method: catalog.PaintMethod(v.PaintMethod)}, err
	case "windows":
		var v openingsValue
		err := decodeValue(field, value, &v)
		return SetWindows{Count: v.Count, Method: catalog.PaintMethod(v.PaintMethod)}, err
	case "closets":
		var v closetsValue
		err := decodeValue(field, value, &v)
		return SetClosets{WalkIn: v.WalkInCount, Regular: v.RegularCount}, err
	case "fireplace":
		var s string
		err := decodeValue(field, value, &s)
		return SetFireplace{Name: s}, err
	case "repairs":
		var s string
		err := decodeValue(field, value, &s)
		return SetRepairs{Name: s}, err
	case "baseboardInstallationFeet":
		var f float64
		err := decodeValue(field, value, &f)
		return SetBaseboardFeet{Feet: f}, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func decodeValue(field string, raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%s: value is required", field)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}
