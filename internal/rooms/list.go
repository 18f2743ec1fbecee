package rooms

import (
	"fmt"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/pricing"
)

// List is the ordered set of rooms in one estimate. It is not safe for
// concurrent use; each session has a single editor.
type List struct {
	cat   catalog.Catalog
	newID IDFunc
	rooms []models.Room
}

// NewList wraps rooms restored from a draft. Every room goes through the
// same normalization as an edit and is repriced against cat.
func NewList(cat catalog.Catalog, rooms []models.Room, newID IDFunc) *List {
	if newID == nil {
		newID = NewID
	}
	l := &List{cat: cat, newID: newID, rooms: make([]models.Room, 0, len(rooms))}
	for _, r := range rooms {
		l.rooms = append(l.rooms, pricing.ComputeRoomPrice(normalize(r), cat))
	}
	return l
}

// Add appends a default room and returns it.
func (l *List) Add() (models.Room, error) {
	room, err := New(l.cat, l.newID)
	if err != nil {
		return models.Room{}, err
	}
	l.rooms = append(l.rooms, room)
	return room, nil
}

// Update applies edit to the room with the given id.
func (l *List) Update(id string, edit Edit) (models.Room, error) {
	i := l.index(id)
	if i < 0 {
		return models.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	next, err := Apply(l.rooms[i], edit, l.cat)
	if err != nil {
		return l.rooms[i], err
	}
	l.rooms[i] = next
	return next, nil
}

func (l *List) Delete(id string) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	l.rooms = append(l.rooms[:i], l.rooms[i+1:]...)
	return nil
}

// Reset removes every room.
func (l *List) Reset() {
	l.rooms = l.rooms[:0]
}

// Rooms returns a copy of the current rooms.
func (l *List) Rooms() []models.Room {
	out := make([]models.Room, 0, len(l.rooms))
	for _, r := range l.rooms {
		out = append(out, r.Clone())
	}
	return out
}

func (l *List) Len() int {
	return len(l.rooms)
}

func (l *List) index(id string) int {
	for i, r := range l.rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}
