package services

import (
	"fmt"
	"strings"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// RoomAllocator assigns pilgrims of one package hotel to rooms. It works on
// caller-held snapshots and always returns fresh slices; on error the
// caller's pool and rooms stay as they were.
type RoomAllocator struct {
	newID func() string
}

// NewRoomAllocator creates an allocator that assigns uuid ids to new rooms
func NewRoomAllocator() *RoomAllocator {
	return &RoomAllocator{newID: utils.GenerateID}
}

// CreateRoom moves the selected bookings from the pool into a new room
func (a *RoomAllocator) CreateRoom(pool []models.Pilgrim, rooms []models.Room, number string, category models.RoomCategory, selected []string) (*models.RoomingState, error) {
	if len(selected) == 0 {
		return nil, utils.NewValidationError("no occupants selected")
	}
	if !category.Valid() {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown room type %q", category))
	}

	seen := make(map[string]bool, len(selected))
	for _, bookingID := range selected {
		if seen[bookingID] {
			return nil, utils.NewValidationError(fmt.Sprintf("booking %s selected more than once", bookingID))
		}
		seen[bookingID] = true
	}

	if len(selected) > category.Capacity() {
		return nil, utils.NewCapacityError(string(category), category.Capacity())
	}

	inPool := make(map[string]bool, len(pool))
	for _, pilgrim := range pool {
		inPool[pilgrim.BookingID] = true
	}
	for _, bookingID := range selected {
		if !inPool[bookingID] {
			return nil, utils.NewNotFoundError(utils.ResourcePilgrim, bookingID)
		}
	}

	remaining := make([]models.Pilgrim, 0, len(pool)-len(selected))
	for _, pilgrim := range pool {
		if !seen[pilgrim.BookingID] {
			remaining = append(remaining, pilgrim)
		}
	}

	room := models.Room{
		ID:        a.newID(),
		Number:    strings.TrimSpace(number),
		Category:  category,
		Occupants: append([]string(nil), selected...),
	}

	updatedRooms := make([]models.Room, len(rooms), len(rooms)+1)
	copy(updatedRooms, rooms)
	updatedRooms = append(updatedRooms, room)

	return &models.RoomingState{Pool: remaining, Rooms: updatedRooms}, nil
}

// DeleteRoom removes a room and appends its occupants to the end of the pool
// in their room order. roster resolves booking ids to pilgrim records;
// bookings missing from it come back as bare booking ids.
func (a *RoomAllocator) DeleteRoom(rooms []models.Room, pool []models.Pilgrim, roomID string, roster map[string]models.Pilgrim) (*models.RoomingState, error) {
	index := -1
	for i, room := range rooms {
		if room.ID == roomID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, utils.NewNotFoundError(utils.ResourceRoom, roomID)
	}

	deleted := rooms[index]

	updatedRooms := make([]models.Room, 0, len(rooms)-1)
	updatedRooms = append(updatedRooms, rooms[:index]...)
	updatedRooms = append(updatedRooms, rooms[index+1:]...)

	updatedPool := make([]models.Pilgrim, len(pool), len(pool)+len(deleted.Occupants))
	copy(updatedPool, pool)
	for _, bookingID := range deleted.Occupants {
		pilgrim, ok := roster[bookingID]
		if !ok {
			pilgrim = models.Pilgrim{BookingID: bookingID}
		}
		updatedPool = append(updatedPool, pilgrim)
	}

	return &models.RoomingState{Pool: updatedPool, Rooms: updatedRooms}, nil
}

// ToggleSelection removes bookingID from the selection when present,
// otherwise appends it unless the room type is already full
func (a *RoomAllocator) ToggleSelection(selection []string, bookingID string, category models.RoomCategory) ([]string, error) {
	for i, selected := range selection {
		if selected == bookingID {
			updated := make([]string, 0, len(selection)-1)
			updated = append(updated, selection[:i]...)
			return append(updated, selection[i+1:]...), nil
		}
	}

	if !category.Valid() {
		return selection, utils.NewValidationError(fmt.Sprintf("unknown room type %q", category))
	}
	if len(selection) >= category.Capacity() {
		return selection, utils.NewCapacityError(string(category), category.Capacity())
	}

	updated := make([]string, len(selection), len(selection)+1)
	copy(updated, selection)
	return append(updated, bookingID), nil
}

// MixedGender reports whether the known occupants of a room are not all the same gender
func MixedGender(room models.Room, roster map[string]models.Pilgrim) bool {
	var first models.Gender
	for _, bookingID := range room.Occupants {
		pilgrim, ok := roster[bookingID]
		if !ok || pilgrim.Gender == "" {
			continue
		}
		if first == "" {
			first = pilgrim.Gender
			continue
		}
		if pilgrim.Gender != first {
			return true
		}
	}
	return false
}

// SplitPool separates the bookings of a package hotel into the unassigned
// pool (in booking order) and a roster keyed by booking id
func SplitPool(bookings []models.Pilgrim, rooms []models.Room) ([]models.Pilgrim, map[string]models.Pilgrim) {
	assigned := make(map[string]bool)
	for _, room := range rooms {
		for _, bookingID := range room.Occupants {
			assigned[bookingID] = true
		}
	}

	roster := make(map[string]models.Pilgrim, len(bookings))
	pool := make([]models.Pilgrim, 0, len(bookings))
	for _, pilgrim := range bookings {
		roster[pilgrim.BookingID] = pilgrim
		if !assigned[pilgrim.BookingID] {
			pool = append(pool, pilgrim)
		}
	}
	return pool, roster
}
