package models

// Gender of a pilgrim, shown to the operator while building rooms
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// RoomCategory is the hotel room type requested by a pilgrim
type RoomCategory string

const (
	RoomQuad   RoomCategory = "Quad"
	RoomTriple RoomCategory = "Triple"
	RoomDouble RoomCategory = "Double"
)

var roomCapacities = map[RoomCategory]int{
	RoomQuad:   4,
	RoomTriple: 3,
	RoomDouble: 2,
}

// Capacity returns the number of beds of the category, 0 for unknown categories
func (c RoomCategory) Capacity() int {
	return roomCapacities[c]
}

// Valid reports whether the category is a known room type
func (c RoomCategory) Valid() bool {
	_, ok := roomCapacities[c]
	return ok
}

// Pilgrim is the room-allocation view of a booking in a package hotel
type Pilgrim struct {
	BookingID         string       `json:"booking_id"`
	FullName          string       `json:"full_name"`
	Gender            Gender       `json:"gender"`
	RequestedCategory RoomCategory `json:"room_type"`
}

// Room is a hotel room with the bookings assigned to it
type Room struct {
	ID        string       `json:"id"`
	Number    string       `json:"number"`
	Category  RoomCategory `json:"room_type"`
	Occupants []string     `json:"occupants"`
}

// RoomingState is the pool of unassigned pilgrims plus the created rooms
type RoomingState struct {
	Pool  []Pilgrim `json:"pool"`
	Rooms []Room    `json:"rooms"`
}

// RoomView is a room as shown on the rooming list
type RoomView struct {
	Room
	Pilgrims    []Pilgrim `json:"pilgrims"`
	Capacity    int       `json:"capacity"`
	MixedGender bool      `json:"mixed_gender"`
}

// RoomingListResponse is the rooming list of one package hotel
type RoomingListResponse struct {
	PackageHotelID string     `json:"package_hotel_id"`
	Pool           []Pilgrim  `json:"pool"`
	Rooms          []RoomView `json:"rooms"`
}

// CreateRoomRequest request model
type CreateRoomRequest struct {
	Number     string       `json:"number" binding:"required,max=20" validate:"required,max=20"`
	Category   RoomCategory `json:"room_type" binding:"required,oneof=Quad Triple Double" validate:"required,oneof=Quad Triple Double"`
	BookingIDs []string     `json:"booking_ids" binding:"required,min=1" validate:"required,min=1"`
}

// ToggleSelectionRequest request model
type ToggleSelectionRequest struct {
	Selection []string     `json:"selection"`
	BookingID string       `json:"booking_id" binding:"required"`
	Category  RoomCategory `json:"room_type" binding:"required,oneof=Quad Triple Double"`
}

// ToggleSelectionResponse response model
type ToggleSelectionResponse struct {
	Selection []string `json:"selection"`
	Capacity  int      `json:"capacity"`
}
