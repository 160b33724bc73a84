package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// RoomingStore persists the rooming list of package hotels
type RoomingStore interface {
	ListBookings(ctx context.Context, packageHotelID string) ([]models.Pilgrim, error)
	ListRooms(ctx context.Context, packageHotelID string) ([]models.Room, error)
	InsertRoom(ctx context.Context, packageHotelID string, room *models.Room) error
	DeleteRoom(ctx context.Context, packageHotelID, roomID string) (bool, error)
}

// RoomingService handles room allocation for a package hotel
type RoomingService struct {
	store     RoomingStore
	allocator *RoomAllocator
	locker    RoomLocker
}

// NewRoomingService creates a new rooming service
func NewRoomingService(store RoomingStore, allocator *RoomAllocator, locker RoomLocker) *RoomingService {
	return &RoomingService{
		store:     store,
		allocator: allocator,
		locker:    locker,
	}
}

// roomingSnapshot is one consistent read of a package hotel
type roomingSnapshot struct {
	pool   []models.Pilgrim
	rooms  []models.Room
	roster map[string]models.Pilgrim
}

// GetRoomingList returns the unassigned pool and the rooms of a package hotel
func (s *RoomingService) GetRoomingList(ctx context.Context, packageHotelID string) (*models.RoomingListResponse, error) {
	if err := utils.ValidateRequired(packageHotelID, "package hotel id"); err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx, packageHotelID)
	if err != nil {
		return nil, err
	}

	return s.buildRoomingList(packageHotelID, snapshot), nil
}

// CreateRoom creates a room with the selected bookings
func (s *RoomingService) CreateRoom(ctx context.Context, packageHotelID string, req *models.CreateRoomRequest) (*models.RoomingListResponse, error) {
	if err := utils.ValidateRequired(packageHotelID, "package hotel id"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNotEmpty(req.BookingIDs, "booking_ids"); err != nil {
		return nil, utils.NewValidationError("no occupants selected")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	return s.mutate(ctx, packageHotelID, func(snapshot *roomingSnapshot) (*models.RoomingState, error) {
		state, err := s.allocator.CreateRoom(snapshot.pool, snapshot.rooms, req.Number, req.Category, req.BookingIDs)
		if err != nil {
			return nil, err
		}

		room := state.Rooms[len(state.Rooms)-1]
		if err := s.store.InsertRoom(ctx, packageHotelID, &room); err != nil {
			if errors.Is(err, utils.ErrAlreadyAssigned) {
				return nil, utils.NewConflictError("a selected pilgrim was assigned to another room, reload the rooming list")
			}
			s.logger(packageHotelID, room.ID).WithError(err).Error("Failed to store room")
			return nil, utils.NewInternalError(utils.ErrFailedToStore)
		}

		s.logger(packageHotelID, room.ID).WithFields(logrus.Fields{
			"room_type": room.Category,
			"occupants": len(room.Occupants),
		}).Info("Room created")
		return state, nil
	})
}

// DeleteRoom deletes a room and returns its occupants to the pool
func (s *RoomingService) DeleteRoom(ctx context.Context, packageHotelID, roomID string) (*models.RoomingListResponse, error) {
	if err := utils.ValidateRequired(packageHotelID, "package hotel id"); err != nil {
		return nil, err
	}

	return s.mutate(ctx, packageHotelID, func(snapshot *roomingSnapshot) (*models.RoomingState, error) {
		state, err := s.allocator.DeleteRoom(snapshot.rooms, snapshot.pool, roomID, snapshot.roster)
		if err != nil {
			return nil, err
		}

		removed, err := s.store.DeleteRoom(ctx, packageHotelID, roomID)
		if err != nil {
			s.logger(packageHotelID, roomID).WithError(err).Error("Failed to delete room")
			return nil, utils.NewInternalError(utils.ErrFailedToStore)
		}
		if !removed {
			return nil, utils.NewNotFoundError(utils.ResourceRoom, roomID)
		}

		s.logger(packageHotelID, roomID).Info("Room deleted")
		return state, nil
	})
}

// ToggleSelection updates the selection an operator is building for a new room
func (s *RoomingService) ToggleSelection(req *models.ToggleSelectionRequest) (*models.ToggleSelectionResponse, error) {
	selection, err := s.allocator.ToggleSelection(req.Selection, req.BookingID, req.Category)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		selection = []string{}
	}
	return &models.ToggleSelectionResponse{
		Selection: selection,
		Capacity:  req.Category.Capacity(),
	}, nil
}

// mutate runs one room change against a fresh snapshot while holding the
// package hotel lock
func (s *RoomingService) mutate(ctx context.Context, packageHotelID string, apply func(*roomingSnapshot) (*models.RoomingState, error)) (*models.RoomingListResponse, error) {
	release, err := s.locker.Acquire(ctx, packageHotelID)
	if err != nil {
		return nil, err
	}
	defer release()

	snapshot, err := s.loadSnapshot(ctx, packageHotelID)
	if err != nil {
		return nil, err
	}

	state, err := apply(snapshot)
	if err != nil {
		return nil, err
	}

	snapshot.pool = state.Pool
	snapshot.rooms = state.Rooms
	return s.buildRoomingList(packageHotelID, snapshot), nil
}

func (s *RoomingService) loadSnapshot(ctx context.Context, packageHotelID string) (*roomingSnapshot, error) {
	bookings, err := s.store.ListBookings(ctx, packageHotelID)
	if err != nil {
		s.logger(packageHotelID, "").WithError(err).Error("Failed to list bookings")
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	rooms, err := s.store.ListRooms(ctx, packageHotelID)
	if err != nil {
		s.logger(packageHotelID, "").WithError(err).Error("Failed to list rooms")
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	pool, roster := SplitPool(bookings, rooms)
	return &roomingSnapshot{pool: pool, rooms: rooms, roster: roster}, nil
}

func (s *RoomingService) buildRoomingList(packageHotelID string, snapshot *roomingSnapshot) *models.RoomingListResponse {
	views := make([]models.RoomView, 0, len(snapshot.rooms))
	for _, room := range snapshot.rooms {
		pilgrims := make([]models.Pilgrim, 0, len(room.Occupants))
		for _, bookingID := range room.Occupants {
			pilgrim, ok := snapshot.roster[bookingID]
			if !ok {
				pilgrim = models.Pilgrim{BookingID: bookingID}
			}
			pilgrim.FullName = utils.FormatNameForDisplay(pilgrim.FullName)
			pilgrims = append(pilgrims, pilgrim)
		}

		views = append(views, models.RoomView{
			Room:        room,
			Pilgrims:    pilgrims,
			Capacity:    room.Category.Capacity(),
			MixedGender: MixedGender(room, snapshot.roster),
		})
	}

	pool := make([]models.Pilgrim, len(snapshot.pool))
	for i, pilgrim := range snapshot.pool {
		pilgrim.FullName = utils.FormatNameForDisplay(pilgrim.FullName)
		pool[i] = pilgrim
	}

	return &models.RoomingListResponse{
		PackageHotelID: packageHotelID,
		Pool:           pool,
		Rooms:          views,
	}
}

func (s *RoomingService) logger(packageHotelID, roomID string) *logrus.Entry {
	fields := logrus.Fields{"package_hotel_id": packageHotelID}
	if roomID != "" {
		fields["room_id"] = roomID
	}
	return utils.Logger.WithFields(fields)
}
