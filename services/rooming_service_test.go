package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// memoryRoomingStore mimics the rooming tables of one database
type memoryRoomingStore struct {
	mu        sync.Mutex
	bookings  map[string][]models.Pilgrim
	rooms     map[string][]models.Room
	insertErr error
}

func newMemoryRoomingStore() *memoryRoomingStore {
	return &memoryRoomingStore{
		bookings: make(map[string][]models.Pilgrim),
		rooms:    make(map[string][]models.Room),
	}
}

func (m *memoryRoomingStore) ListBookings(ctx context.Context, packageHotelID string) ([]models.Pilgrim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Pilgrim(nil), m.bookings[packageHotelID]...), nil
}

func (m *memoryRoomingStore) ListRooms(ctx context.Context, packageHotelID string) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Room(nil), m.rooms[packageHotelID]...), nil
}

func (m *memoryRoomingStore) InsertRoom(ctx context.Context, packageHotelID string, room *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, existing := range m.rooms[packageHotelID] {
		for _, occupant := range existing.Occupants {
			for _, bookingID := range room.Occupants {
				if occupant == bookingID {
					return fmt.Errorf("insert occupant %s: %w", bookingID, utils.ErrAlreadyAssigned)
				}
			}
		}
	}
	m.rooms[packageHotelID] = append(m.rooms[packageHotelID], *room)
	return nil
}

func (m *memoryRoomingStore) DeleteRoom(ctx context.Context, packageHotelID, roomID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := m.rooms[packageHotelID]
	for i, room := range rooms {
		if room.ID == roomID {
			m.rooms[packageHotelID] = append(rooms[:i:i], rooms[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestRoomingService(store RoomingStore, locker RoomLocker) *RoomingService {
	return NewRoomingService(store, newTestAllocator(), locker)
}

func seededRoomingStore() *memoryRoomingStore {
	store := newMemoryRoomingStore()
	store.bookings["ph-1"] = []models.Pilgrim{
		{BookingID: "b1", FullName: "ahmad  fauzi", Gender: models.GenderMale, RequestedCategory: models.RoomDouble},
		{BookingID: "b2", FullName: "budi santoso", Gender: models.GenderMale, RequestedCategory: models.RoomDouble},
		{BookingID: "b3", FullName: "siti aminah", Gender: models.GenderFemale, RequestedCategory: models.RoomTriple},
	}
	return store
}

func TestRoomingService_GetRoomingList(t *testing.T) {
	store := seededRoomingStore()
	store.rooms["ph-1"] = []models.Room{{ID: "r1", Number: "101", Category: models.RoomDouble, Occupants: []string{"b2", "b3"}}}
	service := newTestRoomingService(store, NewMemoryRoomLocker())

	list, err := service.GetRoomingList(context.Background(), "ph-1")

	require.NoError(t, err)
	assert.Equal(t, "ph-1", list.PackageHotelID)
	require.Len(t, list.Pool, 1)
	assert.Equal(t, "Ahmad Fauzi", list.Pool[0].FullName)
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, 2, list.Rooms[0].Capacity)
	assert.True(t, list.Rooms[0].MixedGender)
	require.Len(t, list.Rooms[0].Pilgrims, 2)
	assert.Equal(t, "Budi Santoso", list.Rooms[0].Pilgrims[0].FullName)
}

func TestRoomingService_GetRoomingList_MissingID(t *testing.T) {
	service := newTestRoomingService(newMemoryRoomingStore(), NewMemoryRoomLocker())

	_, err := service.GetRoomingList(context.Background(), " ")

	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestRoomingService_CreateAndDeleteRoom(t *testing.T) {
	store := seededRoomingStore()
	service := newTestRoomingService(store, NewMemoryRoomLocker())
	ctx := context.Background()

	list, err := service.CreateRoom(ctx, "ph-1", &models.CreateRoomRequest{
		Number:     "201",
		Category:   models.RoomDouble,
		BookingIDs: []string{"b1", "b2"},
	})
	require.NoError(t, err)
	require.Len(t, list.Rooms, 1)
	assert.False(t, list.Rooms[0].MixedGender)
	require.Len(t, list.Pool, 1)
	assert.Equal(t, "b3", list.Pool[0].BookingID)
	assert.Len(t, store.rooms["ph-1"], 1)

	roomID := list.Rooms[0].ID
	list, err = service.DeleteRoom(ctx, "ph-1", roomID)
	require.NoError(t, err)
	assert.Empty(t, list.Rooms)
	assert.Equal(t, []string{"b3", "b1", "b2"}, bookingIDs(list.Pool))
	assert.Empty(t, store.rooms["ph-1"])
}

func TestRoomingService_CreateRoom_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		request models.CreateRoomRequest
		kind    utils.ErrorKind
	}{
		{"no occupants", models.CreateRoomRequest{Number: "1", Category: models.RoomDouble}, utils.KindValidation},
		{"missing number", models.CreateRoomRequest{Category: models.RoomDouble, BookingIDs: []string{"b1"}}, utils.KindValidation},
		{"over capacity", models.CreateRoomRequest{Number: "1", Category: models.RoomDouble, BookingIDs: []string{"b1", "b2", "b3"}}, utils.KindCapacity},
		{"unknown booking", models.CreateRoomRequest{Number: "1", Category: models.RoomDouble, BookingIDs: []string{"b1", "b9"}}, utils.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededRoomingStore()
			service := newTestRoomingService(store, NewMemoryRoomLocker())

			_, err := service.CreateRoom(context.Background(), "ph-1", &tt.request)

			assert.True(t, utils.IsKind(err, tt.kind), "got %v", err)
			assert.Empty(t, store.rooms["ph-1"])
		})
	}
}

func TestRoomingService_CreateRoom_AlreadyAssignedIsConflict(t *testing.T) {
	store := seededRoomingStore()
	store.insertErr = fmt.Errorf("insert occupant: %w", utils.ErrAlreadyAssigned)
	service := newTestRoomingService(store, NewMemoryRoomLocker())

	_, err := service.CreateRoom(context.Background(), "ph-1", &models.CreateRoomRequest{
		Number:     "201",
		Category:   models.RoomDouble,
		BookingIDs: []string{"b1"},
	})

	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestRoomingService_DeleteRoom_NotFound(t *testing.T) {
	service := newTestRoomingService(seededRoomingStore(), NewMemoryRoomLocker())

	_, err := service.DeleteRoom(context.Background(), "ph-1", "missing")

	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestRoomingService_LockHeldIsConflict(t *testing.T) {
	store := seededRoomingStore()
	locker := NewMemoryRoomLocker()
	service := newTestRoomingService(store, locker)

	release, err := locker.Acquire(context.Background(), "ph-1")
	require.NoError(t, err)
	defer release()

	_, err = service.CreateRoom(context.Background(), "ph-1", &models.CreateRoomRequest{
		Number:     "201",
		Category:   models.RoomDouble,
		BookingIDs: []string{"b1"},
	})

	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Empty(t, store.rooms["ph-1"])
}

func TestRoomingService_ConcurrentCreatesNeverDoubleAssign(t *testing.T) {
	store := seededRoomingStore()
	service := newTestRoomingService(store, NewMemoryRoomLocker())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = service.CreateRoom(context.Background(), "ph-1", &models.CreateRoomRequest{
				Number:     fmt.Sprintf("30%d", n),
				Category:   models.RoomDouble,
				BookingIDs: []string{"b1", "b2"},
			})
		}(i)
	}
	wg.Wait()

	list, err := service.GetRoomingList(context.Background(), "ph-1")
	require.NoError(t, err)
	require.Len(t, list.Rooms, 1)

	state := &models.RoomingState{Pool: list.Pool, Rooms: []models.Room{list.Rooms[0].Room}}
	assertPartition(t, []string{"b1", "b2", "b3"}, state)
}

func TestRoomingService_ToggleSelection(t *testing.T) {
	service := newTestRoomingService(newMemoryRoomingStore(), NewMemoryRoomLocker())

	result, err := service.ToggleSelection(&models.ToggleSelectionRequest{
		Selection: []string{"b1"},
		BookingID: "b1",
		Category:  models.RoomQuad,
	})

	require.NoError(t, err)
	assert.NotNil(t, result.Selection)
	assert.Empty(t, result.Selection)
	assert.Equal(t, 4, result.Capacity)

	_, err = service.ToggleSelection(&models.ToggleSelectionRequest{
		Selection: []string{"b1", "b2"},
		BookingID: "b3",
		Category:  models.RoomDouble,
	})
	assert.True(t, utils.IsKind(err, utils.KindCapacity))
}
