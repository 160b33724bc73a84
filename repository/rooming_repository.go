// repository/rooming_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// RoomingRepository handles database operations for rooming lists
type RoomingRepository struct {
	DB *sql.DB
}

// NewRoomingRepository creates a new RoomingRepository
func NewRoomingRepository(db *sql.DB) *RoomingRepository {
	return &RoomingRepository{DB: db}
}

// ListBookings retrieves every booking of a package hotel, in booking order
func (r *RoomingRepository) ListBookings(ctx context.Context, packageHotelID string) ([]models.Pilgrim, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.booking_id, j.full_name, j.gender, b.room_type
         FROM package_hotel_bookings b
         JOIN jamaah j ON j.id = b.jamaah_id
         WHERE b.package_hotel_id = $1
         ORDER BY b.created_at ASC, b.booking_id ASC`,
		packageHotelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var pilgrims []models.Pilgrim
	for rows.Next() {
		var pilgrim models.Pilgrim
		if err := rows.Scan(&pilgrim.BookingID, &pilgrim.FullName, &pilgrim.Gender, &pilgrim.RequestedCategory); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		pilgrims = append(pilgrims, pilgrim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return pilgrims, nil
}

// ListRooms retrieves the rooms of a package hotel with their occupants in position order
func (r *RoomingRepository) ListRooms(ctx context.Context, packageHotelID string) ([]models.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.room_number, r.room_type, o.booking_id
         FROM rooms r
         LEFT JOIN room_occupants o ON o.room_id = r.id
         WHERE r.package_hotel_id = $1
         ORDER BY r.created_at ASC, r.id ASC, o.position ASC`,
		packageHotelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		var bookingID sql.NullString
		if err := rows.Scan(&room.ID, &room.Number, &room.Category, &bookingID); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}

		// Rows of the same room arrive together
		if n := len(rooms); n == 0 || rooms[n-1].ID != room.ID {
			room.Occupants = []string{}
			rooms = append(rooms, room)
		}
		if bookingID.Valid {
			last := &rooms[len(rooms)-1]
			last.Occupants = append(last.Occupants, bookingID.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rooms: %w", err)
	}

	return rooms, nil
}

// InsertRoom saves a room and its occupants in one transaction
func (r *RoomingRepository) InsertRoom(ctx context.Context, packageHotelID string, room *models.Room) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rooms (id, package_hotel_id, room_number, room_type) VALUES ($1, $2, $3, $4)",
		room.ID, packageHotelID, room.Number, string(room.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	for position, bookingID := range room.Occupants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO room_occupants (room_id, booking_id, position) VALUES ($1, $2, $3)",
			room.ID, bookingID, position,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("booking %s: %w", bookingID, utils.ErrAlreadyAssigned)
			}
			return fmt.Errorf("failed to insert room occupant: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteRoom removes a room; its occupant rows go with it through the cascade
func (r *RoomingRepository) DeleteRoom(ctx context.Context, packageHotelID, roomID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM rooms WHERE id = $1 AND package_hotel_id = $2",
		roomID, packageHotelID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted room: %w", err)
	}
	return affected > 0, nil
}
