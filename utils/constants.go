package utils

const (
	// Account filter value that selects every cash account
	AccountFilterAll = "all"

	// Calendar date layout used on the wire and in exports
	DateLayout = "2006-01-02"

	// Decimal places kept for rupiah amounts
	MoneyPlaces = 2

	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"
	ErrFailedToExport   = "Failed to export ledger"

	// Resource names used in not-found errors
	ResourcePilgrim = "pilgrim"
	ResourceRoom    = "room"
	ResourcePayment = "payment"
	ResourceJamaah  = "jamaah"

	// Room lock key prefix, one lock per package hotel
	RoomLockPrefix = "rooming:lock:"
)
