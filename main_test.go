package main

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/umrah-backoffice/config"
	"github.com/fadhlanhapp/umrah-backoffice/services"
)

func TestNewRoomLocker_WithoutRedis(t *testing.T) {
	cfg := &config.Config{}

	locker := newRoomLocker(cfg)

	assert.IsType(t, &services.MemoryRoomLocker{}, locker)
}

func TestNewRoomLocker_UnreachableRedisFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Addr = "127.0.0.1:1"

	locker := newRoomLocker(cfg)

	assert.IsType(t, &services.MemoryRoomLocker{}, locker)
}

func TestNewHandlerServices(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handlerServices := newHandlerServices(&config.Config{}, db)

	assert.NotNil(t, handlerServices.LedgerService)
	assert.NotNil(t, handlerServices.ExcelService)
	assert.NotNil(t, handlerServices.PaymentService)
	assert.NotNil(t, handlerServices.RoomingService)
}

func TestContainsWildcard(t *testing.T) {
	assert.True(t, containsWildcard([]string{"https://agency.example", "*"}))
	assert.False(t, containsWildcard([]string{"https://agency.example"}))
	assert.False(t, containsWildcard(nil))
}
