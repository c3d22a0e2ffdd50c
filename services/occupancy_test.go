package services

import (
	"testing"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountForMonthIncludesMidMonthMoves(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 3, 3000000)
	occupancy := NewOccupancyService(db)

	// full-month resident
	require.NoError(t, db.Create(&models.RoomTenancy{
		RoomID: room.ID, TenantID: 1, MoveInDate: date(2024, time.January, 1),
	}).Error)
	// moved out mid-February: still an occupant for February
	require.NoError(t, db.Create(&models.RoomTenancy{
		RoomID: room.ID, TenantID: 2, MoveInDate: date(2024, time.January, 15), MoveOutDate: datePtr(2024, time.February, 20),
	}).Error)
	// moved in after February: not counted
	require.NoError(t, db.Create(&models.RoomTenancy{
		RoomID: room.ID, TenantID: 3, MoveInDate: date(2024, time.March, 2),
	}).Error)

	count, err := occupancy.CountForMonth(room.ID, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	march, err := occupancy.CountForMonth(room.ID, 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, march)
}

func TestCurrentCountExcludesMovedOut(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 3, 3000000)
	occupancy := NewOccupancyService(db)

	require.NoError(t, db.Create(&models.RoomTenancy{
		RoomID: room.ID, TenantID: 1, MoveInDate: date(2024, time.January, 1),
	}).Error)
	require.NoError(t, db.Create(&models.RoomTenancy{
		RoomID: room.ID, TenantID: 2, MoveInDate: date(2024, time.January, 1), MoveOutDate: datePtr(2024, time.June, 30),
	}).Error)

	count, err := occupancy.CurrentCount(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	tenancy := models.RoomTenancy{RoomID: room.ID, TenantID: 2, MoveInDate: date(2024, time.January, 1), MoveOutDate: datePtr(2024, time.June, 30)}
	assert.True(t, tenancy.OccupiedAt(date(2024, time.March, 1)))
	assert.False(t, tenancy.OccupiedAt(date(2024, time.July, 1)))
}
