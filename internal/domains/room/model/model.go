package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomTypeID = "room_type_id"
	FieldName       = "name"
	FieldStatus     = "status"
	FieldUpcoming   = "upcoming"
	FieldActive     = "active"
)

const (
	CacheKeyGet    = "room:get"
	CacheKeyGetAll = "room:gets"
	CacheKeyCount  = "room:count"
)

type Room struct {
	ID         string `db:"id"`
	RoomTypeID string `db:"room_type_id"`
	Name       string `db:"name"`
	Status     Status `db:"status"`
	// Upcoming is only meaningful while Status is StatusEmpty.
	Upcoming bool `db:"upcoming"`
	Active   bool `db:"active"`
	model.Metadata
}

// LockKey is the advisory lock key that serialises writers of one room.
func LockKey(id string) string {
	return EntityName + ":" + id
}
