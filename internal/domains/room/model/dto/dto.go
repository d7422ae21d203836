package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
)

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,notblank"`
}

type RoomResponse struct {
	ID         string `json:"id"`
	RoomTypeID string `json:"room_type_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Upcoming   bool   `json:"upcoming"`
	Active     bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomTypeID = model.RoomTypeID
	r.Name = model.Name
	r.Status = model.Status.String()
	r.Upcoming = model.Upcoming
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
