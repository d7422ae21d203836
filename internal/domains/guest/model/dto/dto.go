package dto

import "hotel/internal/domains/guest/model"

type GuestResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	IdentityNumber string `json:"identity_number"`
	Phone          string `json:"phone"`
	Nationality    string `json:"nationality"`
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.IdentityNumber = model.IdentityNumber
	r.Phone = model.Phone
	r.Nationality = model.Nationality
}

func FromModels(models []model.Guest) []GuestResponse {
	res := make([]GuestResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
