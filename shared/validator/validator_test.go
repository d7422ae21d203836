package validator_test

import (
	"hotel/shared/failure"
	"hotel/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestRequest struct {
	FullName  string `json:"full_name"  validate:"required,notblank,max=20"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Occupants int    `json:"occupants"  validate:"gt=0"`
	Arrival   string `json:"arrival"    validate:"omitempty,day"`
	Role      string `json:"role"       validate:"omitempty,oneof=manager staff"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    guestRequest
		wantErr string
	}{
		{
			name: "valid struct",
			data: guestRequest{FullName: "Nguyen Van A", Occupants: 2, Arrival: "2025-03-01", Role: "staff"},
		},
		{
			name:    "missing required field uses json name",
			data:    guestRequest{Occupants: 1},
			wantErr: "full_name is required",
		},
		{
			name:    "blank name",
			data:    guestRequest{FullName: "   ", Occupants: 1},
			wantErr: "full_name must not be blank",
		},
		{
			name:    "zero occupants",
			data:    guestRequest{FullName: "A"},
			wantErr: "occupants must be greater than 0",
		},
		{
			name:    "bad day format",
			data:    guestRequest{FullName: "A", Occupants: 1, Arrival: "01/03/2025"},
			wantErr: "arrival must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "unknown role",
			data:    guestRequest{FullName: "A", Occupants: 1, Role: "admin"},
			wantErr: "role must be one of manager staff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-01-31", "day"))
	assert.Error(t, validator.ValidateVar("2025-02-31", "day"))
	assert.NoError(t, validator.ValidateVar("", "empty"))
	assert.Error(t, validator.ValidateVar("x", "empty"))
	assert.Error(t, validator.ValidateVar("not-a-uuid", "uuid"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		wantErr  bool
	}{
		{
			name:     "valid body",
			jsonBody: `{"full_name":"Tran B","occupants":1}`,
		},
		{
			name:     "rule violation",
			jsonBody: `{"full_name":"Tran B","occupants":0}`,
			wantErr:  true,
		},
		{
			name:     "malformed body",
			jsonBody: `{"full_name":}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data guestRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Tran B", data.FullName)
		})
	}
}
