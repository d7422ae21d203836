package model

import "hotel/shared/model"

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldActive   = "active"
)

type Staff struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Active   bool   `db:"active"`
	model.Metadata
}
