package model

import "shareit/shared/model"

const (
	TableName  = "items"
	EntityName = "item"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAvailable   = "available"
	FieldRequestID   = "request_id"
)

type Item struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Available   bool    `db:"available"`
	RequestID   *string `db:"request_id"`
	model.Metadata
}
