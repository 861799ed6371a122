package model

import "shareit/shared/model"

const (
	TableName  = "requests"
	EntityName = "request"

	FieldID          = "id"
	FieldDescription = "description"
	FieldRequesterID = "requester_id"
)

type Request struct {
	ID          string `db:"id"`
	Description string `db:"description"`
	RequesterID string `db:"requester_id"`
	model.Metadata
}
