package dto

import (
	"shareit/internal/domains/request/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"

	"github.com/google/uuid"
)

type CreateRequestRequest struct {
	Description string `json:"description" validate:"required"`
}

func (c *CreateRequestRequest) ToModel(requesterID string) model.Request {
	return model.Request{
		ID:          uuid.NewString(),
		Description: c.Description,
		RequesterID: requesterID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

// RequestItemResponse is the short item projection attached to a request,
// listing the items offered in answer to it.
type RequestItemResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"ownerId"`
}

type RequestResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	RequesterID string `json:"requesterId"`
	Created     string `json:"created"`
}

func (r *RequestResponse) FromModel(model model.Request) {
	r.ID = model.ID
	r.Description = model.Description
	r.RequesterID = model.RequesterID
	r.Created = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type RequestWithItemsResponse struct {
	RequestResponse
	Items []RequestItemResponse `json:"items"`
}

func (r *RequestWithItemsResponse) FromModel(model model.Request, items []RequestItemResponse) {
	r.RequestResponse.FromModel(model)

	r.Items = items
	if r.Items == nil {
		r.Items = []RequestItemResponse{}
	}
}
