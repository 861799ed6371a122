package dto

import (
	"shareit/internal/domains/item/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Available   *bool   `json:"available"   validate:"required"`
	RequestID   *string `json:"requestId"   validate:"omitempty,uuid"`
}

func (c *CreateItemRequest) ToModel(userID string) model.Item {
	return model.Item{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        c.Name,
		Description: c.Description,
		Available:   *c.Available,
		RequestID:   c.RequestID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateItemRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=255"`
	Description string `db:"description" json:"description"`
	Available   *bool  `db:"available"   json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (c *CreateCommentRequest) ToModel(userID, itemID string) model.Comment {
	return model.Comment{
		ID:       uuid.NewString(),
		ItemID:   itemID,
		AuthorID: userID,
		Text:     c.Text,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *string `json:"requestId"`
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Available = model.Available
	r.RequestID = model.RequestID
}

type CommentResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
	Created    string `json:"created"`
}

func (r *CommentResponse) FromModel(model model.Comment) {
	r.ID = model.ID
	r.Text = model.Text
	r.AuthorName = model.AuthorName
	r.Created = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *string           `json:"lastBooking"`
	NextBooking *string           `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func (r *ItemDetailResponse) FromModel(model model.Item, last, next *time.Time, comments []CommentResponse) {
	r.ItemResponse.FromModel(model)

	if last != nil {
		formatted := timezone.Format(*last, constant.DateFormat)
		r.LastBooking = &formatted
	}

	if next != nil {
		formatted := timezone.Format(*next, constant.DateFormat)
		r.NextBooking = &formatted
	}

	r.Comments = comments
	if r.Comments == nil {
		r.Comments = []CommentResponse{}
	}
}
