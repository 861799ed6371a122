package dto

import (
	"time"

	"shareit/internal/domains/booking/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ItemID string    `json:"itemId" validate:"required,uuid"`
	Start  time.Time `json:"start"  validate:"required"`
	End    time.Time `json:"end"    validate:"required"`
}

func (c *CreateBookingRequest) ToModel(bookerID string) model.Booking {
	return model.Booking{
		ID:        uuid.NewString(),
		ItemID:    c.ItemID,
		BookerID:  bookerID,
		StartDate: c.Start,
		EndDate:   c.End,
		Status:    model.StatusWaiting,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type BookingItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingUserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     string              `json:"id"`
	Start  string              `json:"start"`
	End    string              `json:"end"`
	Status string              `json:"status"`
	Item   BookingItemResponse `json:"item"`
	Booker BookingUserResponse `json:"booker"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Start = timezone.Format(model.StartDate, constant.DateFormat)
	r.End = timezone.Format(model.EndDate, constant.DateFormat)
	r.Status = model.Status
	r.Item = BookingItemResponse{
		ID:   model.ItemID,
		Name: model.ItemName,
	}
	r.Booker = BookingUserResponse{
		ID:   model.BookerID,
		Name: model.BookerName,
	}
}
