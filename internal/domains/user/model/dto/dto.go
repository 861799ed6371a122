package dto

import (
	"shareit/internal/domains/user/model"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=512"`
}

func (c *CreateUserRequest) ToModel() model.User {
	return model.User{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Email: c.Email,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateUserRequest struct {
	Name  string `db:"name"  json:"name"  validate:"omitempty,max=255"`
	Email string `db:"email" json:"email" validate:"omitempty,email,max=512"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
}
