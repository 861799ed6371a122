package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shareit/config"
	"shareit/infras/otel/mocks"
	userMocks "shareit/internal/domains/user/mocks"
	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/domains/user/service"
	"shareit/shared/failure"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
)

func newUser(id, name, email string) model.User {
	return model.User{
		ID:    id,
		Name:  name,
		Email: email,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateUserRequest{
				Name:  "Gorge",
				Email: "gorge@yandex.ru",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "duplicate email is a conflict",
			req: dto.CreateUserRequest{
				Name:  "Gorge",
				Email: "gorge@yandex.ru",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository failure",
			req: dto.CreateUserRequest{
				Name:  "Gorge",
				Email: "gorge@yandex.ru",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("connection refused"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.Name, res.Name)
			assert.Equal(t, tt.req.Email, res.Email)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	t.Run("existing user", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(newUser("user-1", "Gorge", "gorge@yandex.ru"), nil)

		res, err := svc.Get(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
		assert.Equal(t, "Gorge", res.Name)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	existing := newUser("user-1", "Gorge", "gorge@yandex.ru")

	t.Run("partial update keeps blank fields", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Update(context.Background(), dto.UpdateUserRequest{Name: "George"}, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "George", res.Name)
		assert.Equal(t, "gorge@yandex.ru", res.Email)
	})

	t.Run("email taken by another user is a conflict", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(newUser("user-2", "Other", "taken@yandex.ru"), nil)

		_, err := svc.Update(context.Background(), dto.UpdateUserRequest{Email: "taken@yandex.ru"}, "user-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("re-submitting the own email is fine", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Update(context.Background(), dto.UpdateUserRequest{Name: "G", Email: "gorge@yandex.ru"}, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "gorge@yandex.ru", res.Email)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Update(context.Background(), dto.UpdateUserRequest{Name: "George"}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	t.Run("existing user", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "user-1"))
	})

	t.Run("missing user is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
