package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shareit/config"
	"shareit/infras/otel/mocks"
	itemMocks "shareit/internal/domains/item/mocks"
	itemModel "shareit/internal/domains/item/model"
	requestMocks "shareit/internal/domains/request/mocks"
	"shareit/internal/domains/request/model"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service"
	userMocks "shareit/internal/domains/user/mocks"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
)

type requestMockSet struct {
	request *requestMocks.MockRequest
	item    *itemMocks.MockItem
	user    *userMocks.MockUser
}

func newRequestService(t *testing.T) (service.Request, requestMockSet) {
	ctrl := gomock.NewController(t)

	set := requestMockSet{
		request: requestMocks.NewMockRequest(ctrl),
		item:    itemMocks.NewMockItem(ctrl),
		user:    userMocks.NewMockUser(ctrl),
	}

	svc := service.New(set.request, set.item, set.user, &config.Config{}, mocks.NewOtel())

	return svc, set
}

func stringPtr(s string) *string {
	return &s
}

func TestRequestService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc, set := newRequestService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.request.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Create(context.Background(), "user-1", dto.CreateRequestRequest{Description: "Need a drill"})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Need a drill", res.Description)
		assert.Equal(t, "user-1", res.RequesterID)
		assert.NotEmpty(t, res.Created)
	})

	t.Run("unknown requester is not found", func(t *testing.T) {
		svc, set := newRequestService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.Create(context.Background(), "missing", dto.CreateRequestRequest{Description: "Need a drill"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRequestService_GetAllByRequester(t *testing.T) {
	svc, set := newRequestService(t)

	requests := []model.Request{
		{ID: "request-2", Description: "Need a hammer", RequesterID: "user-1"},
		{ID: "request-1", Description: "Need a drill", RequesterID: "user-1"},
	}

	set.user.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	set.request.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Request, error) {
			assert.Equal(t, "requests.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			where, args := filter.GetWhereClause()

			assert.Contains(t, where, "requests.requester_id = :requester_id")
			assert.Equal(t, "user-1", args["requester_id"])

			return requests, nil
		})

	set.item.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]itemModel.Item{
			{ID: "item-1", UserID: "owner-1", Name: "Drill", RequestID: stringPtr("request-1")},
		}, nil)

	res, err := svc.GetAllByRequester(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Empty(t, res[0].Items)
	assert.Len(t, res[1].Items, 1)
	assert.Equal(t, "Drill", res[1].Items[0].Name)
	assert.Equal(t, "owner-1", res[1].Items[0].OwnerID)
}

func TestRequestService_GetAllOthers(t *testing.T) {
	svc, set := newRequestService(t)

	set.user.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	set.request.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Request, error) {
			where, _ := filter.GetWhereClause()

			assert.Contains(t, where, "requests.requester_id != :requester_id")

			return nil, nil
		})

	res, err := svc.GetAllOthers(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Empty(t, res)
}

func TestRequestService_Get(t *testing.T) {
	t.Run("existing request with items", func(t *testing.T) {
		svc, set := newRequestService(t)

		set.request.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Request{ID: "request-1", Description: "Need a drill", RequesterID: "user-1"}, nil)

		set.item.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]itemModel.Item{
				{ID: "item-1", UserID: "owner-1", Name: "Drill", RequestID: stringPtr("request-1")},
			}, nil)

		res, err := svc.Get(context.Background(), "request-1")

		assert.NoError(t, err)
		assert.Equal(t, "request-1", res.ID)
		assert.Len(t, res.Items, 1)
	})

	t.Run("missing request is not found", func(t *testing.T) {
		svc, set := newRequestService(t)

		set.request.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Request{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
