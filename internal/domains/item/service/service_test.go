package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shareit/config"
	"shareit/infras/otel/mocks"
	bookingMocks "shareit/internal/domains/booking/mocks"
	itemMocks "shareit/internal/domains/item/mocks"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/service"
	requestMocks "shareit/internal/domains/request/mocks"
	userMocks "shareit/internal/domains/user/mocks"
	userModel "shareit/internal/domains/user/model"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
)

type itemMockSet struct {
	item    *itemMocks.MockItem
	comment *itemMocks.MockComment
	booking *bookingMocks.MockBooking
	user    *userMocks.MockUser
	request *requestMocks.MockRequest
}

func newItemService(t *testing.T) (service.Item, itemMockSet) {
	ctrl := gomock.NewController(t)

	set := itemMockSet{
		item:    itemMocks.NewMockItem(ctrl),
		comment: itemMocks.NewMockComment(ctrl),
		booking: bookingMocks.NewMockBooking(ctrl),
		user:    userMocks.NewMockUser(ctrl),
		request: requestMocks.NewMockRequest(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.LastBookingGraceSeconds = 5

	svc := service.New(set.item, set.comment, set.booking, set.user, set.request, cfg, mocks.NewOtel())

	return svc, set
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

func TestItemService_Create(t *testing.T) {
	req := dto.CreateItemRequest{
		Name:        "Drill",
		Description: "Cordless",
		Available:   boolPtr(true),
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, set := newItemService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.item.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Create(context.Background(), "owner-1", req)

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Drill", res.Name)
		assert.True(t, res.Available)
		assert.Nil(t, res.RequestID)
	})

	t.Run("unknown owner is not found", func(t *testing.T) {
		svc, set := newItemService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.Create(context.Background(), "missing", req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown originating request is not found", func(t *testing.T) {
		svc, set := newItemService(t)

		withRequest := req
		withRequest.RequestID = stringPtr("request-1")

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.request.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.Create(context.Background(), "owner-1", withRequest)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestItemService_Update(t *testing.T) {
	existing := model.Item{
		ID:          "item-1",
		UserID:      "owner-1",
		Name:        "Drill",
		Description: "Cordless",
		Available:   true,
	}

	t.Run("partial update keeps blank fields", func(t *testing.T) {
		svc, set := newItemService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.item.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		set.item.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, "available")
				assert.NotContains(t, fields, "name")

				return nil
			})

		res, err := svc.Update(context.Background(), "owner-1", "item-1", dto.UpdateItemRequest{Available: boolPtr(false)})

		assert.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, "Drill", res.Name)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		svc, set := newItemService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.item.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Item{}, nil)

		_, err := svc.Update(context.Background(), "owner-1", "missing", dto.UpdateItemRequest{Name: "Hammer"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestItemService_Get(t *testing.T) {
	item := model.Item{
		ID:          "item-1",
		UserID:      "owner-1",
		Name:        "Drill",
		Description: "Cordless",
		Available:   true,
	}

	t.Run("annotates booking boundaries and comments", func(t *testing.T) {
		svc, set := newItemService(t)

		last := timezone.Now().Add(-24 * time.Hour)
		next := timezone.Now().Add(24 * time.Hour)

		set.item.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(item, nil)

		set.booking.EXPECT().
			GetLastEndDate(gomock.Any(), "item-1", gomock.Any()).
			Return(&last, nil)

		set.booking.EXPECT().
			GetNextStartDate(gomock.Any(), "item-1", gomock.Any()).
			Return(&next, nil)

		set.comment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Comment{{ID: "comment-1", ItemID: "item-1", Text: "Great drill", AuthorName: "Gorge"}}, nil)

		res, err := svc.Get(context.Background(), "item-1")

		assert.NoError(t, err)
		assert.NotNil(t, res.LastBooking)
		assert.NotNil(t, res.NextBooking)
		assert.Len(t, res.Comments, 1)
		assert.Equal(t, "Gorge", res.Comments[0].AuthorName)
	})

	t.Run("a booking that just ended is debounced", func(t *testing.T) {
		svc, set := newItemService(t)

		justEnded := timezone.Now().Add(-2 * time.Second)

		set.item.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(item, nil)

		set.booking.EXPECT().
			GetLastEndDate(gomock.Any(), "item-1", gomock.Any()).
			Return(&justEnded, nil)

		set.booking.EXPECT().
			GetNextStartDate(gomock.Any(), "item-1", gomock.Any()).
			Return(nil, nil)

		set.comment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := svc.Get(context.Background(), "item-1")

		assert.NoError(t, err)
		assert.Nil(t, res.LastBooking)
		assert.Nil(t, res.NextBooking)
		assert.Empty(t, res.Comments)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		svc, set := newItemService(t)

		set.item.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Item{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestItemService_GetAllByOwner(t *testing.T) {
	svc, set := newItemService(t)

	items := []model.Item{
		{ID: "item-1", UserID: "owner-1", Name: "Drill", Available: true},
		{ID: "item-2", UserID: "owner-1", Name: "Hammer", Available: false},
	}

	set.user.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	set.item.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(items, nil)

	for _, item := range items {
		set.booking.EXPECT().
			GetLastEndDate(gomock.Any(), item.ID, gomock.Any()).
			Return(nil, nil)

		set.booking.EXPECT().
			GetNextStartDate(gomock.Any(), item.ID, gomock.Any()).
			Return(nil, nil)

		set.comment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
	}

	res, err := svc.GetAllByOwner(context.Background(), "owner-1")

	assert.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, "item-1", res[0].ID)
}

func TestItemService_Search(t *testing.T) {
	t.Run("blank text returns empty without querying", func(t *testing.T) {
		svc, _ := newItemService(t)

		for _, text := range []string{"", "   "} {
			res, err := svc.Search(context.Background(), text)

			assert.NoError(t, err)
			assert.Empty(t, res)
			assert.NotNil(t, res)
		}
	})

	t.Run("matches available items only", func(t *testing.T) {
		svc, set := newItemService(t)

		set.item.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Item, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "items.available = :available")
				assert.Contains(t, where, "LOWER(items.name) LIKE LOWER(:name)")
				assert.Contains(t, where, "LOWER(items.description) LIKE LOWER(:description)")
				assert.Contains(t, where, " OR ")
				assert.Equal(t, "%drill%", args["name"])

				return []model.Item{{ID: "item-1", Name: "Drill", Available: true}}, nil
			})

		res, err := svc.Search(context.Background(), "drill")

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "Drill", res[0].Name)
	})
}

func TestItemService_CreateComment(t *testing.T) {
	author := userModel.User{ID: "booker-1", Name: "Gorge", Email: "gorge@yandex.ru"}

	t.Run("requires a completed booking", func(t *testing.T) {
		svc, set := newItemService(t)

		set.user.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(author, nil)

		set.item.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.booking.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				where, _ := filter.GetWhereClause()

				assert.Contains(t, where, "bookings.booker_id = :booker_id")
				assert.Contains(t, where, "bookings.item_id = :item_id")
				assert.Contains(t, where, "bookings.end_date < :end_date")

				return false, nil
			})

		_, err := svc.CreateComment(context.Background(), "booker-1", "item-1", dto.CreateCommentRequest{Text: "Great"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("successful comment carries the author name", func(t *testing.T) {
		svc, set := newItemService(t)

		set.user.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(author, nil)

		set.item.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.booking.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.comment.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.CreateComment(context.Background(), "booker-1", "item-1", dto.CreateCommentRequest{Text: "Great drill"})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Great drill", res.Text)
		assert.Equal(t, "Gorge", res.AuthorName)
	})

	t.Run("unknown author is not found", func(t *testing.T) {
		svc, set := newItemService(t)

		set.user.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.CreateComment(context.Background(), "missing", "item-1", dto.CreateCommentRequest{Text: "Great"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
