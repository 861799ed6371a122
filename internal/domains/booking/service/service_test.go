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
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service"
	itemMocks "shareit/internal/domains/item/mocks"
	itemModel "shareit/internal/domains/item/model"
	userMocks "shareit/internal/domains/user/mocks"
	userModel "shareit/internal/domains/user/model"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
)

type bookingMockSet struct {
	booking *bookingMocks.MockBooking
	item    *itemMocks.MockItem
	user    *userMocks.MockUser
}

func newBookingService(t *testing.T) (service.Booking, bookingMockSet) {
	ctrl := gomock.NewController(t)

	set := bookingMockSet{
		booking: bookingMocks.NewMockBooking(ctrl),
		item:    itemMocks.NewMockItem(ctrl),
		user:    userMocks.NewMockUser(ctrl),
	}

	svc := service.New(set.booking, set.item, set.user, &config.Config{}, mocks.NewOtel())

	return svc, set
}

func availableItem(id, ownerID string) itemModel.Item {
	return itemModel.Item{
		ID:          id,
		UserID:      ownerID,
		Name:        "Drill",
		Description: "Cordless",
		Available:   true,
	}
}

func TestBookingService_Create(t *testing.T) {
	start := timezone.Now().Add(time.Hour)
	end := start.Add(time.Hour)

	booker := userModel.User{ID: "booker-1", Name: "Gorge", Email: "gorge@yandex.ru"}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(set bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation starts waiting",
			req:  dto.CreateBookingRequest{ItemID: "item-1", Start: start, End: end},
			setupMock: func(set bookingMockSet) {
				set.user.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, nil)

				set.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableItem("item-1", "owner-1"), nil)

				set.booking.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown booker is not found",
			req:  dto.CreateBookingRequest{ItemID: "item-1", Start: start, End: end},
			setupMock: func(set bookingMockSet) {
				set.user.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown item is not found",
			req:  dto.CreateBookingRequest{ItemID: "missing", Start: start, End: end},
			setupMock: func(set bookingMockSet) {
				set.user.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, nil)

				set.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(itemModel.Item{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unavailable item fails validation",
			req:  dto.CreateBookingRequest{ItemID: "item-1", Start: start, End: end},
			setupMock: func(set bookingMockSet) {
				set.user.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, nil)

				item := availableItem("item-1", "owner-1")
				item.Available = false

				set.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "start equal to end fails validation",
			req:  dto.CreateBookingRequest{ItemID: "item-1", Start: start, End: start},
			setupMock: func(set bookingMockSet) {
				set.user.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, nil)

				set.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableItem("item-1", "owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "start after end fails validation",
			req:  dto.CreateBookingRequest{ItemID: "item-1", Start: end, End: start},
			setupMock: func(set bookingMockSet) {
				set.user.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, nil)

				set.item.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableItem("item-1", "owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newBookingService(t)
			tt.setupMock(set)

			res, err := svc.Create(context.Background(), "booker-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.StatusWaiting, res.Status)
			assert.Equal(t, "item-1", res.Item.ID)
			assert.Equal(t, "Drill", res.Item.Name)
			assert.Equal(t, "booker-1", res.Booker.ID)
		})
	}
}

func TestBookingService_Approve(t *testing.T) {
	waiting := model.Booking{
		ID:          "booking-1",
		ItemID:      "item-1",
		BookerID:    "booker-1",
		StartDate:   timezone.Now().Add(time.Hour),
		EndDate:     timezone.Now().Add(2 * time.Hour),
		Status:      model.StatusWaiting,
		ItemName:    "Drill",
		ItemOwnerID: "owner-1",
		BookerName:  "Gorge",
	}

	t.Run("owner approves", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.booking.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(waiting, nil)

		set.booking.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Approve(context.Background(), "owner-1", "booking-1", true)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusApproved, res.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.booking.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(waiting, nil)

		set.booking.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Approve(context.Background(), "owner-1", "booking-1", false)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusRejected, res.Status)
	})

	t.Run("booker may not decide", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.booking.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(waiting, nil)

		_, err := svc.Approve(context.Background(), "booker-1", "booking-1", true)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.booking.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Approve(context.Background(), "owner-1", "missing", true)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	booking := model.Booking{
		ID:          "booking-1",
		ItemID:      "item-1",
		BookerID:    "booker-1",
		StartDate:   timezone.Now().Add(time.Hour),
		EndDate:     timezone.Now().Add(2 * time.Hour),
		Status:      model.StatusWaiting,
		ItemOwnerID: "owner-1",
	}

	tests := []struct {
		name     string
		caller   string
		wantErr  bool
		wantCode int
	}{
		{name: "visible to booker", caller: "booker-1"},
		{name: "visible to owner", caller: "owner-1"},
		{name: "hidden from anyone else", caller: "stranger", wantErr: true, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newBookingService(t)

			set.user.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil)

			set.booking.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(booking, nil)

			res, err := svc.Get(context.Background(), tt.caller, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "booking-1", res.ID)
		})
	}

	t.Run("unknown caller is not found", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.Get(context.Background(), "missing", "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.booking.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "booker-1", "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAllByBooker(t *testing.T) {
	bookings := []model.Booking{
		{ID: "booking-1", ItemID: "item-1", BookerID: "booker-1", Status: model.StatusWaiting},
		{ID: "booking-2", ItemID: "item-2", BookerID: "booker-1", Status: model.StatusApproved},
	}

	t.Run("lists sorted ascending by start", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.booking.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, "bookings.start_date", params.SortBy)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return bookings, nil
			})

		res, err := svc.GetAllByBooker(context.Background(), "booker-1", model.StateAll)

		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "booking-1", res[0].ID)
	})

	t.Run("state bucket narrows the filter", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.booking.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "bookings.booker_id = :booker_id")
				assert.Contains(t, where, "bookings.status = :status")
				assert.Equal(t, model.StatusRejected, args["status"])

				return nil, nil
			})

		_, err := svc.GetAllByBooker(context.Background(), "booker-1", model.StateRejected)

		assert.NoError(t, err)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.GetAllByBooker(context.Background(), "missing", model.StateAll)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAllByOwner(t *testing.T) {
	t.Run("filters on the item owner column", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.booking.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "items.user_id = :owner_id")
				assert.Equal(t, "owner-1", args["owner_id"])

				return nil, nil
			})

		res, err := svc.GetAllByOwner(context.Background(), "owner-1", model.StateAll)

		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("current bucket brackets now between start and end", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.user.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		set.booking.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "bookings.start_date <= :start_date")
				assert.Contains(t, where, "bookings.end_date >= :end_date")
				assert.IsType(t, time.Time{}, args["start_date"])

				return nil, nil
			})

		_, err := svc.GetAllByOwner(context.Background(), "owner-1", model.StateCurrent)

		assert.NoError(t, err)
	})
}

func TestParseState(t *testing.T) {
	for _, valid := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		state, err := model.ParseState(valid)

		assert.NoError(t, err)
		assert.Equal(t, model.State(valid), state)
	}

	for _, invalid := range []string{"", "all", "Approved", "APPROVED", "SOMETHING"} {
		_, err := model.ParseState(invalid)

		assert.Error(t, err)
	}
}
