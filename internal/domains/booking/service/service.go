package service

import (
	"context"
	"fmt"
	"time"

	"shareit/config"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/repository"
	itemModel "shareit/internal/domains/item/model"
	itemRepo "shareit/internal/domains/item/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, userID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Approve(ctx context.Context, userID, bookingID string, approved bool) (dto.BookingResponse, error)
	Get(ctx context.Context, userID, bookingID string) (dto.BookingResponse, error)
	GetAllByBooker(ctx context.Context, userID string, state model.State) ([]dto.BookingResponse, error)
	GetAllByOwner(ctx context.Context, userID string, state model.State) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	itemRepo itemRepo.Item
	userRepo userRepo.User
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Booking, itemRepo itemRepo.Item, userRepo userRepo.User, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, userID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booker, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booker")

		return res, fmt.Errorf("failed to get booker: %w", err)
	}

	if booker.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("user with id=%s not found", userID)) // nolint:wrapcheck
	}

	item, err := s.itemRepo.Get(ctx, shared.FilterByID(req.ItemID, itemModel.FieldID, itemModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("item with id=%s not found", req.ItemID)) // nolint:wrapcheck
	}

	if !item.Available {
		return res, failure.BadRequestFromString(fmt.Sprintf("item with id=%s is not available for booking", item.ID)) // nolint:wrapcheck
	}

	if !req.Start.Before(req.End) {
		return res, failure.BadRequestFromString("booking start must be strictly before its end") // nolint:wrapcheck
	}

	booking := req.ToModel(userID)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ItemName = item.Name
	booking.ItemOwnerID = item.UserID
	booking.BookerName = booker.Name

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, userID, bookingID string, approved bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("booking with id=%s not found", bookingID)) // nolint:wrapcheck
	}

	if booking.ItemOwnerID != userID {
		return res, failure.Forbidden("only the item owner may approve or reject a booking") // nolint:wrapcheck
	}

	status := model.StatusRejected
	if approved {
		status = model.StatusApproved
	}

	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, userID, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureUserExists(ctx, userID); err != nil {
		return res, err
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("booking with id=%s not found", bookingID)) // nolint:wrapcheck
	}

	if booking.BookerID != userID && booking.ItemOwnerID != userID {
		return res, failure.Forbidden("booking is visible only to its booker or the item owner") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAllByBooker(ctx context.Context, userID string, state model.State) ([]dto.BookingResponse, error) {
	base := gDto.Filter{
		Field:    model.FieldBookerID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}

	return s.getAll(ctx, "GetAllByBooker", userID, state, base)
}

func (s *serviceImpl) GetAllByOwner(ctx context.Context, userID string, state model.State) ([]dto.BookingResponse, error) {
	base := gDto.Filter{
		Field:    itemModel.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    itemModel.TableName,
		ArgName:  "owner_id",
	}

	return s.getAll(ctx, "GetAllByOwner", userID, state, base)
}

func (s *serviceImpl) getAll(ctx context.Context, op, userID string, state model.State, base gDto.Filter) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking."+op)
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  append([]any{base}, stateFilters(state, timezone.Now())...),
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldStartDate,
		SortDir: gDto.SortDirAsc,
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = make([]dto.BookingResponse, 0, len(bookings))

	for _, booking := range bookings {
		var item dto.BookingResponse

		item.FromModel(booking)
		res = append(res, item)
	}

	return res, nil
}

// stateFilters translates a listing state into WHERE conditions on top of the
// booker/owner restriction. ALL contributes nothing.
func stateFilters(state model.State, now time.Time) []any {
	switch state {
	case model.StateCurrent:
		return []any{
			gDto.Filter{Field: model.FieldStartDate, Operator: gDto.FilterOperatorLessEq, Value: now, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDate, Operator: gDto.FilterOperatorGreaterEq, Value: now, Table: model.TableName},
		}
	case model.StatePast:
		return []any{
			gDto.Filter{Field: model.FieldEndDate, Operator: gDto.FilterOperatorLess, Value: now, Table: model.TableName},
		}
	case model.StateFuture:
		return []any{
			gDto.Filter{Field: model.FieldStartDate, Operator: gDto.FilterOperatorGreater, Value: now, Table: model.TableName},
		}
	case model.StateWaiting, model.StateRejected:
		return []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: string(state), Table: model.TableName},
		}
	default:
		return nil
	}
}

func (s *serviceImpl) ensureUserExists(ctx context.Context, userID string) error {
	exists, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exists {
		return failure.NotFound(fmt.Sprintf("user with id=%s not found", userID)) // nolint:wrapcheck
	}

	return nil
}
