package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shareit/config"
	"shareit/infras/otel"
	bookingModel "shareit/internal/domains/booking/model"
	bookingRepo "shareit/internal/domains/booking/repository"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/repository"
	requestModel "shareit/internal/domains/request/model"
	requestRepo "shareit/internal/domains/request/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Item interface {
	Create(ctx context.Context, userID string, req dto.CreateItemRequest) (dto.ItemResponse, error)
	Update(ctx context.Context, userID, itemID string, req dto.UpdateItemRequest) (dto.ItemResponse, error)
	Get(ctx context.Context, itemID string) (dto.ItemDetailResponse, error)
	GetAllByOwner(ctx context.Context, userID string) ([]dto.ItemDetailResponse, error)
	Search(ctx context.Context, text string) ([]dto.ItemResponse, error)
	CreateComment(ctx context.Context, userID, itemID string, req dto.CreateCommentRequest) (dto.CommentResponse, error)
}

type serviceImpl struct {
	repo        repository.Item
	commentRepo repository.Comment
	bookingRepo bookingRepo.Booking
	userRepo    userRepo.User
	requestRepo requestRepo.Request
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.Item,
	commentRepo repository.Comment,
	bookingRepo bookingRepo.Booking,
	userRepo userRepo.User,
	requestRepo requestRepo.Request,
	cfg *config.Config,
	otel otel.Otel,
) Item {
	return &serviceImpl{
		repo:        repo,
		commentRepo: commentRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, userID string, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureUserExists(ctx, userID); err != nil {
		return res, err
	}

	if req.RequestID != nil {
		requestExists, err := s.requestRepo.Exist(ctx, shared.FilterByID(*req.RequestID, requestModel.FieldID, requestModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if request exists")

			return res, fmt.Errorf("failed to check if request exists: %w", err)
		}

		if !requestExists {
			return res, failure.NotFound(fmt.Sprintf("request with id=%s not found", *req.RequestID)) // nolint:wrapcheck
		}
	}

	item := req.ToModel(userID)

	if err = s.repo.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to create item")

		return res, fmt.Errorf("failed to create item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, userID, itemID string, req dto.UpdateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureUserExists(ctx, userID); err != nil {
		return res, err
	}

	item, err := s.repo.Get(ctx, shared.FilterByID(itemID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("item with id=%s not found", itemID)) // nolint:wrapcheck
	}

	fields := shared.TransformFields(req)

	if req.Available != nil {
		fields[model.FieldAvailable] = *req.Available
		item.Available = *req.Available
	}

	if len(fields) > 1 {
		if err = s.repo.Update(ctx, fields, shared.FilterByID(itemID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update item")

			return res, fmt.Errorf("failed to update item: %w", err)
		}
	}

	if req.Name != constant.Empty {
		item.Name = req.Name
	}

	if req.Description != constant.Empty {
		item.Description = req.Description
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, itemID string) (res dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, err := s.repo.Get(ctx, shared.FilterByID(itemID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("item with id=%s not found", itemID)) // nolint:wrapcheck
	}

	return s.annotate(ctx, item)
}

func (s *serviceImpl) GetAllByOwner(ctx context.Context, userID string) (res []dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.GetAllByOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	items, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items")

		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	res = make([]dto.ItemDetailResponse, 0, len(items))

	for _, item := range items {
		detail, err := s.annotate(ctx, item)
		if err != nil {
			return nil, err
		}

		res = append(res, detail)
	}

	return res, nil
}

func (s *serviceImpl) Search(ctx context.Context, text string) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	res = []dto.ItemResponse{}

	if strings.TrimSpace(text) == constant.Empty {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAvailable,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    model.FieldName,
						Operator: gDto.FilterOperatorLike,
						Value:    text,
						Table:    model.TableName,
					},
					gDto.Filter{
						Field:    model.FieldDescription,
						Operator: gDto.FilterOperatorLike,
						Value:    text,
						Table:    model.TableName,
					},
				},
			},
		},
	}

	items, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search items")

		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	for _, item := range items {
		var itemRes dto.ItemResponse

		itemRes.FromModel(item)
		res = append(res, itemRes)
	}

	return res, nil
}

func (s *serviceImpl) CreateComment(ctx context.Context, userID, itemID string, req dto.CreateCommentRequest) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.CreateComment")
	defer scope.End()
	defer scope.TraceIfError(err)

	author, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get comment author")

		return res, fmt.Errorf("failed to get comment author: %w", err)
	}

	if author.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("user with id=%s not found", userID)) // nolint:wrapcheck
	}

	itemExists, err := s.repo.Exist(ctx, shared.FilterByID(itemID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if item exists")

		return res, fmt.Errorf("failed to check if item exists: %w", err)
	}

	if !itemExists {
		return res, failure.NotFound(fmt.Sprintf("item with id=%s not found", itemID)) // nolint:wrapcheck
	}

	completedFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldBookerID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    itemID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldEndDate,
				Operator: gDto.FilterOperatorLess,
				Value:    timezone.Now(),
				Table:    bookingModel.TableName,
			},
		},
	}

	hasCompletedBooking, err := s.bookingRepo.Exist(ctx, completedFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check for a completed booking")

		return res, fmt.Errorf("failed to check for a completed booking: %w", err)
	}

	if !hasCompletedBooking {
		return res, failure.BadRequestFromString("commenting requires a completed booking on the item") // nolint:wrapcheck
	}

	comment := req.ToModel(userID, itemID)

	if err = s.commentRepo.Insert(ctx, comment); err != nil {
		log.Error().Err(err).Msg("failed to create comment")

		return res, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.AuthorName = author.Name

	res.FromModel(comment)

	return res, nil
}

// annotate decorates an item with its booking boundaries and comments.
func (s *serviceImpl) annotate(ctx context.Context, item model.Item) (res dto.ItemDetailResponse, err error) {
	now := timezone.Now()

	last, err := s.bookingRepo.GetLastEndDate(ctx, item.ID, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to get last booking end date")

		return res, fmt.Errorf("failed to get last booking end date: %w", err)
	}

	// A booking that ended moments ago is likely still being read back by its
	// booker, hide it from the annotation for a short window.
	grace := time.Duration(s.cfg.Booking.LastBookingGraceSeconds) * time.Second
	if last != nil && now.Sub(*last) <= grace {
		last = nil
	}

	next, err := s.bookingRepo.GetNextStartDate(ctx, item.ID, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to get next booking start date")

		return res, fmt.Errorf("failed to get next booking start date: %w", err)
	}

	comments, err := s.getComments(ctx, item.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(item, last, next, comments)

	return res, nil
}

func (s *serviceImpl) getComments(ctx context.Context, itemID string) ([]dto.CommentResponse, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.CommentFieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    itemID,
				Table:    model.CommentTableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.CommentTableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	comments, err := s.commentRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comments")

		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	res := make([]dto.CommentResponse, 0, len(comments))

	for _, comment := range comments {
		var commentRes dto.CommentResponse

		commentRes.FromModel(comment)
		res = append(res, commentRes)
	}

	return res, nil
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
