package service

import (
	"context"
	"fmt"

	"shareit/config"
	"shareit/infras/otel"
	itemModel "shareit/internal/domains/item/model"
	itemRepo "shareit/internal/domains/item/repository"
	"shareit/internal/domains/request/model"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"

	"github.com/rs/zerolog/log"
)

type Request interface {
	Create(ctx context.Context, userID string, req dto.CreateRequestRequest) (dto.RequestResponse, error)
	GetAllByRequester(ctx context.Context, userID string) ([]dto.RequestWithItemsResponse, error)
	GetAllOthers(ctx context.Context, userID string) ([]dto.RequestWithItemsResponse, error)
	Get(ctx context.Context, requestID string) (dto.RequestWithItemsResponse, error)
}

type serviceImpl struct {
	repo     repository.Request
	itemRepo itemRepo.Item
	userRepo userRepo.User
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Request, itemRepo itemRepo.Item, userRepo userRepo.User, cfg *config.Config, otel otel.Otel) Request {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, userID string, req dto.CreateRequestRequest) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureUserExists(ctx, userID); err != nil {
		return res, err
	}

	request := req.ToModel(userID)

	if err = s.repo.Insert(ctx, request); err != nil {
		log.Error().Err(err).Msg("failed to create request")

		return res, fmt.Errorf("failed to create request: %w", err)
	}

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) GetAllByRequester(ctx context.Context, userID string) ([]dto.RequestWithItemsResponse, error) {
	filter := gDto.Filter{
		Field:    model.FieldRequesterID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}

	return s.getAll(ctx, "GetAllByRequester", userID, filter)
}

func (s *serviceImpl) GetAllOthers(ctx context.Context, userID string) ([]dto.RequestWithItemsResponse, error) {
	filter := gDto.Filter{
		Field:    model.FieldRequesterID,
		Operator: gDto.FilterOperatorNotEq,
		Value:    userID,
		Table:    model.TableName,
	}

	return s.getAll(ctx, "GetAllOthers", userID, filter)
}

func (s *serviceImpl) Get(ctx context.Context, requestID string) (res dto.RequestWithItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	request, err := s.repo.Get(ctx, shared.FilterByID(requestID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get request")

		return res, fmt.Errorf("failed to get request: %w", err)
	}

	if request.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("request with id=%s not found", requestID)) // nolint:wrapcheck
	}

	itemsByRequest, err := s.getMatchingItems(ctx, []string{request.ID})
	if err != nil {
		return res, err
	}

	res.FromModel(request, itemsByRequest[request.ID])

	return res, nil
}

func (s *serviceImpl) getAll(ctx context.Context, op, userID string, requesterFilter gDto.Filter) (res []dto.RequestWithItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request."+op)
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	requests, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{Filters: []any{requesterFilter}})
	if err != nil {
		log.Error().Err(err).Msg("failed to get requests")

		return nil, fmt.Errorf("failed to get requests: %w", err)
	}

	requestIDs := make([]string, 0, len(requests))
	for _, request := range requests {
		requestIDs = append(requestIDs, request.ID)
	}

	itemsByRequest, err := s.getMatchingItems(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	res = make([]dto.RequestWithItemsResponse, 0, len(requests))

	for _, request := range requests {
		var requestRes dto.RequestWithItemsResponse

		requestRes.FromModel(request, itemsByRequest[request.ID])
		res = append(res, requestRes)
	}

	return res, nil
}

// getMatchingItems loads the items offered against the given requests in one
// query and groups them by request id.
func (s *serviceImpl) getMatchingItems(ctx context.Context, requestIDs []string) (map[string][]dto.RequestItemResponse, error) {
	grouped := map[string][]dto.RequestItemResponse{}

	if len(requestIDs) == 0 {
		return grouped, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    itemModel.FieldRequestID,
				Operator: gDto.FilterOperatorIn,
				Value:    requestIDs,
				Table:    itemModel.TableName,
			},
		},
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get matching items")

		return nil, fmt.Errorf("failed to get matching items: %w", err)
	}

	for _, item := range items {
		if item.RequestID == nil {
			continue
		}

		grouped[*item.RequestID] = append(grouped[*item.RequestID], dto.RequestItemResponse{
			ID:      item.ID,
			Name:    item.Name,
			OwnerID: item.UserID,
		})
	}

	return grouped, nil
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
