package service

import (
	"context"
	"fmt"

	"shareit/config"
	"shareit/infras/otel"
	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"

	"github.com/rs/zerolog/log"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.repo.Exist(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if email is taken")

		return res, fmt.Errorf("failed to check if email is taken: %w", err)
	}

	if exists {
		return res, failure.Conflict(fmt.Sprintf("email %s is already registered", req.Email)) // nolint:wrapcheck
	}

	user := req.ToModel()

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("user with id=%s not found", id)) // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound(fmt.Sprintf("user with id=%s not found", id)) // nolint:wrapcheck
	}

	if req.Email != constant.Empty && req.Email != user.Email {
		owner, err := s.repo.Get(ctx, filterByEmail(req.Email))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if email is taken")

			return res, fmt.Errorf("failed to check if email is taken: %w", err)
		}

		if owner.ID != constant.Empty && owner.ID != id {
			return res, failure.Conflict(fmt.Sprintf("email %s is already registered", req.Email)) // nolint:wrapcheck
		}
	}

	fields := shared.TransformFields(req)
	if len(fields) > 1 {
		if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update user")

			return res, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if req.Name != constant.Empty {
		user.Name = req.Name
	}

	if req.Email != constant.Empty {
		user.Email = req.Email
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exists {
		return failure.NotFound(fmt.Sprintf("user with id=%s not found", id)) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
