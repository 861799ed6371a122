package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/booking/model"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/logger"
	gRepo "shareit/shared/repository"
)

const (
	queryLastEndDate   = `SELECT MAX(end_date) FROM bookings WHERE item_id = :item_id AND end_date < :now`
	queryNextStartDate = `SELECT MIN(start_date) FROM bookings WHERE item_id = :item_id AND start_date > :now`
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetLastEndDate(ctx context.Context, itemID string, now time.Time) (*time.Time, error)
	GetNextStartDate(ctx context.Context, itemID string, now time.Time) (*time.Time, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetLastEndDate(ctx context.Context, itemID string, now time.Time) (*time.Time, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetLastEndDate")
	defer scope.End()

	return repo.getBoundaryDate(ctx, scope, queryLastEndDate, itemID, now)
}

func (repo *repositoryImpl) GetNextStartDate(ctx context.Context, itemID string, now time.Time) (*time.Time, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetNextStartDate")
	defer scope.End()

	return repo.getBoundaryDate(ctx, scope, queryNextStartDate, itemID, now)
}

func (repo *repositoryImpl) getBoundaryDate(ctx context.Context, scope otel.Scope, query, itemID string, now time.Time) (*time.Time, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (booking): %w", err)
	}
	defer prepare.Close()

	var boundary sql.NullTime

	err = prepare.GetContext(ctx, &boundary, map[string]any{
		"item_id": itemID,
		"now":     now,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booking boundary date: %w", err)
	}

	if !boundary.Valid {
		return nil, nil
	}

	date := boundary.Time

	return &date, nil
}
