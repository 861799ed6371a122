package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/request/model"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"
)

type Request interface {
	Insert(ctx context.Context, model model.Request) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Request, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Request, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Request]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Request {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Request](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
