package item

import (
	"net/http"

	"shareit/infras/otel"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/service"
	"shareit/shared/constant"
	"shareit/shared/validator"
	"shareit/transport/http/middleware"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Item
	otel    otel.Otel
}

func New(service service.Item, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Get("/", handler.GetUserItems)
		routerGroup.Get("/search", handler.SearchItems)
		routerGroup.Get("/{id}", handler.GetItemByID)
		routerGroup.Patch("/{id}", handler.UpdateItem)
		routerGroup.Post("/{id}/comment", handler.CreateComment)
	})
}

// CreateItem registers a new item owned by the acting user.
func (handler *Handler) CreateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	req := dto.CreateItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateItem applies a partial update to an item.
func (handler *Handler) UpdateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	itemID := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, userID, itemID, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetItemByID returns an item with its booking boundaries and comments.
// No identity is required.
func (handler *Handler) GetItemByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	itemID := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, itemID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetUserItems lists the acting user's items with annotations.
func (handler *Handler) GetUserItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserItems")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAllByOwner(ctx, userID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SearchItems looks up available items by name or description substring.
// No identity is required.
func (handler *Handler) SearchItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchItems")
	defer scope.End()

	text := request.URL.Query().Get(constant.RequestParamText)

	res, err := handler.service.Search(ctx, text)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateComment leaves a comment on an item the acting user has booked before.
func (handler *Handler) CreateComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateComment")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	itemID := chi.URLParam(request, constant.RequestParamID)

	req := dto.CreateCommentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateComment(ctx, userID, itemID, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
