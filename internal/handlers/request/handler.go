package request

import (
	"net/http"

	"shareit/infras/otel"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service"
	"shareit/shared/constant"
	"shareit/shared/validator"
	"shareit/transport/http/middleware"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Request
	otel    otel.Otel
}

func New(service service.Request, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRequest)
		routerGroup.Get("/", handler.GetUserRequests)
		routerGroup.Get("/all", handler.GetOtherRequests)
		routerGroup.Get("/{id}", handler.GetRequestByID)
	})
}

// CreateRequest files a new item request by the acting user.
func (handler *Handler) CreateRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRequest")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	req := dto.CreateRequestRequest{}

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

// GetUserRequests lists the acting user's own requests, newest first.
func (handler *Handler) GetUserRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserRequests")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAllByRequester(ctx, userID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOtherRequests lists everyone else's requests, newest first.
func (handler *Handler) GetOtherRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOtherRequests")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAllOthers(ctx, userID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRequestByID returns a single request with its matching items.
// No identity is required.
func (handler *Handler) GetRequestByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequestByID")
	defer scope.End()

	requestID := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, requestID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
