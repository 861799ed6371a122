package booking

import (
	"context"
	"net/http"

	"shareit/infras/otel"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/shared/validator"
	"shareit/transport/http/middleware"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookingsByBooker)
		routerGroup.Get("/owner", handler.GetBookingsByOwner)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.ApproveBooking)
	})
}

// CreateBooking places a new booking on an item, starting out WAITING.
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	req := dto.CreateBookingRequest{}

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

// ApproveBooking lets the item owner decide a waiting booking.
func (handler *Handler) ApproveBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	bookingID := chi.URLParam(request, constant.RequestParamID)

	approved := shared.ConvertStringToBool(request.URL.Query().Get(constant.RequestParamApproved))
	if approved == nil {
		err := failure.BadRequestFromString("approved query parameter must be true or false")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Approve(ctx, userID, bookingID, *approved)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID returns a booking to its booker or the item owner.
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	bookingID := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, userID, bookingID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingsByBooker lists the acting user's bookings filtered by state.
func (handler *Handler) GetBookingsByBooker(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByBooker")
	defer scope.End()

	handler.getBookings(ctx, writer, request, handler.service.GetAllByBooker, scope)
}

// GetBookingsByOwner lists bookings on the acting user's items filtered by state.
func (handler *Handler) GetBookingsByOwner(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByOwner")
	defer scope.End()

	handler.getBookings(ctx, writer, request, handler.service.GetAllByOwner, scope)
}

func (handler *Handler) getBookings(
	ctx context.Context,
	writer http.ResponseWriter,
	request *http.Request,
	list func(ctx context.Context, userID string, state model.State) ([]dto.BookingResponse, error),
	scope otel.Scope,
) {
	userID, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	stateParam := request.URL.Query().Get(constant.RequestParamState)
	if stateParam == constant.Empty {
		stateParam = string(model.StateAll)
	}

	state, err := model.ParseState(stateParam)
	if err != nil {
		err = failure.BadRequestFromString(err.Error())
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := list(ctx, userID, state)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
