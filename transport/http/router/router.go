package router

import (
	"shareit/internal/handlers/booking"
	"shareit/internal/handlers/item"
	"shareit/internal/handlers/request"
	"shareit/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	User    user.Handler
	Item    item.Handler
	Booking booking.Handler
	Request request.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.User.Router(router)
	r.DomainHandlers.Item.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Request.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
