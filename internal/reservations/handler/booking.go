package handler

import (
	"net/http"
	"roombook/internal/reservations/service"
	apperrors "roombook/pkg/errors"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
	"time"

	"github.com/julienschmidt/httprouter"
)

const roomUnavailableMessage = "room is not available for the requested interval"

// BookingRequest is the body of POST /api/v1/bookings. Missing times decode
// to the zero value and are rejected by the service.
type BookingRequest struct {
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type BookingHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewBookingHandler(service service.ReservationService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(h.log, w, "Create", err)
		return
	}

	booking, err := h.service.Book(r.Context(), req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		writeError(h.log, w, "Create", err)
		return
	}
	if booking == nil {
		writeError(h.log, w, "Create", apperrors.Conflict(roomUnavailableMessage))
		return
	}

	writeCreated(h.log, w, "Create", booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	cancelled, err := h.service.CancelBooking(r.Context(), id)
	if err != nil {
		writeError(h.log, w, "Cancel", err)
		return
	}
	if !cancelled {
		writeError(h.log, w, "Cancel", apperrors.NotFoundWithID("Booking", id))
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.DELETE("/api/v1/bookings/id/:id", h.Cancel)
}
