package handler

import (
	"net/http"
	"roombook/internal/reservations/service"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomHandler struct {
	rooms        service.RoomService
	reservations service.ReservationService
	log          *logger.Logger
}

func NewRoomHandler(rooms service.RoomService, reservations service.ReservationService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:        rooms,
		reservations: reservations,
		log:          log,
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req RoomRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeError(h.log, w, "CreateRoom", err)
		return
	}

	room := model.NewRoom(req.ID, req.Name)
	if err := h.rooms.Create(r.Context(), room); err != nil {
		writeError(h.log, w, "CreateRoom", err)
		return
	}

	writeCreated(h.log, w, "CreateRoom", room)
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.rooms.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(h.log, w, "GetRoom", err)
		return
	}

	writeSuccess(h.log, w, "GetRoom", room)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.rooms.List(r.Context())
	if err != nil {
		writeError(h.log, w, "ListRooms", err)
		return
	}

	writeSuccess(h.log, w, "ListRooms", rooms)
}

// Available lists rooms free for [start_time, end_time).
func (h *RoomHandler) Available(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start, err := httputil.ParseTimeParam(r, "start_time")
	if err != nil {
		writeError(h.log, w, "Available", err)
		return
	}
	end, err := httputil.ParseTimeParam(r, "end_time")
	if err != nil {
		writeError(h.log, w, "Available", err)
		return
	}

	rooms, err := h.reservations.GetAvailableRooms(r.Context(), start, end)
	if err != nil {
		writeError(h.log, w, "Available", err)
		return
	}

	writeSuccess(h.log, w, "Available", rooms)
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rooms", h.Create)
	router.GET("/api/v1/rooms", h.List)
	router.GET("/api/v1/rooms/available", h.Available)
	router.GET("/api/v1/rooms/id/:id", h.GetByID)
}
