package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	reservationserrors "roombook/internal/reservations/errors"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mockReservationService struct {
	bookFunc      func(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error)
	availableFunc func(ctx context.Context, start, end time.Time) ([]*model.Room, error)
	cancelFunc    func(ctx context.Context, bookingID string) (bool, error)
}

func (m *mockReservationService) BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	b, err := m.Book(ctx, roomID, start, end)
	return b != nil, err
}

func (m *mockReservationService) Book(ctx context.Context, roomID string, start, end time.Time) (*model.Booking, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, roomID, start, end)
	}
	return nil, nil
}

func (m *mockReservationService) GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	if m.availableFunc != nil {
		return m.availableFunc(ctx, start, end)
	}
	return []*model.Room{}, nil
}

func (m *mockReservationService) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, bookingID)
	}
	return false, nil
}

type mockRoomService struct {
	createFunc  func(ctx context.Context, room *model.Room) error
	getByIDFunc func(ctx context.Context, id string) (*model.Room, error)
	listFunc    func(ctx context.Context) ([]*model.Room, error)
}

func (m *mockRoomService) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	return nil
}

func (m *mockRoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Room", id)
}

func (m *mockRoomService) List(ctx context.Context) ([]*model.Room, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomService) Seed(ctx context.Context, rooms []config.SeedRoom) error {
	return nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return m.err
}

var start = time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

func newRouter(reservations *mockReservationService, rooms *mockRoomService) *httprouter.Router {
	log := logger.Discard()
	router := httprouter.New()
	NewBookingHandler(reservations, log).RegisterRoutes(router)
	NewRoomHandler(rooms, reservations, log).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestBookingHandler_Create(t *testing.T) {
	body := `{"room_id":"101","start_time":"2030-06-01T09:00:00Z","end_time":"2030-06-01T10:00:00Z"}`

	tests := []struct {
		name       string
		body       string
		book       func(ctx context.Context, roomID string, s, e time.Time) (*model.Booking, error)
		wantStatus int
		wantCode   string
	}{
		{
			name: "created",
			body: body,
			book: func(ctx context.Context, roomID string, s, e time.Time) (*model.Booking, error) {
				b := model.NewBooking("b-1", roomID, s, e)
				return &b, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "room taken",
			body: body,
			book: func(ctx context.Context, roomID string, s, e time.Time) (*model.Booking, error) {
				return nil, nil
			},
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
		},
		{
			name: "booking in the past",
			body: body,
			book: func(ctx context.Context, roomID string, s, e time.Time) (*model.Booking, error) {
				return nil, apperrors.TemporalViolation("booking start must not be in the past").
					WithCause(reservationserrors.ErrBookingInPast)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeTemporalViolation,
		},
		{
			name:       "malformed time",
			body:       `{"room_id":"101","start_time":"tomorrow","end_time":"2030-06-01T10:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name:       "unknown field",
			body:       `{"room":"101"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &mockReservationService{
				bookFunc: func(ctx context.Context, roomID string, s, e time.Time) (*model.Booking, error) {
					called = true
					if roomID != "101" || !s.Equal(start) || !e.Equal(start.Add(time.Hour)) {
						t.Errorf("unexpected arguments: %s %s %s", roomID, s, e)
					}
					return tt.book(ctx, roomID, s, e)
				},
			}
			rec := serve(newRouter(svc, &mockRoomService{}), http.MethodPost, "/api/v1/bookings", tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.book == nil && called {
				t.Error("service must not be called for an undecodable body")
			}
			if tt.wantCode != "" {
				if resp := decodeError(t, rec); resp.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
				}
				return
			}

			var resp struct {
				Data model.Booking `json:"data"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Data.ID != "b-1" || resp.Data.RoomID != "101" {
				t.Errorf("unexpected booking %+v", resp.Data)
			}
		})
	}
}

func TestBookingHandler_Cancel(t *testing.T) {
	tests := []struct {
		name       string
		cancel     func(ctx context.Context, id string) (bool, error)
		wantStatus int
	}{
		{
			name:       "cancelled",
			cancel:     func(ctx context.Context, id string) (bool, error) { return true, nil },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "unknown booking",
			cancel:     func(ctx context.Context, id string) (bool, error) { return false, nil },
			wantStatus: http.StatusNotFound,
		},
		{
			name: "already started",
			cancel: func(ctx context.Context, id string) (bool, error) {
				return false, apperrors.BookingStarted("booking has already started")
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "store failure",
			cancel: func(ctx context.Context, id string) (bool, error) {
				return false, errors.New("connection reset")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			svc := &mockReservationService{
				cancelFunc: func(ctx context.Context, id string) (bool, error) {
					gotID = id
					return tt.cancel(ctx, id)
				},
			}
			rec := serve(newRouter(svc, &mockRoomService{}), http.MethodDelete, "/api/v1/bookings/id/b-42", "")

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotID != "b-42" {
				t.Errorf("service received id %q", gotID)
			}
		})
	}
}

func TestRoomHandler_Available(t *testing.T) {
	var gotStart, gotEnd time.Time
	svc := &mockReservationService{
		availableFunc: func(ctx context.Context, s, e time.Time) ([]*model.Room, error) {
			gotStart, gotEnd = s, e
			return []*model.Room{model.NewRoom("101", "Board Room")}, nil
		},
	}
	router := newRouter(svc, &mockRoomService{})

	rec := serve(router, http.MethodGet, "/api/v1/rooms/available?start_time=2030-06-01T09:00:00Z&end_time=2030-06-01T10:00:00Z", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !gotStart.Equal(start) || !gotEnd.Equal(start.Add(time.Hour)) {
		t.Errorf("service received %s..%s", gotStart, gotEnd)
	}

	var resp struct {
		Data []model.Room `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "101" {
		t.Errorf("unexpected rooms %+v", resp.Data)
	}

	rec = serve(router, http.MethodGet, "/api/v1/rooms/available?start_time=soon&end_time=2030-06-01T10:00:00Z", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed start status = %d, want 400", rec.Code)
	}
}

func TestRoomHandler_Available_MissingParamsReachService(t *testing.T) {
	svc := &mockReservationService{
		availableFunc: func(ctx context.Context, s, e time.Time) ([]*model.Room, error) {
			if !s.IsZero() {
				t.Errorf("expected zero start, got %s", s)
			}
			return nil, apperrors.InvalidInput("start and end are required")
		},
	}
	rec := serve(newRouter(svc, &mockRoomService{}), http.MethodGet, "/api/v1/rooms/available?end_time=2030-06-01T10:00:00Z", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRoomHandler_Create(t *testing.T) {
	var created *model.Room
	rooms := &mockRoomService{
		createFunc: func(ctx context.Context, room *model.Room) error {
			if room.ID == "dup" {
				return apperrors.Conflict("room already exists")
			}
			created = room
			return nil
		},
	}
	router := newRouter(&mockReservationService{}, rooms)

	rec := serve(router, http.MethodPost, "/api/v1/rooms", `{"id":"101","name":"Board Room"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Name != "Board Room" || created.Bookings == nil {
		t.Errorf("unexpected room passed to service: %+v", created)
	}

	rec = serve(router, http.MethodPost, "/api/v1/rooms", `{"id":"dup","name":"Board Room"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	rec = serve(router, http.MethodPost, "/api/v1/rooms", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", rec.Code)
	}
}

func TestRoomHandler_GetAndList(t *testing.T) {
	rooms := &mockRoomService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			if id == "101" {
				return model.NewRoom("101", "Board Room"), nil
			}
			return nil, apperrors.NotFoundWithID("Room", id)
		},
		listFunc: func(ctx context.Context) ([]*model.Room, error) {
			return []*model.Room{model.NewRoom("101", "Board Room"), model.NewRoom("102", "Studio")}, nil
		},
	}
	router := newRouter(&mockReservationService{}, rooms)

	if rec := serve(router, http.MethodGet, "/api/v1/rooms/id/101", ""); rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/api/v1/rooms/id/999", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing room status = %d, want 404", rec.Code)
	}

	rec := serve(router, http.MethodGet, "/api/v1/rooms", "")
	var resp struct {
		Data []model.Room `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 rooms, got %d", len(resp.Data))
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantDB     string
	}{
		{"memory store", nil, http.StatusOK, "memory"},
		{"database up", &mockPinger{}, http.StatusOK, "ok"},
		{"database down", &mockPinger{err: errors.New("no reachable servers")}, http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(tt.db, logger.Discard()).RegisterRoutes(router)

			if rec := serve(router, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
				t.Errorf("health status = %d", rec.Code)
			}

			rec := serve(router, http.MethodGet, "/ready", "")
			if rec.Code != tt.wantStatus {
				t.Errorf("ready status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Database != tt.wantDB {
				t.Errorf("database = %q, want %q", resp.Database, tt.wantDB)
			}
		})
	}
}
