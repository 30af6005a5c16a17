package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"time"
)

// ReservationClient is a typed client for the reservations HTTP API.
type ReservationClient struct {
	http *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{http: NewHttpClient(baseURL)}
}

type bookingRequest struct {
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type roomRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *ReservationClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.http.WaitForHealthy(ctx, maxWait)
}

// Book reserves roomID for [start, end). A nil booking with a nil error means
// the room was taken. A non-empty idempotencyKey makes retries safe.
func (c *ReservationClient) Book(ctx context.Context, roomID string, start, end time.Time, idempotencyKey string) (*model.Booking, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	resp, err := c.http.POSTWithHeaders(ctx, "/api/v1/bookings", bookingRequest{
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
	}, headers)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		var out envelope[model.Booking]
		if err := resp.DecodeJSON(&out); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		return &out.Data, nil
	case http.StatusConflict:
		appErr := responseError(resp)
		if appErr.Code == apperrors.CodeConflict && appErr.Message == roomUnavailable {
			return nil, nil
		}
		return nil, appErr
	default:
		return nil, responseError(resp)
	}
}

const roomUnavailable = "room is not available for the requested interval"

// CancelBooking reports false when the booking does not exist.
func (c *ReservationClient) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	resp, err := c.http.DELETE(ctx, "/api/v1/bookings/id/"+url.PathEscape(bookingID))
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, responseError(resp)
	}
}

func (c *ReservationClient) AvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	query := url.Values{}
	query.Set("start_time", start.Format(time.RFC3339))
	query.Set("end_time", end.Format(time.RFC3339))

	return c.getRooms(ctx, "/api/v1/rooms/available?"+query.Encode())
}

func (c *ReservationClient) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return c.getRooms(ctx, "/api/v1/rooms")
}

func (c *ReservationClient) CreateRoom(ctx context.Context, id, name string) (*model.Room, error) {
	resp, err := c.http.POST(ctx, "/api/v1/rooms", roomRequest{ID: id, Name: name})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, responseError(resp)
	}

	var out envelope[*model.Room]
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, fmt.Errorf("failed to decode room: %w", err)
	}
	return out.Data, nil
}

func (c *ReservationClient) getRooms(ctx context.Context, path string) ([]*model.Room, error) {
	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var out envelope[[]*model.Room]
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return out.Data, nil
}

// responseError rebuilds the server's AppError so callers can match on codes
// with apperrors.HasCode.
func responseError(resp *Response) *apperrors.AppError {
	var body struct {
		Error   string         `json:"error"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := resp.DecodeJSON(&body); err != nil || body.Code == "" {
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unexpected status %d", resp.StatusCode), resp.StatusCode)
	}

	appErr := apperrors.New(body.Code, body.Error, resp.StatusCode)
	if len(body.Details) > 0 {
		appErr = appErr.WithDetails(body.Details)
	}
	return appErr
}
