package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSelectedVehicle получает выбранный автомобиль пользователя
func (c *Client) GetSelectedVehicle(ctx context.Context, userID int64) (*Vehicle, error) {
	url := fmt.Sprintf("%s/internal/users/%d/vehicles/selected", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrVehicleNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var vehicle Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&vehicle); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &vehicle, nil
}

// GetVehicle возвращает снимок автомобиля для бронирования.
// При недоступности UserService или отсутствии выбранного автомобиля возвращает fallback из запроса.
func (c *Client) GetVehicle(ctx context.Context, userID int64, fallback domain.VehicleSnapshot) domain.VehicleSnapshot {
	vehicle, err := c.GetSelectedVehicle(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			c.log.Info("GetVehicle: no selected vehicle for user=%d, using request data", userID)
		} else {
			c.log.Error("GetVehicle: UserService unavailable for user=%d, using request data: %v", userID, err)
		}
		return fallback
	}

	return vehicle.ToSnapshot(fallback)
}
