package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы со StaffService (каталог барберов и услуг)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetShop получает барбершоп по ID (включая список барберов и менеджеров)
func (c *Client) GetShop(ctx context.Context, shopID int64) (*Shop, error) {
	url := fmt.Sprintf("%s/internal/shops/%d", c.baseURL, shopID)

	var shop Shop
	if err := c.getJSON(ctx, url, &shop, ErrShopNotFound); err != nil {
		return nil, err
	}

	return &shop, nil
}

// GetBarber получает барбера по ID вместе с его рабочим расписанием
func (c *Client) GetBarber(ctx context.Context, shopID, barberID int64) (*Barber, error) {
	url := fmt.Sprintf("%s/internal/shops/%d/barbers/%d", c.baseURL, shopID, barberID)

	var barber Barber
	if err := c.getJSON(ctx, url, &barber, ErrBarberNotFound); err != nil {
		return nil, err
	}

	return &barber, nil
}

// GetService получает услугу по ID (длительность, цена, список барберов)
func (c *Client) GetService(ctx context.Context, shopID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/shops/%d/services/%d", c.baseURL, shopID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// getJSON выполняет GET запрос и декодирует ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// ScheduleForWeekday возвращает расписание барбера на указанный день недели
func (s *WeekSchedule) ScheduleForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}
