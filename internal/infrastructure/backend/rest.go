package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vitos/ig_account_mirror/internal/domain"
)

// RestClient talks to the remote trading backend's request/response
// endpoints. Every response uses the envelope {success, data?, error?};
// success:false and a transport failure are reported identically, as an
// error to the caller. No call is retried here: retry policy belongs to
// callers.
type RestClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRestClient(baseURL, apiKey string) *RestClient {
	return &RestClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (c *RestClient) call(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", path)
	}
	if resp.StatusCode >= 400 {
		return errors.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrapf(err, "decode %s envelope", path)
	}
	if !env.Success {
		if env.Error == "" {
			env.Error = "unknown backend error"
		}
		return errors.Errorf("%s %s: %s", method, path, env.Error)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "decode %s payload", path)
		}
	}
	return nil
}

// --- Snapshot reads ---

func (c *RestClient) GetAccount(ctx context.Context) (*domain.AccountSnapshot, error) {
	var acc domain.AccountSnapshot
	if err := c.call(ctx, http.MethodGet, "/api/account", &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *RestClient) GetPositions(ctx context.Context) ([]*domain.Position, error) {
	var positions []*domain.Position
	if err := c.call(ctx, http.MethodGet, "/api/positions", &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func (c *RestClient) GetOrders(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := c.call(ctx, http.MethodGet, "/api/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// --- Commands ---

// RefreshPositions makes the remote system re-pull from the venue before
// the next snapshot read.
func (c *RestClient) RefreshPositions(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/positions/refresh", nil)
}

func (c *RestClient) ClosePosition(ctx context.Context, dealID string) error {
	return c.call(ctx, http.MethodPost, "/api/positions/"+dealID+"/close", nil)
}

func (c *RestClient) CancelOrder(ctx context.Context, dealID string) error {
	return c.call(ctx, http.MethodPost, "/api/orders/"+dealID+"/cancel", nil)
}

// ForceReconnect asks the remote system to re-establish its own venue
// connection; it does not touch the local push channel.
func (c *RestClient) ForceReconnect(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/connection/reconnect", nil)
}

func (c *RestClient) GetDiagnostics(ctx context.Context) (*domain.Diagnostics, error) {
	var diag domain.Diagnostics
	if err := c.call(ctx, http.MethodGet, "/api/connection/diagnostics", &diag); err != nil {
		return nil, err
	}
	return &diag, nil
}
