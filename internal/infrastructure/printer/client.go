package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/config"
)

// Client sends completed weighings to the printing service over its HTTP API.
// Printing is best-effort: callers fire it from a goroutine and only log
// failures, a dead printer must never block the weighbridge.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.PrintingService) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s", net.JoinHostPort(cfg.Host, cfg.Port)),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type printRequest struct {
	OrderNumber string `json:"order_number"`
	Copies      int    `json:"copies"`
}

func (c *Client) PrintWeighing(ctx context.Context, orderNumber string) error {
	body, err := json.Marshal(printRequest{OrderNumber: orderNumber, Copies: 1})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/print/weighing", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("printing service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("printing service returned %s", resp.Status)
	}
	return nil
}
