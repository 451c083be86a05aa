package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoAction = errors.New("capture form has no action")
	ErrRejected = errors.New("capture submission rejected")
)

// Client posts capture forms to the shop.
type Client struct {
	http *http.Client
	log  *zap.Logger
}

func NewClient(httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: httpClient, log: log}
}

// Submit POSTs form, URL-encoded, to action. Any non-2xx answer is
// ErrRejected.
func (c *Client) Submit(ctx context.Context, action string, form url.Values) error {
	if strings.TrimSpace(action) == "" {
		return ErrNoAction
	}

	id := uuid.New()
	log := c.log.With(zap.Stringer("submission_id", id), zap.String("action", action))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, action, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("capture submission failed", zap.Error(err))
		return fmt.Errorf("posting capture form: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("capture submission rejected", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	}

	log.Info("capture submitted", zap.Int("status", resp.StatusCode))
	return nil
}
