package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"loomdesk/models"
	"loomdesk/utils"
)

const (
	requestTimeout = 15 * time.Second
	fetchAttempts  = 3
	maxBodyBytes   = 10 * 1024 * 1024 // 10MB
)

// Client fetches worker tasks from the remote assignment service. The
// provider returns the entire current collection on each call; no pagination
// is requested.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a task provider client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// ListTasks fetches all tasks, retrying transient failures with backoff.
func (c *Client) ListTasks(ctx context.Context) ([]models.TaskRecord, error) {
	var records []models.TaskRecord
	err := retry.Do(
		func() error {
			recs, err := c.fetch(ctx)
			if err != nil {
				return err
			}
			records = recs
			return nil
		},
		retry.Attempts(fetchAttempts),
		retry.Context(ctx),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context) ([]models.TaskRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, utils.JoinURL(c.baseURL, "/tasks"), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tasks API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var records []models.TaskRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return records, nil
}
