package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxErrorBodyBytes = 512

type BaseClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetHTTPClient swaps the underlying client, keeping the configured timeout
func (c *BaseClient) SetHTTPClient(client *http.Client) {
	timeout := c.client.Timeout
	c.client = client
	if c.client.Timeout == 0 {
		c.client.Timeout = timeout
	}
}

func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

// MakeRequest performs the request and returns the body of a 2xx response.
// Every failure is reported as a *NetworkError.
func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: url, Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &NetworkError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API returned status code: %d, response: %s", resp.StatusCode, string(responseBody)),
		}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return responseBody, nil
}

func (c *BaseClient) Get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodGet, endpoint, nil)
}
