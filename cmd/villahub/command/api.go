package command

// api.go talks to the local API of a running agent.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/service"
)

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// do sends body as JSON and decodes a 2xx response into out
func (c *apiClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("agent not reachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed with status: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) Status() (*service.SyncStatus, error) {
	var status service.SyncStatus
	if err := c.do(http.MethodGet, "/api/v1/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *apiClient) Reconnect() (*service.SyncStatus, error) {
	var status service.SyncStatus
	if err := c.do(http.MethodPost, "/api/v1/reconnect", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *apiClient) Endpoint() (*dto.EndpointResponse, error) {
	var endpoint dto.EndpointResponse
	if err := c.do(http.MethodGet, "/api/v1/settings/endpoint", nil, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

func (c *apiClient) SetEndpoint(host string, port int) (*dto.EndpointResponse, error) {
	var endpoint dto.EndpointResponse
	req := dto.EndpointRequest{Host: host, Port: port}
	if err := c.do(http.MethodPut, "/api/v1/settings/endpoint", req, &endpoint); err != nil {
		return nil, err
	}
	return &endpoint, nil
}

// Events opens the server-sent event stream. The caller closes the body.
func (c *apiClient) Events() (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/v1/events", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// the stream is long-lived, so no client timeout
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent not reachable at %s: %w", c.baseURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("event stream failed with status: %s", resp.Status)
	}
	return resp.Body, nil
}
