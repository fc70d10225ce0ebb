package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// NetHTTPAdapter is the standard HTTP adapter implementation using net/http package.
type NetHTTPAdapter struct {
	client *http.Client
}

// Ensure NetHTTPAdapter implements HTTPAdapter interface
var _ HTTPAdapter = (*NetHTTPAdapter)(nil)

// NewNetHTTPAdapter creates a new NetHTTPAdapter instance.
func NewNetHTTPAdapter() HTTPAdapter {
	return NewNetHTTPAdapterWithClient(&http.Client{})
}

// NewNetHTTPAdapterWithClient creates a NetHTTPAdapter that sends through client.
func NewNetHTTPAdapterWithClient(client *http.Client) HTTPAdapter {
	return &NetHTTPAdapter{client: client}
}

// Send posts the request to the specified endpoint with the given headers.
func (h *NetHTTPAdapter) Send(ctx context.Context, endpoint string, request *EventRequest, headers map[string]string) (*HTTPResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "marshal event request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	result := &HTTPResponse{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}

	// bodies that do not decode are left out, the status is what matters
	if result.OK {
		var data EventResponse
		if json.Unmarshal(body, &data) == nil {
			result.Data = &data
		}
	} else {
		var graphErr GraphError
		if json.Unmarshal(body, &graphErr) == nil && graphErr.Error.Message != "" {
			result.Error = &graphErr
		}
	}

	return result, nil
}
