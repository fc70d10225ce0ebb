package adapters

import "context"

// HTTPResponse represents the response from an HTTP request.
type HTTPResponse struct {
	OK     bool
	Status int
	Data   *EventResponse
	Error  *GraphError
}

// HTTPAdapter is an interface for HTTP communication.
// Implement this interface to use custom HTTP clients.
type HTTPAdapter interface {
	// Send posts an event request to the specified endpoint.
	//
	// Parameters:
	//   - ctx: Controls the lifetime of the request
	//   - endpoint: The events endpoint URL
	//   - request: The event request to post
	//   - headers: Optional custom headers to merge with defaults
	//
	// Returns HTTP response or error.
	Send(ctx context.Context, endpoint string, request *EventRequest, headers map[string]string) (*HTTPResponse, error)
}
