package conversions

import (
	"fmt"

	"github.com/Tap30/conversions-go/adapters"
)

// Re-export adapter types for convenience
type (
	UserData      = adapters.UserData
	LineItem      = adapters.Content
	CustomData    = adapters.CustomData
	ServerEvent   = adapters.ServerEvent
	EventRequest  = adapters.EventRequest
	EventResponse = adapters.EventResponse
	ActionSource  = adapters.ActionSource
	HTTPAdapter   = adapters.HTTPAdapter
	HTTPResponse  = adapters.HTTPResponse
	LoggerAdapter = adapters.LoggerAdapter
	LogLevel      = adapters.LogLevel
)

const (
	DefaultGraphAPIBaseURL = "https://graph.facebook.com"
	DefaultAPIVersion      = "v21.0"
)

// HTTPError is returned when the events endpoint answers with a non-2xx status.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("events request failed with status %d", e.Status)
	}
	return fmt.Sprintf("events request failed with status %d: %s", e.Status, e.Message)
}

// ClientConfig holds the credentials and identity an EventClient is built from.
// Empty optional fields are sent as absent.
type ClientConfig struct {
	AccessToken string
	PixelID     string

	Emails          []string
	Phones          []string
	ClientIPAddress string
	ClientUserAgent string
	ClickID         string // fbc
	BrowserID       string // fbp

	// Debug logs the identity, the pending line items and every outbound request.
	Debug bool

	GraphAPIBaseURL string
	APIVersion      string

	HTTPAdapter   HTTPAdapter
	LoggerAdapter LoggerAdapter
}

// PurchaseData is the optional value and currency of an event.
type PurchaseData struct {
	Value    *float64
	Currency string
}

// EventData carries the optional id used for deduplication against the browser pixel.
type EventData struct {
	EventID string
}

// Float64 returns a pointer to v, for PurchaseData.Value.
func Float64(v float64) *float64 {
	return &v
}
