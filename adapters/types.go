package adapters

import "encoding/json"

// ActionSource classifies where a conversion happened.
type ActionSource string

const (
	ActionSourceWebsite ActionSource = "website"
)

// UserData identifies the customer an event belongs to.
// Emails and phones are kept raw and hashed on serialization.
type UserData struct {
	Emails          []string `json:"em,omitempty"`
	Phones          []string `json:"ph,omitempty"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
	ClickID         string   `json:"fbc,omitempty"`
	BrowserID       string   `json:"fbp,omitempty"`
}

// MarshalJSON emits the platform representation with normalized, hashed PII.
func (u UserData) MarshalJSON() ([]byte, error) {
	type wire UserData
	out := wire(u)
	out.Emails = HashAll(u.Emails, NormalizeEmail)
	out.Phones = HashAll(u.Phones, NormalizePhone)
	return json.Marshal(out)
}

// Content is a single product line attached to an event.
type Content struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CustomData carries the commerce part of an event.
type CustomData struct {
	Contents []Content `json:"contents,omitempty"`
	Currency string    `json:"currency,omitempty"`
	Value    *float64  `json:"value,omitempty"`
}

// ServerEvent is one conversion event as accepted by the events endpoint.
type ServerEvent struct {
	EventName      string       `json:"event_name"`
	EventTime      int64        `json:"event_time"`
	EventID        string       `json:"event_id,omitempty"`
	UserData       UserData     `json:"user_data"`
	CustomData     CustomData   `json:"custom_data"`
	EventSourceURL string       `json:"event_source_url"`
	ActionSource   ActionSource `json:"action_source"`
}

// EventRequest is the body posted to the events endpoint.
type EventRequest struct {
	Data          []ServerEvent `json:"data"`
	TestEventCode string        `json:"test_event_code,omitempty"`
}

// EventResponse is the body returned for an accepted request.
type EventResponse struct {
	EventsReceived int      `json:"events_received"`
	Messages       []string `json:"messages"`
	FBTraceID      string   `json:"fbtrace_id"`
}

// GraphError is the error envelope the Graph API returns on failure.
type GraphError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}
