package conversions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Tap30/conversions-go/adapters"
)

// EventClient sends conversion events for a single user to one pixel.
//
// Identity is fixed at construction. Line items accumulate through
// AddLineItem and are consumed by the next SendEvent. Sends are
// fire-and-forget: their outcome is never reported to the caller.
type EventClient struct {
	config        ClientConfig
	endpoint      string
	headers       map[string]string
	userData      UserData
	lineItems     *LineItems
	httpAdapter   HTTPAdapter
	loggerAdapter LoggerAdapter
	inflight      sync.WaitGroup
	now           func() time.Time
}

// NewEventClient builds the client and its identity. It performs no validation.
func NewEventClient(config ClientConfig) *EventClient {
	if config.GraphAPIBaseURL == "" {
		config.GraphAPIBaseURL = DefaultGraphAPIBaseURL
	}
	if config.APIVersion == "" {
		config.APIVersion = DefaultAPIVersion
	}

	client := &EventClient{
		config:   config,
		endpoint: fmt.Sprintf("%s/%s/%s/events", strings.TrimRight(config.GraphAPIBaseURL, "/"), config.APIVersion, config.PixelID),
		headers: map[string]string{
			"Authorization": "Bearer " + config.AccessToken,
		},
		userData: UserData{
			Emails:          cloneStrings(config.Emails),
			Phones:          cloneStrings(config.Phones),
			ClientIPAddress: config.ClientIPAddress,
			ClientUserAgent: config.ClientUserAgent,
			ClickID:         config.ClickID,
			BrowserID:       config.BrowserID,
		},
		lineItems: NewLineItems(),
		now:       time.Now,
	}

	// Use provided adapters or defaults
	if config.HTTPAdapter != nil {
		client.httpAdapter = config.HTTPAdapter
	} else {
		client.httpAdapter = adapters.NewNetHTTPAdapter()
	}

	if config.LoggerAdapter != nil {
		client.loggerAdapter = config.LoggerAdapter
	} else {
		client.loggerAdapter = adapters.NewLogrusLoggerAdapter(adapters.LogLevelInfo)
	}

	if config.Debug {
		client.loggerAdapter.Info("User data: %s", dump(client.userData))
	}

	return client
}

// UserData returns a copy of the identity attached to every event.
func (c *EventClient) UserData() UserData {
	u := c.userData
	u.Emails = cloneStrings(u.Emails)
	u.Phones = cloneStrings(u.Phones)
	return u
}

// LineItems returns the pending line items in the order they were added.
func (c *EventClient) LineItems() []LineItem {
	return c.lineItems.ToSlice()
}

// AddLineItem appends a product to the pending line items.
func (c *EventClient) AddLineItem(productID string, quantity int) {
	c.lineItems.Append(LineItem{ID: productID, Quantity: quantity})

	if c.config.Debug {
		c.loggerAdapter.Info("Line items: %s", dump(c.lineItems.ToSlice()))
	}
}

// SendEvent builds one event from the pending line items and submits it in
// the background. The pending line items are cleared whether or not the
// submission succeeds. purchase and event may be nil; an empty
// testEventCode routes the event to production.
func (c *EventClient) SendEvent(eventName, sourceURL string, purchase *PurchaseData, event *EventData, testEventCode string) {
	request := &EventRequest{
		Data: []ServerEvent{c.buildEvent(eventName, sourceURL, c.lineItems.Drain(), purchase, event)},
	}

	if testEventCode != "" {
		request.TestEventCode = testEventCode
		c.loggerAdapter.Info("Using test event code: %s", testEventCode)
	}

	c.inflight.Go(func() {
		// fire-and-forget, the outcome is discarded
		_, _ = c.execute(context.Background(), request)
	})

	if c.config.Debug {
		c.loggerAdapter.Info("Event request: %s", dump(request))
	}
}

// Dispose blocks until every submission started by SendEvent has finished.
// It does not report whether they were delivered.
func (c *EventClient) Dispose() {
	c.inflight.Wait()
}

func (c *EventClient) buildEvent(eventName, sourceURL string, items []LineItem, purchase *PurchaseData, event *EventData) ServerEvent {
	custom := CustomData{Contents: items}
	if purchase != nil {
		custom.Currency = purchase.Currency
		custom.Value = purchase.Value
	}

	serverEvent := ServerEvent{
		EventName:      eventName,
		EventTime:      c.now().Unix(),
		UserData:       c.userData,
		CustomData:     custom,
		EventSourceURL: sourceURL,
		ActionSource:   adapters.ActionSourceWebsite,
	}
	if event != nil {
		serverEvent.EventID = event.EventID
	}
	return serverEvent
}

func (c *EventClient) execute(ctx context.Context, request *EventRequest) (*EventResponse, error) {
	resp, err := c.httpAdapter.Send(ctx, c.endpoint, request, c.headers)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		httpErr := &HTTPError{Status: resp.Status}
		if resp.Error != nil {
			httpErr.Message = resp.Error.Error.Message
		}
		return nil, httpErr
	}
	return resp.Data, nil
}

func dump(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
