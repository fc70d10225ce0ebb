package main

import (
	"strconv"
	"strings"

	"github.com/Tap30/conversions-go"
	"github.com/Tap30/conversions-go/internal/config"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SendCmd holds the send cmd flags
type SendCmd struct {
	*GlobalFlags

	EventName       string
	SourceURL       string
	Items           []string
	Value           float64
	Currency        string
	EventID         string
	GenerateEventID bool
	TestEventCode   string

	Emails    []string
	Phones    []string
	IP        string
	UserAgent string
	ClickID   string
	BrowserID string
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &SendCmd{GlobalFlags: flags}
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Sends a single conversion event",
		Example: `  capi send --config capi.yaml --event-name Purchase --source-url https://shop/checkout \
    --item SKU1:2 --item SKU2:1 --value 42.5 --currency USD --generate-event-id`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return cmd.Run(cobraCmd)
		},
	}

	cmd.AddFlags(sendCmd.Flags())
	_ = sendCmd.MarkFlagRequired("event-name")
	_ = sendCmd.MarkFlagRequired("source-url")
	return sendCmd
}

// AddFlags registers the event and identity flags.
func (cmd *SendCmd) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cmd.EventName, "event-name", "", "Event name, e.g. Purchase or AddToCart")
	fs.StringVar(&cmd.SourceURL, "source-url", "", "Page URL the event happened on")
	fs.StringArrayVar(&cmd.Items, "item", nil, "Line item as PRODUCT_ID:QUANTITY, repeatable")
	fs.Float64Var(&cmd.Value, "value", 0, "Purchase value")
	fs.StringVar(&cmd.Currency, "currency", "", "Purchase currency, e.g. USD")
	fs.StringVar(&cmd.EventID, "event-id", "", "Event id used to deduplicate against the browser pixel")
	fs.BoolVar(&cmd.GenerateEventID, "generate-event-id", false, "Generate a random event id")
	fs.StringVar(&cmd.TestEventCode, "test-event-code", "", "Route the event to the test events tool")

	fs.StringSliceVar(&cmd.Emails, "email", nil, "User email, overrides the config file")
	fs.StringSliceVar(&cmd.Phones, "phone", nil, "User phone, overrides the config file")
	fs.StringVar(&cmd.IP, "ip", "", "Client IP address, overrides the config file")
	fs.StringVar(&cmd.UserAgent, "user-agent", "", "Client user agent, overrides the config file")
	fs.StringVar(&cmd.ClickID, "fbc", "", "Click id, overrides the config file")
	fs.StringVar(&cmd.BrowserID, "fbp", "", "Browser id, overrides the config file")
}

// Run runs the command logic
func (cmd *SendCmd) Run(cobraCmd *cobra.Command) error {
	cfg, err := config.Load(cmd.ConfigFile, cmd.EnvFile)
	if err != nil {
		return err
	}
	cmd.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	items, err := parseLineItems(cmd.Items)
	if err != nil {
		return err
	}

	client := conversions.NewEventClient(cfg.ClientConfig())
	for _, item := range items {
		client.AddLineItem(item.ID, item.Quantity)
	}

	var purchase *conversions.PurchaseData
	if cobraCmd.Flags().Changed("value") || cmd.Currency != "" {
		purchase = &conversions.PurchaseData{Currency: cmd.Currency}
		if cobraCmd.Flags().Changed("value") {
			purchase.Value = conversions.Float64(cmd.Value)
		}
	}

	eventID := cmd.EventID
	if eventID == "" && cmd.GenerateEventID {
		eventID = uuid.NewString()
	}
	var eventData *conversions.EventData
	if eventID != "" {
		eventData = &conversions.EventData{EventID: eventID}
	}

	client.SendEvent(cmd.EventName, cmd.SourceURL, purchase, eventData, cmd.TestEventCode)
	// the process would otherwise exit before the submission finishes
	client.Dispose()
	return nil
}

func (cmd *SendCmd) applyOverrides(cfg *config.Config) {
	if cmd.Debug {
		cfg.Debug = true
	}
	if len(cmd.Emails) > 0 {
		cfg.User.Emails = cmd.Emails
	}
	if len(cmd.Phones) > 0 {
		cfg.User.Phones = cmd.Phones
	}
	if cmd.IP != "" {
		cfg.User.ClientIPAddress = cmd.IP
	}
	if cmd.UserAgent != "" {
		cfg.User.ClientUserAgent = cmd.UserAgent
	}
	if cmd.ClickID != "" {
		cfg.User.ClickID = cmd.ClickID
	}
	if cmd.BrowserID != "" {
		cfg.User.BrowserID = cmd.BrowserID
	}
}

// parseLineItems parses PRODUCT_ID:QUANTITY pairs. A missing quantity means 1.
func parseLineItems(values []string) ([]conversions.LineItem, error) {
	items := make([]conversions.LineItem, 0, len(values))
	for _, value := range values {
		id, quantity := value, "1"
		if i := strings.LastIndex(value, ":"); i >= 0 {
			id, quantity = value[:i], value[i+1:]
		}
		if id == "" {
			return nil, errors.Errorf("invalid item %q: empty product id", value)
		}

		n, err := strconv.Atoi(quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid item %q", value)
		}
		items = append(items, conversions.LineItem{ID: id, Quantity: n})
	}
	return items, nil
}
