package twilio

import (
	"context"
	"errors"
	"fmt"

	"callbridge/internal/config"
	"callbridge/internal/observability"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrCallRejected = errors.New("twilio rejected the call")

// CallCreator is the part of the Twilio REST API used to start calls.
type CallCreator interface {
	CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error)
}

type Client struct {
	calls  CallCreator
	from   string
	logger *observability.Logger
}

func NewClient(cfg config.TwilioConfig, logger *observability.Logger) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return NewClientWithCreator(rest.Api, cfg.PhoneNumber, logger)
}

func NewClientWithCreator(calls CallCreator, from string, logger *observability.Logger) *Client {
	return &Client{calls: calls, from: from, logger: logger}
}

// PlaceCall dials to from the configured number and runs twiml once answered.
// It returns the call sid.
func (c *Client) PlaceCall(ctx context.Context, to, twiml string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "to", Value: to})

	params := &openapi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetTwiml(twiml)

	call, err := c.calls.CreateCall(params)
	if err != nil {
		c.logger.Error(ctx, "failed to create call", err)
		return "", fmt.Errorf("%w: %w", ErrCallRejected, err)
	}
	if call == nil || call.Sid == nil {
		return "", fmt.Errorf("%w: response without call sid", ErrCallRejected)
	}

	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: *call.Sid}), "Outbound call created")
	return *call.Sid, nil
}
