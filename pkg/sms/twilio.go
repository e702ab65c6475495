package sms

import (
	"fmt"

	"shop-mkononi/pkg/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Sender dispatches a text message to a phone number
type Sender interface {
	Send(to, body string) error
}

type twilioSender struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

// logSender logs the message instead of dispatching it. Used when Twilio
// credentials are not configured so development flows still work.
type logSender struct {
	log *zap.Logger
}

// NewSender returns a Twilio-backed sender, or a log-only sender when the
// account is not configured.
func NewSender(config utils.TwilioConfig, log *zap.Logger) Sender {
	if config.AccountSID == "" || config.AuthToken == "" || config.FromNumber == "" {
		log.Warn("Twilio not configured, SMS messages will be logged instead")
		return &logSender{log: log.With(zap.String("component", "sms"))}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AccountSID,
		Password: config.AuthToken,
	})

	return &twilioSender{
		client: client,
		from:   config.FromNumber,
		log:    log.With(zap.String("component", "sms")),
	}
}

func (s *twilioSender) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		s.log.Error("Failed to send SMS",
			zap.Error(err),
			zap.String("to", to),
		)
		return fmt.Errorf("send SMS to %s: %w", to, err)
	}

	return nil
}

func (s *logSender) Send(to, body string) error {
	s.log.Info("SMS (log only)",
		zap.String("to", to),
		zap.String("body", body),
	)
	return nil
}
