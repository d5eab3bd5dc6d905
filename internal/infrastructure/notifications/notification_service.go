package notifications

import (
	"fmt"

	"github.com/go-gomail/gomail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/you/medbooksvc/domain"
)

// NotificationServiceImpl implements domain.NotificationService. Email goes
// out over SMTP; SMS over Twilio. Both transports are constructed once at
// process start and shared by all requests.
type NotificationServiceImpl struct {
	dialer     *gomail.Dialer
	from       string
	smtpHost   string
	sms        *twilio.RestClient
	fromNumber string
}

// SMTPSettings holds mail transport configuration
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// TwilioSettings holds SMS transport configuration
type TwilioSettings struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NewNotificationService creates a new notification service
func NewNotificationService(smtp SMTPSettings, tw TwilioSettings) domain.NotificationService {
	var dialer *gomail.Dialer
	if smtp.Host != "" {
		dialer = gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	}

	var sms *twilio.RestClient
	if tw.AccountSID != "" {
		sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: tw.AccountSID,
			Password: tw.AuthToken,
		})
	}

	return &NotificationServiceImpl{
		dialer:     dialer,
		from:       smtp.From,
		smtpHost:   smtp.Host,
		sms:        sms,
		fromNumber: tw.FromNumber,
	}
}

// SendEmail implements domain.NotificationService
func (n *NotificationServiceImpl) SendEmail(to, subject, body string) error {
	// If the SMTP transport is not configured, log instead of sending
	if n.dialer == nil {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s\n", to, subject, body)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendSMS implements domain.NotificationService
func (n *NotificationServiceImpl) SendSMS(to, message string) error {
	// If credentials are not configured, log instead of sending
	if n.sms == nil || n.fromNumber == "" {
		fmt.Printf("[MOCK SMS] To: %s, Message: %s\n", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.fromNumber)
	params.SetBody(message)

	_, err := n.sms.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
