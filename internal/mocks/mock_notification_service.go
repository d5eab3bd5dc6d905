package mocks

import (
	"sync"

	"github.com/you/medbooksvc/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
// Sent messages are recorded so tests can assert on delivery without a real
// transport; recording is mutex-guarded because services send in goroutines.
type MockNotificationService struct {
	SendEmailFunc func(to, subject, body string) error
	SendSMSFunc   func(to, message string) error

	mu         sync.Mutex
	SentEmails []SentEmail
	SentSMS    []SentSMS
}

// SentEmail records one SendEmail call
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// SentSMS records one SendSMS call
type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendEmail records and optionally delegates an email send
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: body})
	m.mu.Unlock()

	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// SendSMS records and optionally delegates an SMS send
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.mu.Lock()
	m.SentSMS = append(m.SentSMS, SentSMS{To: to, Message: message})
	m.mu.Unlock()

	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

// EmailCount returns the number of emails sent so far
func (m *MockNotificationService) EmailCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentEmails)
}

// LastEmail returns the most recently sent email, or nil
func (m *MockNotificationService) LastEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentEmails) == 0 {
		return nil
	}
	email := m.SentEmails[len(m.SentEmails)-1]
	return &email
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
