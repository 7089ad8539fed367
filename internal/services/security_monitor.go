package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/repository"
	"github.com/example/tavola/internal/utils"
)

// SecurityMonitor appends authentication events to the security_events log.
// It is constructed once and injected into the handlers that need it; a
// failed append is logged but never fails the request that triggered it.
type SecurityMonitor struct {
	events repository.SecurityEventRepository
	log    zerolog.Logger
}

func NewSecurityMonitor(events repository.SecurityEventRepository, log zerolog.Logger) *SecurityMonitor {
	return &SecurityMonitor{events: events, log: log}
}

// LoginSuccess records a successful admin login.
func (m *SecurityMonitor) LoginSuccess(ctx context.Context, email, ip string) {
	m.record(ctx, models.EventLoginSuccess, email, ip, "info")
}

// LoginFailed records a rejected login attempt.
func (m *SecurityMonitor) LoginFailed(ctx context.Context, email, ip string) {
	m.record(ctx, models.EventLoginFailed, email, ip, "warning")
}

// Logout records an explicit logout.
func (m *SecurityMonitor) Logout(ctx context.Context, email, ip string) {
	m.record(ctx, models.EventLogout, email, ip, "info")
}

func (m *SecurityMonitor) record(ctx context.Context, eventType, email, ip, severity string) {
	event := &models.SecurityEvent{
		EventType: eventType,
		EmailHash: utils.HashEmail(email),
		Severity:  severity,
		IPAddress: ip,
	}
	if err := m.events.Append(ctx, event); err != nil {
		m.log.Error().Err(err).Str("event", eventType).Msg("failed to record security event")
	}
}
