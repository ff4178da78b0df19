package models

import "time"

// AuditEventType names an authentication event recorded for audit.
type AuditEventType string

const (
	AuditLoginSucceeded    AuditEventType = "login.succeeded"
	AuditLoginFailed       AuditEventType = "login.failed"
	AuditLoginRateLimited  AuditEventType = "login.rate_limited"
	AuditAccountLocked     AuditEventType = "account.locked"
	AuditPasswordResetSent AuditEventType = "password_reset.requested"
	AuditPasswordReset     AuditEventType = "password_reset.completed"
	AuditEmailVerified     AuditEventType = "email.verified"
	AuditUserRegistered    AuditEventType = "user.registered"
)

// AuditEvent carries the internal detail of an authentication decision.
// Reason is never returned to clients.
type AuditEvent struct {
	Type       AuditEventType `json:"type"`
	UserID     int64          `json:"userId,omitempty"`
	Identifier string         `json:"identifier,omitempty"`
	IP         string         `json:"ip,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	At         time.Time      `json:"at"`
}
