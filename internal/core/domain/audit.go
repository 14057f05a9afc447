package domain

import "time"

// Audit actions recorded by the security trail.
const (
	AuditSignup          = "signup"
	AuditLogin           = "login"
	AuditLogout          = "logout"
	AuditPasswordChange  = "password_change"
	AuditTwoFactorSetup  = "2fa_setup"
	AuditTwoFactorEnable = "2fa_enable"
	AuditTwoFactorOff    = "2fa_disable"
	AuditUserUpdate      = "user_update"
	AuditUserDelete      = "user_delete"
)

// AuditEntry is one record in the security audit trail.
type AuditEntry struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
