package model

import (
	"time"
)

// OTPPurpose scopes a code to one workflow so codes cannot cross flows.
type OTPPurpose string

const (
	PurposeAdminPasswordReset OTPPurpose = "admin_password_reset"
)

// OTP is a one-time verification code. IsUsed transitions false to true
// exactly once; the reset flow verifies an unused code first, then requires
// the used record again when the new password is submitted.
type OTP struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	Code      string     `gorm:"size:12;not null" json:"-"`
	Purpose   OTPPurpose `gorm:"type:varchar(40);not null;index" json:"purpose"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	IsUsed    bool       `gorm:"default:false" json:"is_used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (OTP) TableName() string {
	return "otps"
}

// IsExpired reports whether the code's validity window has passed.
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}
