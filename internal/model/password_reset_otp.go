package model

import "time"

// PasswordResetOtp is a one-time numeric code gating a password reset.
// Expiry is evaluated lazily at verification time; expired rows persist
// until the next issue or cleanup pass.
type PasswordResetOtp struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"type:varchar(255);index;not null"`
	OTP       string    `json:"-" gorm:"type:varchar(6);not null"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	Attempts  int       `json:"attempts" gorm:"not null;default:0"`
}

// IsExpired reports whether the code's lifetime has elapsed
func (o *PasswordResetOtp) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// IsUsable reports whether the code can still gate a reset
func (o *PasswordResetOtp) IsUsable(maxAttempts int) bool {
	return !o.Used && !o.IsExpired() && o.Attempts < maxAttempts
}
