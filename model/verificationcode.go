package model

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationInvalid  VerificationStatus = "INVALID"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationComplete VerificationStatus = "COMPLETE"
)

// VerificationCode is a one-time code sent to an email address or a phone number.
// Only the most recent code of an identifier is PENDING, older ones are INVALID.
type VerificationCode struct {
	VerificationCodeID string             `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Identifier         string             `gorm:"column:identifier;type:text;not null;index" json:"identifier"`
	Code               string             `gorm:"column:code;type:text;not null" json:"-"`
	Status             VerificationStatus `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt          time.Time          `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time          `gorm:"column:updated_at" json:"updatedAt"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}
