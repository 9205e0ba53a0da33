package model

import "time"

// CredentialModel is the GORM-specific struct for the 'credentials' table.
// SecretHash is the SHA-256 hex digest of the client secret; the plaintext
// never reaches this layer. A NULL expires_at means the credential never
// expires.
type CredentialModel struct {
	ClientID    string     `gorm:"type:varchar(128);primaryKey"`
	SecretHash  string     `gorm:"type:char(64);not null"`
	ClientName  string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Active      bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	ExpiresAt   *time.Time `gorm:"type:timestamptz"`
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}
