package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table. The
// composite primary key (user_id, address_id) is the record identity; the
// two composite indexes back the suburb- and postcode-oriented secondary
// orderings.
//
// Timestamps are engine-controlled, so GORM's automatic tracking is
// disabled on both columns.
type AddressModel struct {
	UserID        string    `gorm:"type:varchar(128);primaryKey;index:idx_addresses_user_suburb,priority:1;index:idx_addresses_user_postcode,priority:1"`
	AddressID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	StreetAddress string    `gorm:"type:text;not null"`
	Suburb        string    `gorm:"type:varchar(255);not null;index:idx_addresses_user_suburb,priority:2"`
	State         string    `gorm:"type:varchar(8);not null"`
	Postcode      string    `gorm:"type:varchar(4);not null;index:idx_addresses_user_postcode,priority:2"`
	Country       string    `gorm:"type:varchar(255);not null"`
	AddressType   *string   `gorm:"type:varchar(16)"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
