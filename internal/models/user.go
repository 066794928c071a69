package models

import (
	"fmt"
	"time"
)

// LoginIDPrefix prefixes every generated login identifier.
const LoginIDPrefix = "VLAT"

// User is a registered exam candidate. Rows are created by registration and
// never updated or deleted.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	LoginID   string    `gorm:"column:login_id;size:50;uniqueIndex;not null" json:"login_id"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone     *string   `gorm:"size:20" json:"phone"`
	// the column default also stamps rows inserted outside the service
	CreatedAt time.Time `gorm:"type:timestamp DEFAULT CURRENT_TIMESTAMP;autoCreateTime" json:"created_at"`
}

// FormatLoginID renders the public identifier for sequence number n. Numbers
// above 999 widen the numeric part instead of truncating it.
func FormatLoginID(n uint) string {
	return fmt.Sprintf("%s%03d", LoginIDPrefix, n)
}
