package models

import (
	"strings"
	"time"
)

// IDType is the identification document presented at check-in.
type IDType string

const (
	IDTypePassport   IDType = "PASSPORT"
	IDTypeNationalID IDType = "NATIONAL_ID"
)

// GuestInfo is what the front desk collects for a walk-in guest.
type GuestInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required,phone"`
	IDType    IDType `json:"idType" validate:"required,oneof=PASSPORT NATIONAL_ID"`
	IDNumber  string `json:"idNumber" validate:"required"`
}

// DisplayName joins first and last name.
func (g GuestInfo) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(g.FirstName) + " " + strings.TrimSpace(g.LastName))
}

// Guest is the persisted guest record of a walk-in booking.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FirstName string `gorm:"size:150" json:"firstName"`
	LastName  string `gorm:"size:150" json:"lastName"`
	Phone     string `gorm:"size:50" json:"phone"`
	IDType    IDType `gorm:"column:id_type;size:20" json:"idType"`
	IDNumber  string `gorm:"column:id_number;size:64;index" json:"idNumber"`
}

// NewGuest builds the row for a validated GuestInfo.
func NewGuest(info GuestInfo) Guest {
	return Guest{
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Phone:     info.Phone,
		IDType:    info.IDType,
		IDNumber:  info.IDNumber,
	}
}
