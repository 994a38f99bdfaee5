package catalog

import (
	"strings"

	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SerialStatus is the lifecycle state of a tracked serial number
type SerialStatus string

const (
	SerialStatusAvailable SerialStatus = "Available"
	SerialStatusSold      SerialStatus = "Sold"
)

// SerialNumber is an individually tracked unit of a product. Serials are
// scoped to a product, not a location; a sale does not currently
// transition a serial to Sold (see DESIGN.md).
type SerialNumber struct {
	shared.BaseEntity
	ProductID         uuid.UUID    `gorm:"type:uuid;not null;index"`
	Serial            string       `gorm:"type:varchar(100);not null;column:serial_number"`
	Status            SerialStatus `gorm:"type:varchar(20);not null;default:'Available'"`
	CurrentLocationID *uuid.UUID   `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SerialNumber) TableName() string {
	return "serial_numbers"
}

// NewSerialNumber creates an available serial at a location
func NewSerialNumber(productID uuid.UUID, serial string, locationID *uuid.UUID) (*SerialNumber, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if strings.TrimSpace(serial) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Serial number cannot be empty")
	}

	return &SerialNumber{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		Serial:            serial,
		Status:            SerialStatusAvailable,
		CurrentLocationID: locationID,
	}, nil
}
