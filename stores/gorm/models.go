package gorm

import (
	"time"

	ha "github.com/imsop/hybridauth"
)

// UserModel is the GORM model for users
type UserModel struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:50;not null;default:user"`
	Avatar       string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToUser() *ha.User {
	return &ha.User{
		ID:     m.ID,
		Email:  m.Email,
		Name:   m.Name,
		Role:   m.Role,
		Avatar: m.Avatar,
	}
}

// ResetTokenModel is the GORM model for password reset tokens
type ResetTokenModel struct {
	Token     string       `gorm:"primaryKey;size:64"`
	Type      ha.TokenType `gorm:"size:32;index"`
	UserID    string       `gorm:"size:64;index"`
	Email     string       `gorm:"size:255"`
	CreatedAt time.Time    `gorm:"autoCreateTime"`
	ExpiresAt time.Time    `gorm:"index"`
}

func (ResetTokenModel) TableName() string {
	return "reset_tokens"
}

func (m *ResetTokenModel) ToResetToken() *ha.ResetToken {
	return &ha.ResetToken{
		Token:     m.Token,
		Type:      m.Type,
		UserID:    m.UserID,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// ShipmentModel is the GORM model for shipments
type ShipmentModel struct {
	ID               uint   `gorm:"primaryKey"`
	TrackingNumber   string `gorm:"size:100;uniqueIndex;not null"`
	Origin           string `gorm:"size:255;not null"`
	Destination      string `gorm:"size:255;not null"`
	Status           string `gorm:"size:50;not null;default:pending"`
	EstimatedArrival *time.Time
	ActualArrival    *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

func (m *ShipmentModel) ToShipment() *ha.Shipment {
	return &ha.Shipment{
		ID:               m.ID,
		TrackingNumber:   m.TrackingNumber,
		Origin:           m.Origin,
		Destination:      m.Destination,
		Status:           m.Status,
		EstimatedArrival: m.EstimatedArrival,
		ActualArrival:    m.ActualArrival,
		CreatedAt:        m.CreatedAt,
	}
}

// OrderModel is the GORM model for orders
type OrderModel struct {
	ID          uint    `gorm:"primaryKey"`
	OrderNumber string  `gorm:"size:100;uniqueIndex;not null"`
	CustomerID  *int    `gorm:"index"`
	TotalAmount float64 `gorm:"type:decimal(10,2);not null"`
	Status      string  `gorm:"size:50;not null;default:pending"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) ToOrder() *ha.Order {
	return &ha.Order{
		ID:          m.ID,
		OrderNumber: m.OrderNumber,
		CustomerID:  m.CustomerID,
		TotalAmount: m.TotalAmount,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
}

// TelemetryModel is the GORM model for telemetry readings
type TelemetryModel struct {
	ID          uint    `gorm:"primaryKey"`
	DeviceID    string  `gorm:"size:100;index;not null"`
	MetricName  string  `gorm:"size:100;index;not null"`
	MetricValue float64 `gorm:"type:decimal(10,2);not null"`
	Timestamp   time.Time `gorm:"autoCreateTime;index"`
}

func (TelemetryModel) TableName() string {
	return "telemetry"
}

func (m *TelemetryModel) ToReading() *ha.TelemetryReading {
	return &ha.TelemetryReading{
		ID:          m.ID,
		DeviceID:    m.DeviceID,
		MetricName:  m.MetricName,
		MetricValue: m.MetricValue,
		Timestamp:   m.Timestamp,
	}
}
