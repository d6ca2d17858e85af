package gorm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	ha "github.com/imsop/hybridauth"
)

// AutoMigrate runs database migrations for all hybridauth tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ResetTokenModel{},
		&ShipmentModel{},
		&OrderModel{},
		&TelemetryModel{},
	)
}

// =============================================================================
// UserStore
// =============================================================================

// UserStore implements ha.UserStore using GORM
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserStore) CreateUser(email, password, name, role string) (*ha.User, error) {
	email = normalizeEmail(email)

	var existing UserModel
	if err := s.db.First(&existing, "email = ?", email).Error; err == nil {
		return nil, ha.ErrEmailExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = ha.RoleUser
	}
	model := &UserModel{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := s.db.Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) GetUserByID(id string) (*ha.User, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ha.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) GetUserByEmail(email string) (*ha.User, error) {
	var model UserModel
	if err := s.db.First(&model, "email = ?", normalizeEmail(email)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ha.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) Authenticate(email, password string) (*ha.User, error) {
	var model UserModel
	if err := s.db.First(&model, "email = ?", normalizeEmail(email)).Error; err != nil {
		// Same failure for unknown email and bad password.
		return nil, ha.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(model.PasswordHash), []byte(password)); err != nil {
		return nil, ha.ErrInvalidCredentials
	}
	return model.ToUser(), nil
}

func (s *UserStore) VerifyPassword(id, password string) error {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		return ha.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(model.PasswordHash), []byte(password)); err != nil {
		return ha.ErrInvalidCredentials
	}
	return nil
}

func (s *UserStore) UpdateProfile(id string, updates ha.ProfileUpdates) (*ha.User, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ha.ErrUserNotFound
		}
		return nil, err
	}

	values := map[string]any{}
	if updates.Name != nil {
		values["name"] = *updates.Name
	}
	if updates.Avatar != nil {
		values["avatar"] = *updates.Avatar
	}
	if len(values) > 0 {
		if err := s.db.Model(&model).Updates(values).Error; err != nil {
			return nil, err
		}
	}
	return model.ToUser(), nil
}

func (s *UserStore) UpdatePassword(id, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	result := s.db.Model(&UserModel{}).Where("id = ?", id).Update("password_hash", string(hash))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ha.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) UpdatePasswordByEmail(email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	result := s.db.Model(&UserModel{}).Where("email = ?", normalizeEmail(email)).Update("password_hash", string(hash))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ha.ErrUserNotFound
	}
	return nil
}

// =============================================================================
// TokenStore (for password reset)
// =============================================================================

// TokenStore implements ha.TokenStore using GORM
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) CreateToken(userID, email string, tokenType ha.TokenType, expiryDuration time.Duration) (*ha.ResetToken, error) {
	token, err := ha.GenerateSecureToken()
	if err != nil {
		return nil, err
	}

	model := &ResetTokenModel{
		Token:     token,
		Type:      tokenType,
		UserID:    userID,
		Email:     normalizeEmail(email),
		ExpiresAt: time.Now().Add(expiryDuration),
	}
	if err := s.db.Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToResetToken(), nil
}

func (s *TokenStore) GetToken(token string) (*ha.ResetToken, error) {
	var model ResetTokenModel
	if err := s.db.First(&model, "token = ?", token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ha.ErrTokenNotFound
		}
		return nil, err
	}

	resetToken := model.ToResetToken()
	if resetToken.IsExpired() {
		_ = s.DeleteToken(token)
		return nil, ha.ErrTokenExpired
	}
	return resetToken, nil
}

func (s *TokenStore) DeleteToken(token string) error {
	return s.db.Delete(&ResetTokenModel{}, "token = ?", token).Error
}

// =============================================================================
// ShipmentStore / OrderStore / TelemetryStore
// =============================================================================

// ShipmentStore implements ha.ShipmentStore using GORM
type ShipmentStore struct {
	db *gorm.DB
}

func NewShipmentStore(db *gorm.DB) *ShipmentStore {
	return &ShipmentStore{db: db}
}

func (s *ShipmentStore) ListShipments() ([]*ha.Shipment, error) {
	var models []ShipmentModel
	if err := s.db.Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	shipments := make([]*ha.Shipment, len(models))
	for i := range models {
		shipments[i] = models[i].ToShipment()
	}
	return shipments, nil
}

// OrderStore implements ha.OrderStore using GORM
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) ListOrders() ([]*ha.Order, error) {
	var models []OrderModel
	if err := s.db.Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	orders := make([]*ha.Order, len(models))
	for i := range models {
		orders[i] = models[i].ToOrder()
	}
	return orders, nil
}

// TelemetryStore implements ha.TelemetryStore using GORM
type TelemetryStore struct {
	db *gorm.DB
}

func NewTelemetryStore(db *gorm.DB) *TelemetryStore {
	return &TelemetryStore{db: db}
}

func (s *TelemetryStore) ListReadings() ([]*ha.TelemetryReading, error) {
	var models []TelemetryModel
	if err := s.db.Order("timestamp desc").Find(&models).Error; err != nil {
		return nil, err
	}
	readings := make([]*ha.TelemetryReading, len(models))
	for i := range models {
		readings[i] = models[i].ToReading()
	}
	return readings, nil
}

func (s *TelemetryStore) RecordReading(reading *ha.TelemetryReading) error {
	model := &TelemetryModel{
		DeviceID:    reading.DeviceID,
		MetricName:  reading.MetricName,
		MetricValue: reading.MetricValue,
	}
	if err := s.db.Create(model).Error; err != nil {
		return err
	}
	reading.ID = model.ID
	reading.Timestamp = model.Timestamp
	return nil
}
