package storage

import (
	"context"
	"errors"

	"civicgo/backend/internal/config"
	"civicgo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	CreateComplaint(complaint *models.Complaint) error
	FindComplaints(status, category string, limit int) ([]models.Complaint, error)
	FindComplaintsNearby(lat, lon, radiusMeters float64, limit int) ([]models.Complaint, error)
	FindComplaintsByUser(userID string, limit int) ([]models.Complaint, error)
	GetComplaintByID(id string) (*models.Complaint, error)
	UpdateComplaintFields(id string, fields map[string]interface{}) error

	CountComplaints(status string) (int64, error)
	CategoryBreakdown() ([]models.CategoryCount, error)

	ListCategories() ([]models.Category, error)
	SeedDefaultCategories() error

	EnsureGeoIndex() error

	PublishComplaintEvent(event models.ComplaintEvent) error
	SubscribeComplaintEvents(ctx context.Context) (<-chan models.ComplaintEvent, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser зберігає нового користувача в PostgreSQL
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// GetUserByEmail шукає користувача за точним збігом email.
// Повертає (nil, nil), якщо користувача не знайдено.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID шукає користувача за ID. Повертає (nil, nil), якщо не знайдено.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole змінює роль користувача (використовується адмін-CLI, не HTTP-сервером).
func (s *Service) UpdateUserRole(id, role string) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListCategories повертає довідник категорій.
func (s *Service) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// SeedDefaultCategories засіває довідник категорій, якщо таблиця порожня.
// Повторні виклики нічого не змінюють.
func (s *Service) SeedDefaultCategories() error {
	var count int64
	if err := s.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := make([]models.Category, 0, len(config.DefaultCategories))
	for _, c := range config.DefaultCategories {
		categories = append(categories, models.Category{Name: c.Name, Icon: c.Icon})
	}
	return s.DB.Create(&categories).Error
}
