package storage

import (
	"campusvoice/backend/internal/config"
	"campusvoice/backend/internal/models"
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence boundary of the portal. PostgreSQL holds
// complaints, responses and users; Redis holds sessions and carries the
// live-feed pub/sub channel. Lookup methods return (nil, nil) when the
// record does not exist; the caller decides what "not found" means.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateUser(user *models.User) error

	// Complaints
	CreateComplaint(complaint *models.Complaint) error
	SaveComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	GetComplaintByTrackingID(trackingID string) (*models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
	ListComplaintsByUser(userID string) ([]models.Complaint, error)
	TrackingIDExists(trackingID string) (bool, error)

	// Responses
	AppendResponse(response *models.Response) error

	// Sessions (Redis)
	SaveSession(id string, sess models.Session) error
	GetSession(id string) (*models.Session, error)
	DeleteSession(id string) error

	// Live feed (Redis Pub/Sub)
	PublishEvent(ev models.ComplaintEvent) error
	SubscribeEvents() *redis.PubSub
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

// GetUserByEmail шукає користувача за email
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

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// CreateComplaint зберігає нову скаргу в PostgreSQL
func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if complaint.Status == "" {
		complaint.Status = config.StatusPending
	}

	result := s.DB.Create(complaint)

	if result.Error != nil {
		log.Printf("ERROR: Failed to save complaint %s: %v", complaint.TrackingID, result.Error)
		return result.Error
	}

	return nil
}

// SaveComplaint persists an updated complaint, advancing UpdatedAt.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	return s.DB.Omit("Responses").Save(complaint).Error
}

// GetComplaintByID повертає скаргу разом з усіма відповідями,
// відсортованими за часом створення (найстаріша перша).
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&complaint, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %s: %v", id, err)
		return nil, err
	}
	return &complaint, nil
}

// GetComplaintByTrackingID повертає скаргу за Tracking ID (публічний пошук).
func (s *Service) GetComplaintByTrackingID(trackingID string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Where("tracking_id = ?", trackingID).
		First(&complaint).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListComplaints повертає всі скарги, найновіші перші.
func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.Order("created_at desc").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

// ListComplaintsByUser повертає скарги одного користувача, найновіші перші.
func (s *Service) ListComplaintsByUser(userID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints for user %s: %v", userID, err)
		return nil, err
	}
	return complaints, nil
}

// TrackingIDExists перевіряє унікальність Tracking ID перед створенням.
func (s *Service) TrackingIDExists(trackingID string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Complaint{}).Where("tracking_id = ?", trackingID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AppendResponse додає відповідь у кінець треду скарги.
func (s *Service) AppendResponse(response *models.Response) error {
	if err := s.DB.Create(response).Error; err != nil {
		log.Printf("ERROR: Failed to append response for complaint %s: %v", response.ComplaintID, err)
		return err
	}
	return nil
}

// SaveSession зберігає сесію в Redis з TTL
func (s *Service) SaveSession(id string, sess models.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	key := config.SessionKeyPrefix + id
	return s.Redis.Set(s.Ctx, key, payload, config.SessionTTL).Err()
}

// GetSession перевіряє сесію в Redis
func (s *Service) GetSession(id string) (*models.Session, error) {
	key := config.SessionKeyPrefix + id
	payload, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Service) DeleteSession(id string) error {
	return s.Redis.Del(s.Ctx, config.SessionKeyPrefix+id).Err()
}

// PublishEvent публікує подію скарги в Redis Pub/Sub.
// Redis може бути відсутній (CLI-режим) — тоді подія тихо пропускається.
func (s *Service) PublishEvent(ev models.ComplaintEvent) error {
	if s.Redis == nil {
		return nil
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, config.EventChannel, string(evBytes)).Err(); err != nil {
		return err
	}

	return nil
}

func (s *Service) SubscribeEvents() *redis.PubSub {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Subscribe(s.Ctx, config.EventChannel)
}
