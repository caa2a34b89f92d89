package repository

import (
	"time"

	"chat-session-demo/backend/internal/models"

	"gorm.io/gorm"
)

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *GormSessionRepository) GetByID(id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) List() ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.Order("updated_at DESC").Find(&sessions).Error
	return sessions, err
}

// IncrementCounters bumps message_count by delta and refreshes updated_at.
// The relative update keeps concurrent exchanges from losing counts.
func (r *GormSessionRepository) IncrementCounters(id string, delta int, updatedAt time.Time) error {
	result := r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"message_count": gorm.Expr("message_count + ?", delta),
			"updated_at":    updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
