package services

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-backoffice/models"
)

// AuditService writes audit rows for mutations made by authenticated users.
type AuditService struct {
	DB  *gorm.DB
	Log *logrus.Entry
}

func NewAuditService(db *gorm.DB, log *logrus.Entry) *AuditService {
	return &AuditService{DB: db, Log: log}
}

func jsonValue(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// Record stores one audit row. A zero userID is skipped; write failures are
// logged and never fail the request that triggered them.
func (s *AuditService) Record(ctx context.Context, userID uint, action, entityType string, entityID uint, oldValue, newValue interface{}) {
	if userID == 0 {
		return
	}
	row := models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   jsonValue(oldValue),
		NewValue:   jsonValue(newValue),
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		s.Log.WithError(err).WithFields(logrus.Fields{
			"action":    action,
			"entity":    entityType,
			"entity_id": entityID,
		}).Warn("audit log write failed")
	}
}

func (s *AuditService) List(ctx context.Context, entityType string, limit int) ([]models.AuditLog, error) {
	switch {
	case limit <= 0:
		limit = 100
	case limit > 500:
		limit = 500
	}
	q := s.DB.WithContext(ctx).Order("id DESC").Limit(limit)
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	var rows []models.AuditLog
	err := q.Find(&rows).Error
	return rows, err
}
