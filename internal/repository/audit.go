package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/internal/logger"
	"taskhub/internal/model"
)

// recordAudit attributes a mutation to its operator. Audit failures must not
// fail the mutation itself; they are logged as warnings.
func recordAudit(ctx context.Context, db *gorm.DB, log *zap.Logger, entity, entityID, action, operatedBy string) {
	entry := model.AuditLog{
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		OperatedBy: operatedBy,
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Warn("audit write failed",
			logger.Entity(entity),
			logger.Operation(action),
			logger.Actor(operatedBy),
			logger.Err(err))
	}
}
