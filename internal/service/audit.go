package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/isp-backoffice-api/internal/models"
)

type auditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type snapshotRefresher interface {
	Enqueue(resource string) error
}

type auditEntry struct {
	action     string
	resource   string
	resourceID string
	oldValues  interface{}
	newValues  interface{}
}

func recordAudit(ctx context.Context, repo auditRepository, logger *zap.Logger, actorID string, meta models.RequestMeta, entry auditEntry) {
	if repo == nil {
		return
	}
	log := &models.AuditLog{
		Action:     entry.action,
		Resource:   entry.resource,
		ResourceID: &entry.resourceID,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}
	if actorID != "" {
		log.AdminID = &actorID
	}
	if entry.oldValues != nil {
		log.OldValues, _ = json.Marshal(entry.oldValues)
	}
	if entry.newValues != nil {
		log.NewValues, _ = json.Marshal(entry.newValues)
	}
	if err := repo.CreateAuditLog(ctx, log); err != nil {
		logger.Warn("failed to record audit log", zap.String("action", entry.action), zap.Error(err))
	}
}

func requestRefresh(refresher snapshotRefresher, logger *zap.Logger, resources ...string) {
	if refresher == nil {
		return
	}
	for _, resource := range resources {
		if err := refresher.Enqueue(resource); err != nil {
			logger.Warn("snapshot refresh not enqueued", zap.String("resource", resource), zap.Error(err))
		}
	}
}
