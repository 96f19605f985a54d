package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type AuditService interface {
	List(ctx context.Context, entityID *uuid.UUID, limit int) ([]*types.AuditLog, error)
}

type auditService struct {
	log       *logger.Logger
	auditRepo repos.AuditLogRepo
}

func NewAuditService(log *logger.Logger, auditRepo repos.AuditLogRepo) AuditService {
	return &auditService{
		log:       log.With("service", "AuditService"),
		auditRepo: auditRepo,
	}
}

func (s *auditService) List(ctx context.Context, entityID *uuid.UUID, limit int) ([]*types.AuditLog, error) {
	rows, err := s.auditRepo.List(dbctx.New(ctx), entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	if rows == nil {
		rows = []*types.AuditLog{}
	}
	return rows, nil
}
