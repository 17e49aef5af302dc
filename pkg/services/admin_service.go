package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/repositories"
)

// AdminService holds operator maintenance actions.
type AdminService interface {
	// ClearAll removes every client and property atomically.
	ClearAll(ctx context.Context) error
}

type adminService struct {
	admin  repositories.AdminRepository
	logger *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(admin repositories.AdminRepository, logger *zap.Logger) AdminService {
	return &adminService{
		admin:  admin,
		logger: logger.Named("admin"),
	}
}

var _ AdminService = (*adminService)(nil)

func (s *adminService) ClearAll(ctx context.Context) error {
	if err := s.admin.ClearAll(ctx); err != nil {
		return err
	}
	s.logger.Info("All client and property data cleared")
	return nil
}
