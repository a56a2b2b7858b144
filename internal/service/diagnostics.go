package service

import (
	"fmt"

	"cleaning-marketplace-api/internal/repo"
)

type DiagnosticsService struct {
	diagnosticsRepo repo.Diagnostics
}

func NewDiagnosticsService(diagnosticsRepo repo.Diagnostics) *DiagnosticsService {
	return &DiagnosticsService{
		diagnosticsRepo: diagnosticsRepo,
	}
}

func (s *DiagnosticsService) PingDatabase() error {
	if err := s.diagnosticsRepo.Ping(); err != nil {
		return fmt.Errorf("DiagnosticsService.PingDatabase: %w", err)
	}

	return nil
}
