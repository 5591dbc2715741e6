package services

import (
	"context"

	"taskmaster/domain/dto"
)

type DashboardService interface {
	GetStats(ctx context.Context, userID string) (*dto.DashboardStats, error)
	GetProjectOverview(ctx context.Context, userID string) ([]dto.ProjectOverview, error)
}

// HousekeepingService scans the stores; it never modifies them.
type HousekeepingService interface {
	Report(ctx context.Context) (*dto.HousekeepingReport, error)
	// Run is the scheduled entry point: build the report and log it.
	Run()
}
