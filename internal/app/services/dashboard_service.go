package services

import (
	"context"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/google/uuid"
)

// DashboardService assembles the student home snapshot
type DashboardService struct {
	studentRepo repositories.IStudentRepository
	alertRepo   repositories.IAlertRepository
	notices     *NoticeService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(studentRepo repositories.IStudentRepository, alertRepo repositories.IAlertRepository, notices *NoticeService) *DashboardService {
	return &DashboardService{studentRepo: studentRepo, alertRepo: alertRepo, notices: notices}
}

// Get returns the dashboard for studentID
func (s *DashboardService) Get(ctx context.Context, studentID uuid.UUID) (*dto.DashboardResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.ListUnresolved(ctx, studentID)
	if err != nil {
		return nil, err
	}

	notices, err := s.notices.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	progress := Progress(student)
	return &dto.DashboardResponse{
		Student:   dto.NewStudentSummary(student),
		Progress:  progress,
		WhatsNext: domain.WhatNextFor(progress.CurrentStageIndex),
		Alerts:    alerts,
		Notices:   notices,
	}, nil
}
