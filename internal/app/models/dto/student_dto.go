package dto

import (
	"time"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/google/uuid"
)

// CreateStudentRequest is the admin body for enrolling a student
type CreateStudentRequest struct {
	FullName           string   `json:"fullName" binding:"required,notblank,max=200" example:"Asha Patil"`
	RegistrationNumber string   `json:"registrationNumber" binding:"required,notblank,max=50" example:"FE-010"`
	Email              string   `json:"email" binding:"required,email" example:"asha@example.com"`
	TempPassword       string   `json:"tempPassword" binding:"required,min=8" example:"Welcome@123"`
	ExamTypes          []string `json:"examTypes" example:"MHT-CET,JEE"`
	Category           string   `json:"category" example:"Open"`
	MobileNumber       string   `json:"mobileNumber" binding:"omitempty,mobile10" example:"9876543210"`
	HomeState          string   `json:"homeState" example:"Maharashtra"`
}

// UpdateStudentRequest is the admin body for editing one student. Omitted
// fields are left unchanged.
type UpdateStudentRequest struct {
	AdmissionStage         *string  `json:"admissionStage" binding:"omitempty,notblank,stage" example:"Seat Allotment"`
	FullName               *string  `json:"fullName" binding:"omitempty,notblank,max=200"`
	Email                  *string  `json:"email" binding:"omitempty,email"`
	MobileNumber           *string  `json:"mobileNumber" binding:"omitempty,mobile10"`
	AlternateContactNumber *string  `json:"alternateContactNumber" binding:"omitempty,mobile10"`
	ExamTypes              []string `json:"examTypes"`
	Category               *string  `json:"category"`
	HomeState              *string  `json:"homeState"`
	PreferredBranches      []string `json:"preferredBranches"`
	PreferredColleges      []string `json:"preferredColleges"`
}

// ProfileUpdate converts the request into a repository update
func (r UpdateStudentRequest) ProfileUpdate() models.StudentProfileUpdate {
	return models.StudentProfileUpdate{
		FullName:               r.FullName,
		Email:                  r.Email,
		MobileNumber:           r.MobileNumber,
		AlternateContactNumber: r.AlternateContactNumber,
		ExamTypes:              r.ExamTypes,
		Category:               r.Category,
		HomeState:              r.HomeState,
		PreferredBranches:      r.PreferredBranches,
		PreferredColleges:      r.PreferredColleges,
	}
}

// UpdateProfileRequest is the student self-service profile body
type UpdateProfileRequest struct {
	MobileNumber           *string  `json:"mobileNumber" binding:"omitempty,mobile10" example:"9876543210"`
	AlternateContactNumber *string  `json:"alternateContactNumber" binding:"omitempty,mobile10"`
	ExamTypes              []string `json:"examTypes"`
	Category               *string  `json:"category" example:"OBC"`
	HomeState              *string  `json:"homeState" example:"Maharashtra"`
	PreferredBranches      []string `json:"preferredBranches"`
	PreferredColleges      []string `json:"preferredColleges"`
}

// ProfileUpdate converts the request into a repository update
func (r UpdateProfileRequest) ProfileUpdate() models.StudentProfileUpdate {
	return models.StudentProfileUpdate{
		MobileNumber:           r.MobileNumber,
		AlternateContactNumber: r.AlternateContactNumber,
		ExamTypes:              r.ExamTypes,
		Category:               r.Category,
		HomeState:              r.HomeState,
		PreferredBranches:      r.PreferredBranches,
		PreferredColleges:      r.PreferredColleges,
	}
}

// BulkStageUpdateRequest moves many students to one stage
type BulkStageUpdateRequest struct {
	StudentIDs     []string `json:"studentIds" binding:"required,min=1,max=500"`
	AdmissionStage string   `json:"admissionStage" binding:"required,notblank,stage" example:"Document Verification at Facilitation Centre"`
}

// BulkStageUpdateResponse reports how many rows changed
type BulkStageUpdateResponse struct {
	UpdatedCount int `json:"updatedCount" example:"3"`
}

// StudentSummary is the student view shared by admin and student endpoints
type StudentSummary struct {
	ID                     uuid.UUID `json:"id"`
	RegistrationNumber     string    `json:"registrationNumber"`
	Email                  string    `json:"email"`
	FullName               string    `json:"fullName"`
	MustChangePassword     bool      `json:"mustChangePassword"`
	AdmissionStage         string    `json:"admissionStage"`
	StageIndex             int       `json:"stageIndex"`
	MobileNumber           *string   `json:"mobileNumber"`
	AlternateContactNumber *string   `json:"alternateContactNumber"`
	ExamTypes              []string  `json:"examTypes"`
	Category               string    `json:"category"`
	HomeState              *string   `json:"homeState"`
	PreferredBranches      []string  `json:"preferredBranches"`
	PreferredColleges      []string  `json:"preferredColleges"`
	CreatedAt              time.Time `json:"createdAt"`
}

// NewStudentSummary builds the summary, resolving the stored stage name
func NewStudentSummary(s *models.Student) StudentSummary {
	stage, idx := domain.ResolveStage(s.AdmissionStage)
	return StudentSummary{
		ID:                     s.ID,
		RegistrationNumber:     s.RegistrationNumber,
		Email:                  s.Email,
		FullName:               s.FullName,
		MustChangePassword:     s.MustChangePassword,
		AdmissionStage:         stage,
		StageIndex:             idx,
		MobileNumber:           s.MobileNumber,
		AlternateContactNumber: s.AlternateContactNumber,
		ExamTypes:              nonNil(s.ExamTypes),
		Category:               s.Category,
		HomeState:              s.HomeState,
		PreferredBranches:      nonNil(s.PreferredBranches),
		PreferredColleges:      nonNil(s.PreferredColleges),
		CreatedAt:              s.CreatedAt,
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// StageResponse answers a stage read
type StageResponse struct {
	StageName  string   `json:"stageName" example:"Seat Allotment"`
	StageIndex int      `json:"stageIndex" example:"4"`
	Stages     []string `json:"stages"`
}

// StageProgress is the tracker block of the dashboard
type StageProgress struct {
	Stages            []string `json:"stages"`
	CurrentStage      string   `json:"currentStage"`
	CurrentStageIndex int      `json:"currentStageIndex" example:"4"`
	IsProfileComplete bool     `json:"isProfileComplete"`
}

// StudentDetailResponse is the admin detail view of one student
type StudentDetailResponse struct {
	Student   StudentSummary          `json:"student"`
	Progress  StageProgress           `json:"progress"`
	Documents []models.DocumentRecord `json:"documents"`
	Forms     []models.FormRecord     `json:"forms"`
}

// DashboardResponse is the student home snapshot
type DashboardResponse struct {
	Student   StudentSummary        `json:"student"`
	Progress  StageProgress         `json:"progress"`
	WhatsNext string                `json:"whatsNext" example:"Await seat allotment results"`
	Alerts    []models.StudentAlert `json:"alerts"`
	Notices   []models.Notice       `json:"notices"`
}
