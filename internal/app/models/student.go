package models

import (
	"time"

	"github.com/google/uuid"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	RegistrationNumber     string    `db:"registration_number" json:"registrationNumber"`
	Email                  string    `db:"email" json:"email"`
	FullName               string    `db:"full_name" json:"fullName"`
	PasswordHash           string    `db:"password_hash" json:"-"`
	MustChangePassword     bool      `db:"must_change_password" json:"mustChangePassword"`
	AdmissionStage         *string   `db:"admission_stage" json:"admissionStage"`
	MobileNumber           *string   `db:"mobile_number" json:"mobileNumber"`
	AlternateContactNumber *string   `db:"alternate_contact_number" json:"alternateContactNumber"`
	ExamTypes              []string  `db:"exam_types" json:"examTypes"`
	Category               string    `db:"category" json:"category"`
	HomeState              *string   `db:"home_state" json:"homeState"`
	PreferredBranches      []string  `db:"preferred_branches" json:"preferredBranches"`
	PreferredColleges      []string  `db:"preferred_colleges" json:"preferredColleges"`
	CreatedAt              time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time `db:"updated_at" json:"updatedAt"`
}

// IsProfileComplete reports whether the fields the counselling desk needs are filled in.
func (s *Student) IsProfileComplete() bool {
	return s.FullName != "" &&
		s.MobileNumber != nil && *s.MobileNumber != "" &&
		len(s.ExamTypes) > 0 &&
		s.Category != "" &&
		s.HomeState != nil && *s.HomeState != ""
}

// StudentProfileUpdate carries the profile fields a student or admin may change.
// Nil fields are left untouched.
type StudentProfileUpdate struct {
	FullName               *string
	Email                  *string
	MobileNumber           *string
	AlternateContactNumber *string
	ExamTypes              []string
	Category               *string
	HomeState              *string
	PreferredBranches      []string
	PreferredColleges      []string
}

// IsEmpty reports whether the update changes nothing
func (u StudentProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.MobileNumber == nil &&
		u.AlternateContactNumber == nil && u.ExamTypes == nil && u.Category == nil &&
		u.HomeState == nil && u.PreferredBranches == nil && u.PreferredColleges == nil
}

// StudentListFilter narrows the admin student list
type StudentListFilter struct {
	Search string
	Stage  string
	Page   int
	Size   int
}
