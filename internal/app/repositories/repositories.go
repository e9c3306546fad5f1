package repositories

import "github.com/futureedge/counselling/internal/db"

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository       *StudentRepository
	RoleRepository          *RoleRepository
	AdminRepository         *AdminRepository
	DocumentRepository      *DocumentRepository
	FormRepository          *FormRepository
	NoticeRepository        *NoticeRepository
	AlertRepository         *AlertRepository
	PasswordResetRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(q db.DBTX) *Repositories {
	return &Repositories{
		StudentRepository:       NewStudentRepository(q),
		RoleRepository:          NewRoleRepository(q),
		AdminRepository:         NewAdminRepository(q),
		DocumentRepository:      NewDocumentRepository(q),
		FormRepository:          NewFormRepository(q),
		NoticeRepository:        NewNoticeRepository(q),
		AlertRepository:         NewAlertRepository(q),
		PasswordResetRepository: NewPasswordResetTokenRepository(q),
	}
}
