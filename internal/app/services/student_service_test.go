package services

import (
	"context"
	"testing"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentService() (*StudentService, *fakeStudentRepo) {
	students := newFakeStudentRepo()
	return NewStudentService(students, newFakeDocumentRepo(), newFakeFormRepo(), testHasher, zerolog.Nop()), students
}

func TestCreateStudent(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	student, err := svc.CreateStudent(ctx, dto.CreateStudentRequest{
		FullName:           " Asha Patil ",
		RegistrationNumber: "FE-010",
		Email:              "Asha@Example.COM",
		TempPassword:       "Welcome@123",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", student.Email)
	assert.Equal(t, "Asha Patil", student.FullName)
	assert.Equal(t, "Open", student.Category)
	assert.True(t, student.MustChangePassword)
	assert.Nil(t, student.AdmissionStage)
	assert.True(t, testHasher.Verify(student.PasswordHash, "Welcome@123"))

	_, err = svc.CreateStudent(ctx, dto.CreateStudentRequest{
		FullName: "Other", RegistrationNumber: "FE-010", Email: "other@example.com", TempPassword: "Welcome@123",
	})
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNumberExists)
	assert.Equal(t, "Registration number already exists", err.Error())

	_, err = svc.CreateStudent(ctx, dto.CreateStudentRequest{
		FullName: "Other", RegistrationNumber: "FE-011", Email: "asha@example.com", TempPassword: "Welcome@123",
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentEmailExists)
	assert.Equal(t, "Email address already exists", err.Error())
}

func TestGetStage_DefaultsToFirst(t *testing.T) {
	svc, students := newStudentService()
	s := students.add("FE-010", "Welcome@123", true)

	stage, err := svc.GetStage(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stage.StageIndex)
	assert.Equal(t, domain.StageNames()[0], stage.StageName)
	assert.Len(t, stage.Stages, domain.StageCount())
}

func TestSetStage(t *testing.T) {
	svc, students := newStudentService()
	s := students.add("FE-010", "Welcome@123", true)
	ctx := context.Background()

	updated, err := svc.SetStage(ctx, s.ID, "Commencement of Course")
	require.NoError(t, err)
	require.NotNil(t, updated.AdmissionStage)
	assert.Equal(t, "Commencement of Course", *updated.AdmissionStage)

	// backwards jumps are allowed
	updated, err = svc.SetStage(ctx, s.ID, "Seat Allotment")
	require.NoError(t, err)
	assert.Equal(t, "Seat Allotment", *updated.AdmissionStage)

	_, err = svc.SetStage(ctx, s.ID, "Stage 9")
	assert.ErrorIs(t, err, apperrors.ErrUnknownStage)

	_, err = svc.SetStage(ctx, s.ID, "  ")
	assert.ErrorIs(t, err, apperrors.ErrUnknownStage)

	_, err = svc.SetStage(ctx, uuid.New(), "Seat Allotment")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestBulkSetStage_CountsOnlyUpdatedRows(t *testing.T) {
	svc, students := newStudentService()
	ctx := context.Background()
	a := students.add("FE-001", "Welcome@123", true)
	b := students.add("FE-002", "Welcome@123", true)
	c := students.add("FE-003", "Welcome@123", true)
	broken := students.add("FE-004", "Welcome@123", true)
	students.failOn[broken.ID] = errBoom

	stage := "Document Verification at Facilitation Centre"
	count, err := svc.BulkSetStage(ctx, []string{
		a.ID.String(), b.ID.String(), c.ID.String(),
		uuid.NewString(), "not-a-uuid", broken.ID.String(),
	}, stage)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, id := range []uuid.UUID{a.ID, b.ID, c.ID} {
		got, err := svc.GetStage(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, got.StageIndex)
	}

	_, err = svc.BulkSetStage(ctx, []string{a.ID.String()}, "Nowhere")
	assert.ErrorIs(t, err, apperrors.ErrUnknownStage)
}

func TestUpdateProfile(t *testing.T) {
	svc, students := newStudentService()
	s := students.add("FE-010", "Welcome@123", true)
	ctx := context.Background()

	bad := "12345"
	_, err := svc.UpdateProfile(ctx, s.ID, models.StudentProfileUpdate{MobileNumber: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	mobile := "9876543210"
	state := "Maharashtra"
	updated, err := svc.UpdateProfile(ctx, s.ID, dto.UpdateProfileRequest{
		MobileNumber: &mobile,
		ExamTypes:    []string{"MHT-CET"},
		HomeState:    &state,
	}.ProfileUpdate())
	require.NoError(t, err)
	assert.Equal(t, mobile, *updated.MobileNumber)
	assert.True(t, updated.IsProfileComplete())
}

func TestUpdateStudent_StageAndProfile(t *testing.T) {
	svc, students := newStudentService()
	s := students.add("FE-010", "Welcome@123", true)

	stage := "Seat Allotment"
	name := "Asha P."
	updated, err := svc.UpdateStudent(context.Background(), s.ID, dto.UpdateStudentRequest{
		AdmissionStage: &stage,
		FullName:       &name,
	})
	require.NoError(t, err)
	assert.Equal(t, stage, *updated.AdmissionStage)
	assert.Equal(t, name, updated.FullName)
}

func TestListStudents(t *testing.T) {
	svc, students := newStudentService()
	students.add("FE-001", "Welcome@123", true)
	students.add("FE-002", "Welcome@123", true)

	items, page, err := svc.ListStudents(context.Background(), models.StudentListFilter{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, domain.StageNames()[0], items[0].AdmissionStage)
}

func TestDashboard_SeatAllotment(t *testing.T) {
	students := newFakeStudentRepo()
	alerts := &fakeAlertRepo{}
	notices := &fakeNoticeRepo{}
	noticeSvc := NewNoticeService(notices, zerolog.Nop())
	dash := NewDashboardService(students, alerts, noticeSvc)
	ctx := context.Background()

	s := students.add("FE-010", "Welcome@123", false)
	require.NoError(t, students.UpdateStage(ctx, s.ID, "Seat Allotment"))

	alertSvc := NewAlertService(alerts, students, zerolog.Nop())
	open, err := alertSvc.Create(ctx, s.ID, dto.CreateAlertRequest{Title: "Caste validity", Message: "Upload it"})
	require.NoError(t, err)
	assert.Equal(t, domain.AlertInfo, open.AlertType)
	closed, err := alertSvc.Create(ctx, s.ID, dto.CreateAlertRequest{Title: "Old", Message: "Done", AlertType: "action"})
	require.NoError(t, err)
	require.NoError(t, alertSvc.Resolve(ctx, closed.ID))

	admin := uuid.New()
	for i := 0; i < 7; i++ {
		_, err := noticeSvc.Create(ctx, admin, dto.NoticeRequest{Title: "Notice", Content: "Body", Status: "published"})
		require.NoError(t, err)
	}
	_, err = noticeSvc.Create(ctx, admin, dto.NoticeRequest{Title: "Draft", Content: "Body"})
	require.NoError(t, err)

	got, err := dash.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Progress.CurrentStageIndex)
	assert.Equal(t, "Seat Allotment", got.Progress.CurrentStage)
	assert.Equal(t, "Await seat allotment results", got.WhatsNext)
	assert.False(t, got.Progress.IsProfileComplete)
	require.Len(t, got.Alerts, 1)
	assert.Equal(t, open.ID, got.Alerts[0].ID)
	assert.Len(t, got.Notices, PublishedNoticeLimit)
	for _, n := range got.Notices {
		assert.Equal(t, domain.NoticePublished, n.Status)
	}
}

func TestAlertForUnknownStudent(t *testing.T) {
	alertSvc := NewAlertService(&fakeAlertRepo{}, newFakeStudentRepo(), zerolog.Nop())
	_, err := alertSvc.Create(context.Background(), uuid.New(), dto.CreateAlertRequest{Title: "x", Message: "y"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
