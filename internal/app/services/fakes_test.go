package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/futureedge/counselling/internal/pkg/filestorage"
	"github.com/google/uuid"
)

var testHasher = auth.NewBcryptHasher(4)

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[uuid.UUID]*models.Student
	failOn   map[uuid.UUID]error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[uuid.UUID]*models.Student{}, failOn: map[uuid.UUID]error{}}
}

func (r *fakeStudentRepo) add(regNo, password string, mustChange bool) *models.Student {
	hash, _ := testHasher.Hash(password)
	s := &models.Student{
		ID:                 uuid.New(),
		RegistrationNumber: regNo,
		Email:              strings.ToLower(regNo) + "@example.com",
		FullName:           "Student " + regNo,
		PasswordHash:       hash,
		MustChangePassword: mustChange,
		Category:           "Open",
		CreatedAt:          time.Now(),
	}
	r.mu.Lock()
	r.students[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.RegistrationNumber == student.RegistrationNumber {
			return apperrors.ErrRegistrationNumberExists
		}
		if s.Email == student.Email {
			return apperrors.ErrStudentEmailExists
		}
	}
	student.ID = uuid.New()
	student.CreatedAt = time.Now()
	cp := *student
	r.students[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) GetByRegistrationNumber(_ context.Context, regNo string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.RegistrationNumber == regNo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) List(_ context.Context, filter models.StudentListFilter) ([]*models.Student, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Student
	for _, s := range r.students {
		if filter.Search == "" || strings.Contains(strings.ToLower(s.FullName), strings.ToLower(filter.Search)) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegistrationNumber < out[j].RegistrationNumber })
	return out, int64(len(out)), nil
}

func (r *fakeStudentRepo) UpdateStage(_ context.Context, id uuid.UUID, stage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn[id]; err != nil {
		return err
	}
	s, ok := r.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.AdmissionStage = &stage
	return nil
}

func (r *fakeStudentRepo) UpdateProfile(_ context.Context, id uuid.UUID, u models.StudentProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if u.FullName != nil {
		s.FullName = *u.FullName
	}
	if u.MobileNumber != nil {
		s.MobileNumber = u.MobileNumber
	}
	if u.ExamTypes != nil {
		s.ExamTypes = u.ExamTypes
	}
	if u.Category != nil {
		s.Category = *u.Category
	}
	if u.HomeState != nil {
		s.HomeState = u.HomeState
	}
	return nil
}

func (r *fakeStudentRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string, mustChange bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.PasswordHash = hash
	s.MustChangePassword = mustChange
	return nil
}

type fakeAdminRepo struct {
	admins map[string]*models.AdminUser
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if a, ok := r.admins[strings.ToLower(email)]; ok {
		return a, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id uuid.UUID) (*models.AdminUser, error) {
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (r *fakeAdminRepo) Create(_ context.Context, a *models.AdminUser) error {
	a.ID = uuid.New()
	r.admins[strings.ToLower(a.Email)] = a
	return nil
}

// fakeResetRepo mirrors the conditional-update semantics of the SQL version
type fakeResetRepo struct {
	mu       sync.Mutex
	tokens   map[string]*models.PasswordResetToken
	students *fakeStudentRepo
}

func newFakeResetRepo(students *fakeStudentRepo) *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*models.PasswordResetToken{}, students: students}
}

func (r *fakeResetRepo) CreateToken(_ context.Context, studentID uuid.UUID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &models.PasswordResetToken{StudentID: studentID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (r *fakeResetRepo) ResetPassword(ctx context.Context, token, hash string) (uuid.UUID, error) {
	r.mu.Lock()
	t, ok := r.tokens[token]
	switch {
	case !ok:
		r.mu.Unlock()
		return uuid.Nil, apperrors.ErrResetTokenInvalid
	case t.UsedAt != nil:
		r.mu.Unlock()
		return uuid.Nil, apperrors.ErrResetTokenUsed
	case !t.ExpiresAt.After(time.Now()):
		r.mu.Unlock()
		return uuid.Nil, apperrors.ErrResetTokenExpired
	}
	now := time.Now()
	t.UsedAt = &now
	r.mu.Unlock()

	return t.StudentID, r.students.UpdatePassword(ctx, t.StudentID, hash, false)
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]*models.DocumentRecord
	upsertErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*models.DocumentRecord{}}
}

func (r *fakeDocumentRepo) Upsert(_ context.Context, doc *models.DocumentRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return "", r.upsertErr
	}
	doc.Status = domain.ReviewPending
	doc.AdminNote = nil
	doc.ReviewedBy = nil
	doc.ReviewedAt = nil
	for id, existing := range r.docs {
		if existing.StudentID == doc.StudentID && existing.DocumentType == doc.DocumentType {
			previous := existing.FilePath
			doc.ID = id
			cp := *doc
			r.docs[id] = &cp
			return previous, nil
		}
	}
	doc.ID = uuid.New()
	cp := *doc
	r.docs[doc.ID] = &cp
	return "", nil
}

func (r *fakeDocumentRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]models.DocumentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.DocumentRecord{}
	for _, d := range r.docs {
		if d.StudentID == studentID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.DocumentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperrors.ErrDocumentNotFound
}

func (r *fakeDocumentRepo) GetByFilePath(_ context.Context, filePath string) (*models.DocumentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.FilePath == filePath {
			cp := *d
			return &cp, nil
		}
	}
	return nil, apperrors.ErrDocumentNotFound
}

func (r *fakeDocumentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ReviewStatus, note *string, reviewer uuid.UUID) (*models.DocumentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	now := time.Now()
	d.Status = status
	d.AdminNote = note
	d.ReviewedBy = &reviewer
	d.ReviewedAt = &now
	cp := *d
	return &cp, nil
}

type fakeFormRepo struct {
	mu        sync.Mutex
	forms     map[uuid.UUID]*models.FormRecord
	createErr error
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: map[uuid.UUID]*models.FormRecord{}}
}

func (r *fakeFormRepo) Create(_ context.Context, f *models.FormRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	cp := *f
	r.forms[f.ID] = &cp
	return nil
}

func (r *fakeFormRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]models.FormRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.FormRecord{}
	for _, f := range r.forms {
		if f.StudentID == studentID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFormRepo) GetByID(_ context.Context, id uuid.UUID) (*models.FormRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.forms[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, apperrors.ErrFormNotFound
}

func (r *fakeFormRepo) GetByFilePath(_ context.Context, filePath string) (*models.FormRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.forms {
		if f.FilePath == filePath {
			cp := *f
			return &cp, nil
		}
	}
	return nil, apperrors.ErrFormNotFound
}

func (r *fakeFormRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.forms[id]; !ok {
		return apperrors.ErrFormNotFound
	}
	delete(r.forms, id)
	return nil
}

type fakeAlertRepo struct {
	alerts []models.StudentAlert
}

func (r *fakeAlertRepo) Create(_ context.Context, a *models.StudentAlert) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	r.alerts = append(r.alerts, *a)
	return nil
}

func (r *fakeAlertRepo) ListUnresolved(_ context.Context, studentID uuid.UUID) ([]models.StudentAlert, error) {
	out := []models.StudentAlert{}
	for _, a := range r.alerts {
		if a.StudentID == studentID && !a.IsResolved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) Resolve(_ context.Context, id uuid.UUID) error {
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].IsResolved = true
			return nil
		}
	}
	return apperrors.ErrAlertNotFound
}

type fakeNoticeRepo struct {
	notices []models.Notice
}

func (r *fakeNoticeRepo) Create(_ context.Context, n *models.Notice) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	if n.Status == domain.NoticePublished {
		now := time.Now()
		n.PublishedAt = &now
	}
	r.notices = append(r.notices, *n)
	return nil
}

func (r *fakeNoticeRepo) Update(_ context.Context, n *models.Notice) error {
	for i := range r.notices {
		if r.notices[i].ID == n.ID {
			r.notices[i] = *n
			return nil
		}
	}
	return apperrors.ErrNoticeNotFound
}

func (r *fakeNoticeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.notices {
		if r.notices[i].ID == id {
			r.notices = append(r.notices[:i], r.notices[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNoticeNotFound
}

func (r *fakeNoticeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Notice, error) {
	for _, n := range r.notices {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNoticeNotFound
}

func (r *fakeNoticeRepo) List(_ context.Context, status *domain.NoticeStatus, limit int) ([]models.Notice, error) {
	out := []models.Notice{}
	for _, n := range r.notices {
		if status == nil || n.Status == *status {
			out = append(out, n)
		}
	}
	sortKey := func(n models.Notice) time.Time {
		if n.PublishedAt != nil {
			return *n.PublishedAt
		}
		return n.CreatedAt
	}
	sort.SliceStable(out, func(i, j int) bool { return sortKey(out[i]).After(sortKey(out[j])) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memStorage is an in-memory ObjectStorage
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Put(_ context.Context, bucket, objectPath string, r io.Reader) (int64, error) {
	if m.putErr != nil {
		return 0, m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	m.objects[bucket+"/"+objectPath] = data
	m.mu.Unlock()
	return int64(len(data)), nil
}

func (m *memStorage) Delete(_ context.Context, bucket, objectPath string) error {
	m.mu.Lock()
	delete(m.objects, bucket+"/"+objectPath)
	m.mu.Unlock()
	return nil
}

func (m *memStorage) Open(_ context.Context, bucket, objectPath string) (*filestorage.Object, error) {
	m.mu.Lock()
	data, ok := m.objects[bucket+"/"+objectPath]
	m.mu.Unlock()
	if !ok {
		return nil, filestorage.ErrObjectNotFound
	}
	return &filestorage.Object{
		ReadSeekCloser: nopSeekCloser{bytes.NewReader(data)},
		Name:           objectPath,
		Size:           int64(len(data)),
		ModTime:        time.Now(),
	}, nil
}

func (m *memStorage) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }

// recordingMailer captures reset mails
type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	links []string
	err   error
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, toEmail, _ string, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail)
	m.links = append(m.links, resetLink)
	return m.err
}

var errBoom = errors.New("boom")
