package services

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/futureedge/counselling/internal/app/models/dto"
	"github.com/futureedge/counselling/internal/domain"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileFixture struct {
	files     *FileService
	documents *DocumentService
	forms     *FormService
	students  *fakeStudentRepo
	formRepo  *fakeFormRepo
	storage   *memStorage
}

func newFileFixture() *fileFixture {
	students := newFakeStudentRepo()
	docs := newFakeDocumentRepo()
	formRepo := newFakeFormRepo()
	storage := newMemStorage()
	signer := auth.NewURLSigner("test-secret", "counselling-test", "http://localhost:8080")

	files := NewFileService(docs, formRepo, storage, signer, FileAccessConfig{
		DocumentsBucket: docsBucket,
		FormsBucket:     "student-forms",
		DocumentURLTTL:  time.Hour,
		FormURLTTL:      5 * time.Minute,
	})
	return &fileFixture{
		files:     files,
		documents: NewDocumentService(docs, students, storage, docsBucket, zerolog.Nop()),
		forms:     NewFormService(formRepo, students, storage, files, zerolog.Nop()),
		students:  students,
		formRepo:  formRepo,
		storage:   storage,
	}
}

func tokenOf(t *testing.T, signed string) string {
	t.Helper()
	u, err := url.Parse(signed)
	require.NoError(t, err)
	token, err := url.PathUnescape(path.Base(u.Path))
	require.NoError(t, err)
	return token
}

func TestSignedURL_Ownership(t *testing.T) {
	f := newFileFixture()
	ctx := context.Background()
	a := f.students.add("FE-001", "Welcome@123", true)
	b := f.students.add("FE-002", "Welcome@123", true)

	doc, err := f.documents.Upload(ctx, a.ID, "aadhaar", pngUpload("a-scan"), studentLimits)
	require.NoError(t, err)

	_, err = f.files.SignedURL(ctx, Caller{ID: b.ID, Role: domain.RoleStudent}, doc.FilePath, "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	own, err := f.files.SignedURL(ctx, Caller{ID: a.ID, Role: domain.RoleStudent}, doc.FilePath, FileKindDocument)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(own.SignedURL, "http://localhost:8080/api/v1/files/"))
	assert.WithinDuration(t, time.Now().Add(time.Hour), own.ExpiresAt, time.Minute)

	_, err = f.files.SignedURL(ctx, Caller{ID: uuid.New(), Role: domain.RoleAdmin}, doc.FilePath, "")
	require.NoError(t, err)

	_, err = f.files.SignedURL(ctx, Caller{ID: a.ID, Role: domain.RoleStudent}, a.ID.String()+"/missing.png", "")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	obj, err := f.files.Open(ctx, tokenOf(t, own.SignedURL))
	require.NoError(t, err)
	defer obj.Close()
	body, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "a-scan", string(body))
}

func TestOpen_RejectsBadToken(t *testing.T) {
	f := newFileFixture()
	_, err := f.files.Open(context.Background(), "garbage")
	assert.Error(t, err)
}

func TestForms_UploadDownloadDelete(t *testing.T) {
	f := newFileFixture()
	ctx := context.Background()
	a := f.students.add("FE-001", "Welcome@123", true)
	b := f.students.add("FE-002", "Welcome@123", true)
	admin := uuid.New()
	adminLimits := UploadLimits{MaxBytes: 10 << 20, AllowedTypes: []string{"application/pdf"}}

	file := FileUpload{Name: "CAP Round 1 (final).pdf", MimeType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")}
	form, err := f.forms.Upload(ctx, a.ID, admin, dto.UploadFormRequest{FormName: "Option Form", ExamType: "MHT-CET", Round: "CAP-I"}, file, adminLimits)
	require.NoError(t, err)
	assert.Equal(t, "CAP_Round_1_final_.pdf", form.FileName)
	assert.True(t, strings.HasPrefix(form.FilePath, a.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(form.FilePath, "_CAP_Round_1_final_.pdf"))
	require.NotNil(t, form.Round)

	listed, err := f.forms.ListForStudent(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	link, err := f.forms.DownloadURL(ctx, Caller{ID: a.ID, Role: domain.RoleStudent}, form.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), link.ExpiresAt, time.Minute)

	_, err = f.forms.DownloadURL(ctx, Caller{ID: b.ID, Role: domain.RoleStudent}, form.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.files.SignedURL(ctx, Caller{ID: b.ID, Role: domain.RoleStudent}, form.FilePath, FileKindForm)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.forms.Delete(ctx, form.ID))
	assert.Empty(t, f.storage.keys())
	assert.ErrorIs(t, f.forms.Delete(ctx, form.ID), apperrors.ErrFormNotFound)
}

func TestForms_RecordFailureRemovesObject(t *testing.T) {
	f := newFileFixture()
	a := f.students.add("FE-001", "Welcome@123", true)
	f.formRepo.createErr = errBoom
	limits := UploadLimits{MaxBytes: 1 << 20, AllowedTypes: []string{"application/pdf"}}

	file := FileUpload{Name: "f.pdf", MimeType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")}
	_, err := f.forms.Upload(context.Background(), a.ID, uuid.New(), dto.UploadFormRequest{FormName: "F", ExamType: "JEE"}, file, limits)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.storage.keys())
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "my_form.pdf", SanitizeFilename(`C:\Users\me\my form.pdf`))
	assert.Equal(t, "form", SanitizeFilename("..."))
}
