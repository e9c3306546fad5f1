package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name      string
		stored    *string
		wantName  string
		wantIndex int
	}{
		{"nil resolves to first", nil, "Registration for Counselling (MHT-CET 2026)", 0},
		{"empty resolves to first", strPtr(""), "Registration for Counselling (MHT-CET 2026)", 0},
		{"legacy label resolves to first", strPtr("Account Created"), "Registration for Counselling (MHT-CET 2026)", 0},
		{"near miss resolves to first", strPtr("seat allotment"), "Registration for Counselling (MHT-CET 2026)", 0},
		{"seat allotment", strPtr("Seat Allotment"), "Seat Allotment", 4},
		{"last stage", strPtr("Commencement of Course"), "Commencement of Course", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, idx := ResolveStage(tt.stored)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantIndex, idx)
		})
	}
}

func TestStageCatalog(t *testing.T) {
	names := StageNames()
	assert.Len(t, names, 8)
	assert.Equal(t, 8, StageCount())
	for i, n := range names {
		_, idx := ResolveStage(&n)
		assert.Equal(t, i, idx, n)
		assert.True(t, IsKnownStage(n))
	}
	assert.False(t, IsKnownStage("Account Created"))
}

func TestWhatNextFor(t *testing.T) {
	assert.Equal(t, "Await seat allotment results", WhatNextFor(4))
	assert.Equal(t, "Complete your registration for MHT-CET 2026 counselling", WhatNextFor(0))
	assert.Equal(t, DefaultWhatNext, WhatNextFor(-1))
	assert.Equal(t, DefaultWhatNext, WhatNextFor(8))
}

func TestDocumentCatalog(t *testing.T) {
	assert.Len(t, DocumentTypes(), 13)
	assert.True(t, IsKnownDocumentType("aadhaar"))
	assert.True(t, IsKnownDocumentType("caste-validity"))
	assert.False(t, IsKnownDocumentType("passport"))
}

func TestReviewStatus_IsAdminSettable(t *testing.T) {
	assert.True(t, ReviewApproved.IsAdminSettable())
	assert.True(t, ReviewReupload.IsAdminSettable())
	assert.False(t, ReviewPending.IsAdminSettable())
	assert.False(t, ReviewStatus("rejected").IsAdminSettable())
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "png", ExtensionFor("image/png", "scan.PNG"))
	assert.Equal(t, "jpg", ExtensionFor("image/jpeg", "scan.jpeg"))
	assert.Equal(t, "pdf", ExtensionFor("application/pdf", "form"))
	assert.Equal(t, "webp", ExtensionFor("image/webp", "x.WEBP"))
	assert.Equal(t, "bin", ExtensionFor("", "noext"))
}
