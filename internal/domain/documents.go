package domain

import "strings"

// DocumentType is a catalog tag naming which paper a document record holds.
type DocumentType string

// DocumentTypeInfo pairs a tag with its display label.
type DocumentTypeInfo struct {
	Type  DocumentType `json:"type"`
	Label string       `json:"label"`
}

var documentTypes = []DocumentTypeInfo{
	{Type: "fc-arc", Label: "FC / ARC Acknowledgement Receipt"},
	{Type: "jee-mhtcet", Label: "JEE / MHT-CET Score Card"},
	{Type: "ssc-hsc", Label: "SSC & HSC Marksheets"},
	{Type: "leaving", Label: "School / College Leaving Certificate"},
	{Type: "domicile", Label: "Domicile Certificate"},
	{Type: "nationality", Label: "Nationality Certificate"},
	{Type: "income", Label: "Income Certificate"},
	{Type: "photograph", Label: "Passport Size Photograph"},
	{Type: "parents-nationality", Label: "Parents' Nationality / Domicile"},
	{Type: "aadhaar", Label: "Aadhaar Card"},
	{Type: "caste", Label: "Caste Certificate"},
	{Type: "caste-validity", Label: "Caste Validity Certificate"},
	{Type: "ncl", Label: "Non-Creamy Layer Certificate"},
}

// DocumentTypes returns the catalog in display order.
func DocumentTypes() []DocumentTypeInfo {
	out := make([]DocumentTypeInfo, len(documentTypes))
	copy(out, documentTypes)
	return out
}

// IsKnownDocumentType reports whether t is in the catalog.
func IsKnownDocumentType(t string) bool {
	for _, d := range documentTypes {
		if string(d.Type) == t {
			return true
		}
	}
	return false
}

// ReviewStatus is the admin verdict on an uploaded document.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewReupload ReviewStatus = "re-upload"
)

// IsAdminSettable reports whether an admin may move a document into s.
// Pending is reserved for fresh uploads.
func (s ReviewStatus) IsAdminSettable() bool {
	return s == ReviewApproved || s == ReviewReupload
}

// Role is a caller classification stored in user_roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// NoticeStatus is the publication state of a notice.
type NoticeStatus string

const (
	NoticeDraft     NoticeStatus = "draft"
	NoticePublished NoticeStatus = "published"
)

// AlertType classifies a student alert.
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertAction  AlertType = "action"
)

// ExtensionFor returns the file extension used when storing an object of the
// given MIME type, falling back to the original filename's extension.
func ExtensionFor(mimeType, filename string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "application/pdf":
		return "pdf"
	}
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return strings.ToLower(filename[i+1:])
	}
	return "bin"
}
