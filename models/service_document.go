package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Document status ids (fixed row ids in the document_statuses table - must
// remain stable, the completion check depends on them)
const (
	DocumentStatusPending  = 1 // Uploaded, awaiting staff review
	DocumentStatusRejected = 2 // Rejected, client must re-upload
	DocumentStatusProvided = 3 // Aportado: accepted, satisfies the requirement
)

// DocumentStatus represents the review state of an uploaded document.
// Reference data.
type DocumentStatus struct {
	ID   int    `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName specifies the table name for DocumentStatus model
func (DocumentStatus) TableName() string {
	return "document_statuses"
}

// ServiceDocument represents an uploaded file or text blob satisfying a
// documentation requirement for a service. Re-uploads update the existing row
// for the same documentation type.
type ServiceDocument struct {
	ID        int            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ServiceID int     `gorm:"not null;index:idx_service_doc" json:"service_id"`
	Service   Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	DocumentationTypeID int               `gorm:"not null;index:idx_service_doc" json:"documentation_type_id"`
	DocumentationType   DocumentationType `gorm:"foreignKey:DocumentationTypeID" json:"documentation_type,omitempty"`

	DocumentStatusID int            `gorm:"not null;default:1" json:"document_status_id"`
	DocumentStatus   DocumentStatus `gorm:"foreignKey:DocumentStatusID" json:"document_status,omitempty"`

	// Storage link for file documents, text content for text documents.
	// At least one of the two is set.
	Link        *string `json:"link,omitempty"`
	ContentText *string `gorm:"type:text" json:"content_text,omitempty"`

	// File metadata (empty for text documents)
	FileName         string `json:"file_name,omitempty"`
	FileOriginalName string `json:"file_original_name,omitempty"`
	FilePath         string `json:"-"` // Storage key, not exposed for security
	FileSize         int64  `json:"file_size,omitempty"`
	MimeType         string `json:"mime_type,omitempty"`
}

// TableName specifies the table name for ServiceDocument model
func (ServiceDocument) TableName() string {
	return "service_documents"
}

// IsProvided checks whether the document satisfies its requirement
func (d *ServiceDocument) IsProvided() bool {
	return d.DocumentStatusID == DocumentStatusProvided
}

// IsTextDocument checks whether the document was supplied as free text
func (d *ServiceDocument) IsTextDocument() bool {
	return d.ContentText != nil && *d.ContentText != ""
}

// GetDownloadURL returns a safe download URL for this document
func (d *ServiceDocument) GetDownloadURL() string {
	return "/api/services/" + strconv.Itoa(d.ServiceID) + "/documents/" + strconv.Itoa(d.ID) + "/download"
}
