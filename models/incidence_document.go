package models

import "time"

// IncidenceDocument records a client's response (file or text) to an
// incidence raised on a service. It does not gate the automatic status
// progression; staff review it outside the automatic flow.
type IncidenceDocument struct {
	ID        int       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ServiceID int     `gorm:"not null;index" json:"service_id"`
	Service   Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	// Optional documentation type the response relates to
	DocumentationTypeID *int               `json:"documentation_type_id,omitempty"`
	DocumentationType   *DocumentationType `gorm:"foreignKey:DocumentationTypeID" json:"documentation_type,omitempty"`

	Link        *string `json:"link,omitempty"`
	ContentText *string `gorm:"type:text" json:"content_text,omitempty"`

	FileOriginalName string `json:"file_original_name,omitempty"`
	FilePath         string `json:"-"`
	FileSize         int64  `json:"file_size,omitempty"`
	MimeType         string `json:"mime_type,omitempty"`
}

// TableName specifies the table name for IncidenceDocument model
func (IncidenceDocument) TableName() string {
	return "incidence_documents"
}
