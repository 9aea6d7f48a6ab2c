package models

// DocumentationType represents a kind of document that can be requested for a
// service (e.g. "DNI del titular", "Escritura de la obra"). Reference data.
type DocumentationType struct {
	ID   int    `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// When true the document is supplied as free text instead of a file
	IsText bool `gorm:"default:false" json:"is_text"`
}

// TableName specifies the table name for DocumentationType model
func (DocumentationType) TableName() string {
	return "documentation_types"
}
