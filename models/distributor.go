package models

// Distributor represents a utility distribution company. Some document
// requirements only apply for a specific distributor. Reference data.
type Distributor struct {
	ID   int    `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName specifies the table name for Distributor model
func (Distributor) TableName() string {
	return "distributors"
}
