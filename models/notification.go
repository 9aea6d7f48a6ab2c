package models

import "time"

// Notification types
const (
	NotificationTypeStatusChange = "STATUS_CHANGE"
	NotificationTypeIncidence    = "INCIDENCE"
	NotificationTypeUserAction   = "USER_ACTION" // Client must supply something
)

// Notification represents an in-app message about a construction's services
// (status advanced, incidence opened, user action required)
type Notification struct {
	ID        int       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ConstructionID int          `gorm:"not null;index" json:"construction_id"`
	Construction   Construction `gorm:"foreignKey:ConstructionID" json:"construction,omitempty"`

	// Optional service the notification refers to
	ServiceID *int     `gorm:"index" json:"service_id,omitempty"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	Type    string `gorm:"not null" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	ReadAt *time.Time `json:"read_at,omitempty"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}

// IsRead checks whether the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
