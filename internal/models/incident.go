package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Incident is a single campus-safety report. Rows are populated by an
// external ingestion job; the app only reads them and bumps the two counters.
type Incident struct {
	ID                  string     `gorm:"type:uuid;primaryKey" json:"id"`
	ReportNumber        string     `gorm:"uniqueIndex;not null" json:"report_number"`
	IncidentType        string     `gorm:"not null;index" json:"incident_type"`
	IncidentLocation    string     `gorm:"not null" json:"incident_location"`
	IncidentDescription string     `gorm:"type:text" json:"incident_description"`
	Disposition         string     `json:"disposition"`
	DateReported        string     `json:"date_reported"`
	TimeReported        time.Time  `gorm:"not null;index" json:"time_reported"`
	TimeSecured         *time.Time `json:"time_secured"`
	TimeOfOccurrence    *time.Time `json:"time_of_occurrence"`
	ViewCount           int        `gorm:"default:0" json:"view_count"`
	ShareCount          int        `gorm:"default:0" json:"share_count"`
	CreatedAt           time.Time  `json:"created_at"`

	// Filled from the campus location table at query time, not stored.
	Lat float64 `gorm:"-" json:"lat"`
	Lng float64 `gorm:"-" json:"lng"`
}

func (Incident) TableName() string {
	return "crime_incidents"
}

func (i *Incident) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
