package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is an anonymous comment on an incident.
//
// ParentID is nil for top-level comments. Every reply, however deep its
// display nesting, stores the id of its top-level ancestor in ParentID;
// ReplyToID holds the comment actually being replied to. The reply tree is
// rebuilt from ReplyToID on every fetch.
type Comment struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	IncidentID  string    `gorm:"type:uuid;not null;index" json:"incident_id"`
	Incident    Incident  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID    *string   `gorm:"type:uuid;index" json:"parent_id"`
	ReplyToID   *string   `gorm:"type:uuid" json:"reply_to_id"`
	CommentText string    `gorm:"type:text;not null" json:"comment_text"`
	UserColor   string    `json:"user_color"`
	Votes       int       `gorm:"default:0" json:"votes"`
	CreatedAt   time.Time `json:"created_at"`

	// Derived on fetch, never stored.
	Replies []*Comment `gorm:"-" json:"replies"`
}

func (Comment) TableName() string {
	return "incident_comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
