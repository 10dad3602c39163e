package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Job struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"column:title;type:text" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Company     string `gorm:"column:company;type:text" json:"company"`
	Location    string `gorm:"column:location;type:text" json:"location"`
	Category    string `gorm:"column:category;type:text" json:"category"`

	Tags pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`

	// JSONB (salary range, perks, anything the posting form adds later)
	Extras datatypes.JSON `gorm:"column:extras;type:jsonb" json:"extras,omitempty"`

	// PostedBy is the employer user id; applications derive their
	// employer party from it.
	PostedBy string `gorm:"column:posted_by;type:uuid;index" json:"posted_by"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Job) TableName() string { return "jobs" }
