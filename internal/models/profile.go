package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SocialLinks is the fixed set of social profile URLs stored on a profile.
// Each value is normalized to an absolute HTTPS URL before persistence.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Experience is an embedded work-history entry on a profile. Entries are
// kept newest first and addressed by the ID assigned on insertion.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is an embedded education entry on a profile, ordered and
// addressed the same way as Experience.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// Profile is the developer profile attached one-to-one to a User. The
// experience and education histories live inside the row as ordered jsonb
// arrays, so a profile is read and written as a single document.
type Profile struct {
	ID             uint                            `gorm:"primaryKey" json:"id"`
	UserID         uint                            `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User                            `gorm:"foreignKey:UserID" json:"user"`
	Status         string                          `gorm:"not null" json:"status"`
	Company        string                          `json:"company,omitempty"`
	Location       string                          `json:"location,omitempty"`
	Website        string                          `json:"website,omitempty"`
	Bio            string                          `json:"bio,omitempty"`
	GithubUsername string                          `json:"githubusername,omitempty"`
	Skills         pq.StringArray                  `gorm:"type:text[]" json:"skills"`
	Social         datatypes.JSONType[SocialLinks] `gorm:"type:jsonb" json:"social"`
	Experience     datatypes.JSONSlice[Experience] `gorm:"type:jsonb" json:"experience"`
	Education      datatypes.JSONSlice[Education]  `gorm:"type:jsonb" json:"education"`
	CreatedAt      time.Time                       `json:"created_at"`
	UpdatedAt      time.Time                       `json:"updated_at"`
}
