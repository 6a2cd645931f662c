package models

import (
	"encoding/json"
	"strings"
	"time"
)

// SkillList is an ordered list of skill names. It accepts either a JSON
// array or a single comma-separated string on input, trimming entries and
// dropping empties in both cases.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = SplitSkills(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	out := make(SkillList, 0, len(list))
	for _, item := range list {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*s = out
	return nil
}

// SplitSkills splits a comma-separated skill string into a trimmed list.
func SplitSkills(raw string) SkillList {
	parts := strings.Split(raw, ",")
	out := make(SkillList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SocialLinks holds the optional per-platform profile URLs.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Merge overwrites each platform link with the incoming value when it is
// non-empty, leaving the rest untouched.
func (s *SocialLinks) Merge(in SocialLinks) {
	if in.Youtube != "" {
		s.Youtube = in.Youtube
	}
	if in.Twitter != "" {
		s.Twitter = in.Twitter
	}
	if in.Facebook != "" {
		s.Facebook = in.Facebook
	}
	if in.Linkedin != "" {
		s.Linkedin = in.Linkedin
	}
	if in.Instagram != "" {
		s.Instagram = in.Instagram
	}
}

// Profile is the extended developer profile, one per user.
type Profile struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"user"`
	Company        string      `json:"company"`
	Website        string      `json:"website"`
	Location       string      `json:"location"`
	Status         string      `gorm:"not null" json:"status"`
	Skills         SkillList   `gorm:"serializer:json" json:"skills"`
	Bio            string      `json:"bio"`
	GithubUsername string      `json:"githubusername"`
	Social         SocialLinks `gorm:"serializer:json" json:"social"`
	// Experience and Education are kept newest-inserted-first; repositories
	// load them ordered by id descending so head insertion holds.
	Experience []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education  []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Experience is a single work-history entry embedded in a profile.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is a single education entry embedded in a profile.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}
