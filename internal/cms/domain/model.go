package domain

import "time"

// Testimonial is a client quote shown on the public site.
type Testimonial struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Company     string    `json:"company"`
	Content     string    `json:"content"`
	Rating      int       `json:"rating"`
	Image       string    `json:"image"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t Testimonial) ItemID() string { return t.ID }

// Project is a showcase entry. The backend keys projects by "_id".
type Project struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Client       string    `json:"client"`
	Request      string    `json:"request"`
	Difficulties string    `json:"difficulties"`
	Thumbnail    string    `json:"thumbnail"`
	Media        []Media   `json:"media"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p Project) ItemID() string { return p.ID }

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func (m MediaType) Valid() bool {
	return m == MediaImage || m == MediaVideo
}

// Media is one entry of a project gallery.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}
