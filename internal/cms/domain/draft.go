package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const defaultRating = 5

// TestimonialDraft is the editable form buffer for a testimonial.
type TestimonialDraft struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Content     string `json:"content"`
	Rating      int    `json:"rating"`
	Image       string `json:"image"`
	IsPublished bool   `json:"isPublished"`
}

func NewTestimonialDraft() TestimonialDraft {
	return TestimonialDraft{Rating: defaultRating, IsPublished: true}
}

func TestimonialDraftFrom(t Testimonial) TestimonialDraft {
	return TestimonialDraft{
		Name:        t.Name,
		Position:    t.Position,
		Company:     t.Company,
		Content:     t.Content,
		Rating:      t.Rating,
		Image:       t.Image,
		IsPublished: t.IsPublished,
	}
}

func (d TestimonialDraft) Validate() error {
	if d.Name == "" || d.Content == "" {
		return NewValidationError("Name and content are required")
	}
	return nil
}

// SetRating parses rating input; anything unparsable falls back to 5 and
// values are clamped to 1..5.
func (d *TestimonialDraft) SetRating(input string) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n == 0 {
		d.Rating = defaultRating
		return
	}
	d.Rating = min(max(n, 1), 5)
}

// ProjectDraft is the editable form buffer for a project.
type ProjectDraft struct {
	Name         string  `json:"name"`
	Client       string  `json:"client"`
	Request      string  `json:"request"`
	Difficulties string  `json:"difficulties"`
	Thumbnail    string  `json:"thumbnail"`
	Media        []Media `json:"media"`
	IsPublished  bool    `json:"isPublished"`
}

func NewProjectDraft() ProjectDraft {
	return ProjectDraft{Media: []Media{}, IsPublished: true}
}

func ProjectDraftFrom(p Project) ProjectDraft {
	media := make([]Media, len(p.Media))
	copy(media, p.Media)
	return ProjectDraft{
		Name:         p.Name,
		Client:       p.Client,
		Request:      p.Request,
		Difficulties: p.Difficulties,
		Thumbnail:    p.Thumbnail,
		Media:        media,
		IsPublished:  p.IsPublished,
	}
}

func (d ProjectDraft) Validate() error {
	if d.Name == "" || d.Client == "" || d.Request == "" {
		return NewValidationError("Name, client, and request are required")
	}
	return nil
}

// AddMediaItem appends a blank image entry.
func (d *ProjectDraft) AddMediaItem() {
	d.Media = append(d.Media, Media{Type: MediaImage})
}

// UpdateMediaItem sets field ("type" or "url") of the entry at index in place.
func (d *ProjectDraft) UpdateMediaItem(index int, field, value string) error {
	if index < 0 || index >= len(d.Media) {
		return fmt.Errorf("%w: %d", ErrMediaIndex, index)
	}
	switch field {
	case "type":
		mt := MediaType(value)
		if !mt.Valid() {
			return NewValidationError("Media type must be image or video")
		}
		d.Media[index].Type = mt
	case "url":
		d.Media[index].URL = value
	default:
		return NewValidationError(fmt.Sprintf("Unknown media field %q", field))
	}
	return nil
}

// RemoveMediaItem drops the entry at index, keeping the order of the rest.
func (d *ProjectDraft) RemoveMediaItem(index int) error {
	if index < 0 || index >= len(d.Media) {
		return fmt.Errorf("%w: %d", ErrMediaIndex, index)
	}
	d.Media = append(d.Media[:index:index], d.Media[index+1:]...)
	return nil
}
