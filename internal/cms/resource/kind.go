package resource

import (
	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
)

// Item is a record the backend identifies by a string id.
type Item interface {
	ItemID() string
}

// Draft is the editable form of an Item.
type Draft interface {
	Validate() error
}

// Kind describes one managed collection: where it lives, how drafts are
// built and what the user is told.
type Kind[T Item, D Draft] struct {
	Name      string
	Path      string
	NewDraft  func() D
	DraftFrom func(T) D

	FetchFailed string
	SaveFailed  string // transport failure on create or update
	Created     string
	Updated     string
	Deleted     string
	Empty       string
}

var Testimonials = Kind[domain.Testimonial, domain.TestimonialDraft]{
	Name:        "testimonials",
	Path:        client.TestimonialsPath,
	NewDraft:    domain.NewTestimonialDraft,
	DraftFrom:   domain.TestimonialDraftFrom,
	FetchFailed: "Failed to fetch testimonials",
	SaveFailed:  "Failed to save testimonial",
	Created:     "Testimonial created!",
	Updated:     "Testimonial updated!",
	Deleted:     "Testimonial deleted!",
	Empty:       "No testimonials yet",
}

var Projects = Kind[domain.Project, domain.ProjectDraft]{
	Name:        "projects",
	Path:        client.ProjectsPath,
	NewDraft:    domain.NewProjectDraft,
	DraftFrom:   domain.ProjectDraftFrom,
	FetchFailed: "Failed to fetch projects",
	SaveFailed:  "Failed to save project",
	Created:     "Project created!",
	Updated:     "Project updated!",
	Deleted:     "Project deleted!",
	Empty:       "No projects yet",
}
