package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/fonovalabs/fonova-web/internal/cms/domain"
)

//go:embed brands/*.json
var brands embed.FS

var ErrUnknownSection = errors.New("unknown section")

// SectionNames is the page order of the landing page sections.
var SectionNames = []string{"hero", "about", "services", "advantages", "testimonials", "contact", "footer"}

// Document is the copy of one brand. Section bodies are passed through to
// clients as-is.
type Document struct {
	Brand        string                     `json:"brand"`
	Name         string                     `json:"name"`
	Sections     map[string]json.RawMessage `json:"sections"`
	Testimonials []domain.Testimonial       `json:"testimonials"`
}

// Load returns the bundled document for brand, or the document in file
// when file is set.
func Load(brand, file string) (*Document, error) {
	var (
		raw []byte
		err error
	)
	if file != "" {
		raw, err = os.ReadFile(file)
	} else {
		raw, err = brands.ReadFile("brands/" + brand + ".json")
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unknown brand %q (available: %v)", brand, Brands())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if doc.Testimonials == nil {
		doc.Testimonials = []domain.Testimonial{}
	}
	return &doc, nil
}

// Brands lists the bundled brand names.
func Brands() []string {
	entries, _ := brands.ReadDir("brands")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		out = append(out, name[:len(name)-len(".json")])
	}
	return out
}

func (d *Document) Validate() error {
	for _, name := range SectionNames {
		if _, ok := d.Sections[name]; !ok {
			return fmt.Errorf("content for %q is missing section %q", d.Brand, name)
		}
	}
	return nil
}

// Section returns the body of the named section.
func (d *Document) Section(name string) (json.RawMessage, error) {
	if !slices.Contains(SectionNames, name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	return d.Sections[name], nil
}

// PublishedTestimonials returns the static testimonials marked published.
func (d *Document) PublishedTestimonials() []domain.Testimonial {
	out := make([]domain.Testimonial, 0, len(d.Testimonials))
	for _, t := range d.Testimonials {
		if t.IsPublished {
			out = append(out, t)
		}
	}
	return out
}
