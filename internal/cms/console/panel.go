package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/cms/resource"
)

// panel is the tab-independent view of one resource controller.
type panel interface {
	name() string
	list(ctx context.Context) error
	submit(ctx context.Context) error
	remove(ctx context.Context, id string, confirm resource.Confirmer) error
	edit(id string) error
	beginCreate()
	cancel()
	visible() bool
	editingID() string
	set(field, value string) error
	media() (*domain.ProjectDraft, bool)
	messages() (created, updated, deleted, empty string)
	busy() bool
	render(w io.Writer)
	renderDraft(w io.Writer) error
}

type typedPanel[T resource.Item, D resource.Draft] struct {
	c        *resource.Controller[T, D]
	setField func(d *D, field, value string) error
	line     func(item T) string
	mediaOf  func(d *D) *domain.ProjectDraft
}

func (p *typedPanel[T, D]) name() string                   { return p.c.Kind().Name }
func (p *typedPanel[T, D]) list(ctx context.Context) error { return p.c.List(ctx) }
func (p *typedPanel[T, D]) submit(ctx context.Context) error {
	return p.c.Submit(ctx)
}
func (p *typedPanel[T, D]) remove(ctx context.Context, id string, confirm resource.Confirmer) error {
	return p.c.Delete(ctx, id, confirm)
}
func (p *typedPanel[T, D]) edit(id string) error { return p.c.Edit(id) }
func (p *typedPanel[T, D]) beginCreate()         { p.c.Form().BeginCreate() }
func (p *typedPanel[T, D]) cancel()              { p.c.Form().Cancel() }
func (p *typedPanel[T, D]) visible() bool        { return p.c.Form().Visible() }
func (p *typedPanel[T, D]) editingID() string    { return p.c.Form().EditingID() }
func (p *typedPanel[T, D]) busy() bool           { return p.c.Busy() }

func (p *typedPanel[T, D]) set(field, value string) error {
	return p.setField(p.c.Form().Draft(), field, value)
}

func (p *typedPanel[T, D]) media() (*domain.ProjectDraft, bool) {
	if p.mediaOf == nil {
		return nil, false
	}
	return p.mediaOf(p.c.Form().Draft()), true
}

func (p *typedPanel[T, D]) messages() (string, string, string, string) {
	k := p.c.Kind()
	return k.Created, k.Updated, k.Deleted, k.Empty
}

func (p *typedPanel[T, D]) render(w io.Writer) {
	items := p.c.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, p.c.Kind().Empty)
		return
	}
	for _, item := range items {
		fmt.Fprintln(w, p.line(item))
	}
}

func (p *typedPanel[T, D]) renderDraft(w io.Writer) error {
	raw, err := json.MarshalIndent(p.c.Form().Draft(), "", "  ")
	if err != nil {
		return err
	}
	mode := "new"
	if id := p.c.Form().EditingID(); id != "" {
		mode = "editing " + id
	}
	fmt.Fprintf(w, "%s (%s)\n%s\n", strings.TrimSuffix(p.name(), "s"), mode, raw)
	return nil
}

func publishedLabel(published bool) string {
	if published {
		return "published"
	}
	return "draft"
}

func parseBool(value string) (bool, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, domain.NewValidationError(fmt.Sprintf("%q is not yes or no", value))
	}
	return b, nil
}

func newTestimonialPanel(c *resource.Controller[domain.Testimonial, domain.TestimonialDraft]) panel {
	return &typedPanel[domain.Testimonial, domain.TestimonialDraft]{
		c: c,
		setField: func(d *domain.TestimonialDraft, field, value string) error {
			switch field {
			case "name":
				d.Name = value
			case "position":
				d.Position = value
			case "company":
				d.Company = value
			case "content":
				d.Content = value
			case "image":
				d.Image = value
			case "rating":
				d.SetRating(value)
			case "published":
				b, err := parseBool(value)
				if err != nil {
					return err
				}
				d.IsPublished = b
			default:
				return domain.NewValidationError(fmt.Sprintf("Unknown field %q", field))
			}
			return nil
		},
		line: func(t domain.Testimonial) string {
			who := t.Name
			if role := strings.Trim(t.Position+", "+t.Company, ", "); role != "" {
				who += " (" + role + ")"
			}
			return fmt.Sprintf("[%s] %s %s %s", t.ID, who, strings.Repeat("*", t.Rating), publishedLabel(t.IsPublished))
		},
	}
}

func newProjectPanel(c *resource.Controller[domain.Project, domain.ProjectDraft]) panel {
	return &typedPanel[domain.Project, domain.ProjectDraft]{
		c: c,
		setField: func(d *domain.ProjectDraft, field, value string) error {
			switch field {
			case "name":
				d.Name = value
			case "client":
				d.Client = value
			case "request":
				d.Request = value
			case "difficulties":
				d.Difficulties = value
			case "thumbnail":
				d.Thumbnail = value
			case "published":
				b, err := parseBool(value)
				if err != nil {
					return err
				}
				d.IsPublished = b
			default:
				return domain.NewValidationError(fmt.Sprintf("Unknown field %q", field))
			}
			return nil
		},
		line: func(p domain.Project) string {
			return fmt.Sprintf("[%s] %s - %s (%d media) %s", p.ID, p.Name, p.Client, len(p.Media), publishedLabel(p.IsPublished))
		},
		mediaOf: func(d *domain.ProjectDraft) *domain.ProjectDraft { return d },
	}
}
