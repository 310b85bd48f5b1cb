package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/cms/resource"
	"github.com/fonovalabs/fonova-web/internal/cms/session"
)

type Tab string

const (
	TabTestimonials Tab = "testimonials"
	TabProjects     Tab = "projects"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabTestimonials, TabProjects:
		return Tab(s), nil
	}
	return "", domain.NewValidationError(fmt.Sprintf("Unknown tab %q (testimonials or projects)", s))
}

// Notice is the single error or success banner of the dashboard.
type Notice struct {
	Error   string
	Success string
}

// Dashboard is the authenticated view: both collections and the active tab.
type Dashboard struct {
	Session      *session.Controller
	Testimonials *resource.Controller[domain.Testimonial, domain.TestimonialDraft]
	Projects     *resource.Controller[domain.Project, domain.ProjectDraft]

	panels map[Tab]panel
	tab    Tab
	notice Notice
}

func NewDashboard(sess *session.Controller, c *client.Client) *Dashboard {
	testimonials := resource.NewController(resource.Testimonials,
		client.NewResource[domain.Testimonial](c, resource.Testimonials.Path), sess)
	projects := resource.NewController(resource.Projects,
		client.NewResource[domain.Project](c, resource.Projects.Path), sess)

	d := &Dashboard{
		Session:      sess,
		Testimonials: testimonials,
		Projects:     projects,
		panels: map[Tab]panel{
			TabTestimonials: newTestimonialPanel(testimonials),
			TabProjects:     newProjectPanel(projects),
		},
		tab: TabTestimonials,
	}
	sess.OnInvalidated(func(string) { d.resetForms() })
	return d
}

func (d *Dashboard) Tab() Tab {
	return d.tab
}

func (d *Dashboard) Notice() Notice {
	return d.notice
}

func (d *Dashboard) active() panel {
	return d.panels[d.tab]
}

// Open lists the active tab, as right after login.
func (d *Dashboard) Open(ctx context.Context) error {
	d.notice = Notice{}
	return d.report(d.active().list(ctx))
}

// SwitchTab resets both forms and lists the new tab.
func (d *Dashboard) SwitchTab(ctx context.Context, tab Tab) error {
	d.resetForms()
	d.tab = tab
	d.notice = Notice{}
	return d.report(d.active().list(ctx))
}

func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.report(d.active().list(ctx))
}

func (d *Dashboard) BeginCreate() {
	d.active().beginCreate()
}

func (d *Dashboard) BeginEdit(id string) error {
	return d.report(d.active().edit(id))
}

func (d *Dashboard) Cancel() {
	d.active().cancel()
}

func (d *Dashboard) SetField(field, value string) error {
	if !d.active().visible() {
		return d.report(errNoForm)
	}
	return d.report(d.active().set(field, value))
}

// Media returns the project draft for media edits when the form is open on
// the projects tab.
func (d *Dashboard) Media() (*domain.ProjectDraft, error) {
	draft, ok := d.active().media()
	if !ok {
		return nil, d.report(domain.NewValidationError("Media is only available on projects"))
	}
	if !d.active().visible() {
		return nil, d.report(errNoForm)
	}
	return draft, nil
}

// Save submits the open form.
func (d *Dashboard) Save(ctx context.Context) error {
	p := d.active()
	if !p.visible() {
		return d.report(errNoForm)
	}
	created, updated, _, _ := p.messages()
	msg := created
	if p.editingID() != "" {
		msg = updated
	}
	return d.mutated(p.submit(ctx), msg)
}

func (d *Dashboard) Delete(ctx context.Context, id string, confirm resource.Confirmer) error {
	p := d.active()
	err := p.remove(ctx, id, confirm)
	if errors.Is(err, domain.ErrCancelled) {
		return err
	}
	_, _, deleted, _ := p.messages()
	return d.mutated(err, deleted)
}

// mutated sets the notice after a save or delete. When the backend accepted
// the change but the list could not be re-fetched, both banners are set.
func (d *Dashboard) mutated(err error, success string) error {
	switch {
	case err == nil:
		d.notice = Notice{Success: success}
	case errors.Is(err, domain.ErrRefreshFailed):
		d.notice = Notice{Success: success, Error: domain.Message(err)}
	default:
		return d.report(err)
	}
	return err
}

func (d *Dashboard) FormVisible() bool {
	return d.active().visible()
}

func (d *Dashboard) Busy() bool {
	return d.active().busy()
}

// Render writes the active list, or its empty message.
func (d *Dashboard) Render(w io.Writer) {
	d.active().render(w)
}

func (d *Dashboard) RenderDraft(w io.Writer) error {
	if !d.active().visible() {
		return d.report(errNoForm)
	}
	return d.active().renderDraft(w)
}

var errNoForm = domain.NewValidationError("No form open, use new or edit first")

// report records err as the error notice and returns it.
func (d *Dashboard) report(err error) error {
	if err == nil {
		return nil
	}
	d.notice = Notice{Error: domain.Message(err)}
	return err
}

func (d *Dashboard) resetForms() {
	for _, p := range d.panels {
		p.cancel()
	}
}
