package resource

import (
	"testing"

	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_Lifecycle(t *testing.T) {
	f := NewForm(Projects)
	assert.False(t, f.Visible())

	f.BeginCreate()
	assert.True(t, f.Visible())
	assert.Empty(t, f.EditingID())
	assert.NotNil(t, f.Draft().Media)
	assert.True(t, f.Draft().IsPublished)

	item := domain.Project{
		ID:    "p1",
		Name:  "Gear",
		Media: []domain.Media{{Type: domain.MediaVideo, URL: "v.mp4"}},
	}
	f.BeginEdit(item)
	assert.Equal(t, "p1", f.EditingID())
	assert.Equal(t, "Gear", f.Draft().Name)

	require.NoError(t, f.Draft().UpdateMediaItem(0, "url", "w.mp4"))
	assert.Equal(t, "v.mp4", item.Media[0].URL, "editing the draft leaves the item alone")

	f.Cancel()
	assert.False(t, f.Visible())
	assert.Empty(t, f.EditingID())
	assert.Empty(t, f.Draft().Name)
}

func TestForm_TestimonialDefaults(t *testing.T) {
	f := NewForm(Testimonials)
	f.BeginEdit(domain.Testimonial{ID: "t1", Name: "A", Rating: 3})
	f.BeginCreate()

	assert.Equal(t, 5, f.Draft().Rating)
	assert.True(t, f.Draft().IsPublished)
	assert.Empty(t, f.Draft().Name)
}
