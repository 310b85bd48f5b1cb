package quote

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/fonovalabs/fonova-web/internal/cms/domain"
)

const (
	MsgService  = "Please select a service type."
	MsgFiles    = "Please upload at least one design file."
	MsgMaterial = "Please select a material."
	MsgColor    = "Please select a color."
	MsgContact  = "Please provide your email and mobile number."
	MsgEmail    = "Please provide a valid email address."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is a quote request as submitted by the site, before its files are
// opened.
type Form struct {
	Service        string
	Quantity       int
	DesignUnit     string
	Material       string
	MaterialType   string
	Color          string
	Specifications string
	Email          string
	Mobile         string
	FileNames      []string
}

// Normalize fills the defaults the form starts with.
func (f *Form) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Mobile = strings.TrimSpace(f.Mobile)
	if f.Quantity < 1 {
		f.Quantity = 1
	}
	if f.DesignUnit == "" {
		f.DesignUnit = "mm"
	}
}

// Validate checks f in the order the form reports problems, returning the
// first one.
func (c Catalog) Validate(f Form) error {
	if f.Service == "" {
		return domain.NewValidationError(MsgService)
	}
	if !c.service(f.Service) {
		return domain.NewValidationError(fmt.Sprintf("Unknown service %q.", f.Service))
	}
	if len(f.FileNames) == 0 {
		return domain.NewValidationError(MsgFiles)
	}
	for _, name := range f.FileNames {
		if !c.acceptsFile(name) {
			return domain.NewValidationError(fmt.Sprintf("File %q is not a supported design format.", name))
		}
	}
	if f.Material == "" {
		return domain.NewValidationError(MsgMaterial)
	}
	m, ok := c.material(f.Material)
	if !ok {
		return domain.NewValidationError(fmt.Sprintf("Unknown material %q.", f.Material))
	}
	if f.MaterialType != "" && !slices.Contains(m.Types, f.MaterialType) {
		return domain.NewValidationError(fmt.Sprintf("%q is not a type of %s.", f.MaterialType, m.Label))
	}
	if f.Color == "" {
		return domain.NewValidationError(MsgColor)
	}
	if !slices.Contains(m.Colors, f.Color) {
		return domain.NewValidationError(fmt.Sprintf("%q is not available for %s.", f.Color, m.Label))
	}
	if !slices.Contains(c.DesignUnits, f.DesignUnit) {
		return domain.NewValidationError(fmt.Sprintf("Unknown design unit %q.", f.DesignUnit))
	}
	if f.Email == "" || f.Mobile == "" {
		return domain.NewValidationError(MsgContact)
	}
	if !emailPattern.MatchString(f.Email) {
		return domain.NewValidationError(MsgEmail)
	}
	return nil
}
