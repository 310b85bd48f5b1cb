package quote

import (
	"path/filepath"
	"slices"
	"strings"
)

type Service struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
}

type Material struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Types  []string `json:"types"`
	Colors []string `json:"colors"`
}

// Catalog is everything the quote form offers to choose from.
type Catalog struct {
	Services       []Service  `json:"services"`
	Materials      []Material `json:"materials"`
	DesignUnits    []string   `json:"designUnits"`
	FileExtensions []string   `json:"fileExtensions"`
}

var DefaultCatalog = Catalog{
	Services: []Service{
		{ID: "cnc", Title: "CNC machining", Subtitle: "Milling (3-axis, 5-axis), Turning", Image: "https://images.unsplash.com/photo-1565191999001-551c187427bb?w=100&h=100&fit=crop"},
		{ID: "sheet-metal", Title: "Sheet metal", Subtitle: "Laser cutting, Bending", Image: "https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?w=100&h=100&fit=crop"},
		{ID: "3d-printing", Title: "3D printing", Subtitle: "FDM, SLA, SLS, MJF, DMLS, Polyjet", Image: "https://images.unsplash.com/photo-1581094794329-c8112a89af12?w=100&h=100&fit=crop"},
		{ID: "injection-molding", Title: "Injection molding", Subtitle: "Vacuum casting", Image: "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=100&h=100&fit=crop"},
	},
	Materials: []Material{
		{ID: "aluminum", Label: "Aluminum",
			Types:  []string{"Aluminum 5052", "Aluminum 6061", "Aluminum 7075"},
			Colors: []string{"Silver", "Black Anodized", "Blue Anodized", "Red Anodized", "Natural"}},
		{ID: "stainless-steel", Label: "Stainless Steel",
			Types:  []string{"304 Stainless Steel", "316 Stainless Steel", "17-4 PH Stainless Steel"},
			Colors: []string{"Brushed", "Polished", "Bead Blasted"}},
		{ID: "mild-steel", Label: "Mild Steel",
			Types:  []string{"A36 Mild Steel", "1018 Mild Steel", "1045 Carbon Steel"},
			Colors: []string{"Black Oxide", "Zinc Plated", "Powder Coated Black", "Powder Coated White"}},
		{ID: "copper", Label: "Copper",
			Types:  []string{"C110 Copper", "C145 Copper", "Brass C360"},
			Colors: []string{"Natural Copper", "Polished", "Antiqued"}},
		{ID: "pmma-acrylic", Label: "PMMA (Acrylic)",
			Types:  []string{"Cast Acrylic", "Extruded Acrylic"},
			Colors: []string{"Clear", "White", "Black", "Red", "Blue", "Green", "Yellow"}},
		{ID: "carbon-fiber", Label: "Carbon Fiber",
			Types:  []string{"3K Carbon Fiber", "6K Carbon Fiber", "12K Carbon Fiber"},
			Colors: []string{"Matte", "Glossy"}},
		{ID: "abs", Label: "ABS",
			Types:  []string{"Standard ABS", "High Impact ABS", "Flame Retardant ABS"},
			Colors: []string{"White", "Black", "Red", "Blue", "Yellow", "Green", "Natural"}},
	},
	DesignUnits:    []string{"mm", "inch", "cm"},
	FileExtensions: []string{".step", ".stp", ".x_t", ".iges", ".igs", ".sldprt", ".dwg", ".dxf", ".pdf"},
}

func (c Catalog) service(id string) bool {
	return slices.ContainsFunc(c.Services, func(s Service) bool { return s.ID == id })
}

func (c Catalog) material(id string) (Material, bool) {
	for _, m := range c.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

func (c Catalog) acceptsFile(name string) bool {
	return slices.Contains(c.FileExtensions, strings.ToLower(filepath.Ext(name)))
}
