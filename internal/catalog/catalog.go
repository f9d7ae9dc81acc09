// Package catalog holds the studio's package lineup. The lineup is
// static; pricing and session durations feed the cart, checkout and
// booking flows.
package catalog

type Package struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	Description   string   `json:"description"`
	Includes      []string `json:"includes"`
	DurationHours int      `json:"duration_hours"`
	Location      string   `json:"location"`
}

var packages = []Package{
	{
		ID:            "headshots",
		Title:         "PROFESSIONAL HEADSHOTS",
		Price:         850,
		Description:   "Perfect for LinkedIn, corporate websites, and professional materials",
		Includes:      []string{"1-hour studio session", "3 outfit changes", "25+ edited images", "High-res digital files", "Commercial usage rights"},
		DurationHours: 1,
		Location:      "Studio or office",
	},
	{
		ID:            "classic",
		Title:         "CLASSIC PORTRAITS",
		Price:         1200,
		Description:   "Timeless portrait photography with elegant lighting and composition",
		Includes:      []string{"2-hour session", "5 outfit changes", "40+ edited images", "Print release included", "Online gallery"},
		DurationHours: 2,
		Location:      "Studio",
	},
	{
		ID:            "creative",
		Title:         "CREATIVE PORTRAITS",
		Price:         1500,
		Description:   "Artistic and conceptual portraits that showcase your unique personality",
		Includes:      []string{"3-hour session", "Concept development", "50+ edited images", "Creative retouching", "Behind-the-scenes video"},
		DurationHours: 3,
		Location:      "Studio or location",
	},
	{
		ID:            "location",
		Title:         "LOCATION SESSIONS",
		Price:         1800,
		Description:   "On-location photography in your preferred environment or scenic backdrop",
		Includes:      []string{"3-hour session", "Location scouting", "60+ edited images", "Travel included (50mi)", "Weather backup plan"},
		DurationHours: 3,
		Location:      "Your choice",
	},
	{
		ID:            "branding",
		Title:         "PERSONAL BRANDING",
		Price:         2500,
		Description:   "Comprehensive branding package for entrepreneurs and professionals",
		Includes:      []string{"4-hour session", "Brand consultation", "100+ edited images", "Multiple locations", "Social media package", "1 year usage rights"},
		DurationHours: 4,
		Location:      "Multiple locations",
	},
}

// All returns the full lineup in display order.
func All() []Package {
	out := make([]Package, len(packages))
	copy(out, packages)
	return out
}

// ByID looks up a package; ok is false for unknown ids.
func ByID(id string) (Package, bool) {
	for _, p := range packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}
