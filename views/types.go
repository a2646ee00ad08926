package views

// BrandOption is one entry in the brand selectors on the dashboard and
// editor pages.
type BrandOption struct {
	ID      string
	Name    string
	SiteURL string
}
