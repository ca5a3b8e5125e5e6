// Package view renders the stand-in application's pages. The markup lives in page.templ; run templ generate after
// editing it.
package view

// NavItem is a link in the page header.
type NavItem struct {
	Label string
	Href  string
}

// Section is a headed list on a page.
type Section struct {
	Heading string
	TestID  string
	Items   []string
}

// Page is the content of one application page.
type Page struct {
	Title   string
	Heading string
	Lead    string
	Nav     []NavItem

	// Active is the Href of the current page's NavItem.
	Active   string
	Sections []Section
}
