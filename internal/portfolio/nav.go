package portfolio

// NavItem is one anchorable section of the page.
type NavItem struct {
	ID    string
	Label string
}

// Nav is the fixed section order. The first entry is the initial active section.
var Nav = []NavItem{
	{ID: "home", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "experience", Label: "Experience"},
	{ID: "projects", Label: "Projects"},
	{ID: "skills", Label: "Skills"},
	{ID: "contact", Label: "Contact"},
}

// NavIDs returns the section ids in order.
func NavIDs() []string {
	ids := make([]string, len(Nav))
	for i, item := range Nav {
		ids[i] = item.ID
	}
	return ids
}

// RenderedNavItem is a view model for templates.
type RenderedNavItem struct {
	NavItem
	Href   string
	Active bool
}

// BuildNav renders the navigation with the given section marked active.
func BuildNav(active string) []RenderedNavItem {
	items := make([]RenderedNavItem, 0, len(Nav))
	for _, item := range Nav {
		items = append(items, RenderedNavItem{
			NavItem: item,
			Href:    "#" + item.ID,
			Active:  item.ID == active,
		})
	}
	return items
}
