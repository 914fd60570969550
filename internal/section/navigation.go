package section

import (
	"strings"

	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// NavItem is a link of the top navigation bar. Anchor is the id of an
// on-page section without the leading "#"; URL is set for links leaving the
// page.
type NavItem struct {
	Label  string `json:"label"`
	Anchor string `json:"anchor,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Navigation is the view model of the navigation bar.
type Navigation struct {
	Items []NavItem `json:"items"`
}

func defaultNavigation() Navigation {
	return Navigation{Items: []NavItem{
		{Label: "Home", Anchor: "home"},
		{Label: "Who we are", Anchor: "about"},
		{Label: "Events", Anchor: "events"},
		{Label: "Become a Volunteer", Anchor: "volunteers"},
		{Label: "Gallery", Anchor: "gallery"},
		{Label: "Categories & Rules", Anchor: "rules"},
		{Label: "About ARC", Anchor: "about-arc"},
	}}
}

// NewNavigation declares the navigation section. It reads the settings
// document, not the home page.
func NewNavigation(opts Options) *resolver.Spec[Navigation] {
	opts = opts.withDefaults()

	mapItem := func(v model.BlockValue) NavItem {
		item := NavItem{
			Label:  text(v, "label", "title"),
			Anchor: strings.TrimPrefix(text(v, "anchor", "section"), "#"),
			URL:    opts.link(text(v, "url", "link")),
		}
		// A bare "#section" URL is an anchor.
		if item.Anchor == "" && strings.HasPrefix(item.URL, "#") {
			item.Anchor, item.URL = strings.TrimPrefix(item.URL, "#"), ""
		}
		return item
	}

	return &resolver.Spec[Navigation]{
		Name:    NameNavigation,
		Source:  resolver.FromSettings,
		Default: defaultNavigation,
		Fields: []resolver.Field[Navigation]{
			resolver.Many("nav_item", mapItem, func(vm *Navigation, items []NavItem) { vm.Items = items }),
		},
	}
}
