package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// PageMeta is the "meta" object Wagtail attaches to every page.
type PageMeta struct {
	// Type is the Wagtail content type, e.g. "cms_app.HomePage".
	// The listing endpoint filters on this value.
	Type string `json:"type"`

	DetailURL         string `json:"detail_url,omitempty"`
	HTMLURL           string `json:"html_url,omitempty"`
	Slug              string `json:"slug,omitempty"`
	ShowInMenus       bool   `json:"show_in_menus,omitempty"`
	SEOTitle          string `json:"seo_title,omitempty"`
	SearchDescription string `json:"search_description,omitempty"`
	FirstPublishedAt  string `json:"first_published_at,omitempty"`
	Locale            string `json:"locale,omitempty"`
}

// Page is a Wagtail page document.
// Listing items carry only ID, Title and Meta; the detail document adds Body.
//
// A Page is read-only once decoded. Every fetch produces a fresh value.
type Page struct {
	// ID is the Wagtail page identifier used by the detail endpoint.
	ID int `json:"id"`

	// Title is the page title.
	Title string `json:"title"`

	// Meta holds the type tag and publishing metadata.
	Meta PageMeta `json:"meta"`

	// Body is the ordered StreamField content.
	// Block types are not unique; order matters for repeatable blocks.
	Body []Block `json:"body,omitempty"`

	// Fields holds any other top-level fields of the page document
	// (e.g. "hero_title" on older home page models).
	Fields map[string]any `json:"fields,omitempty"`
}

// knownPageKeys are the keys decoded into typed Page fields.
var knownPageKeys = []string{"id", "title", "meta", "body"}

// UnmarshalJSON decodes a page document, keeping unknown top-level
// fields in Fields.
func (p *Page) UnmarshalJSON(data []byte) error {
	type pageAlias struct {
		ID    int      `json:"id"`
		Title string   `json:"title"`
		Meta  PageMeta `json:"meta"`
		Body  []Block  `json:"body"`
	}

	var alias pageAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range knownPageKeys {
		delete(all, key)
	}

	p.ID = alias.ID
	p.Title = alias.Title
	p.Meta = alias.Meta
	p.Body = alias.Body
	p.Fields = nil
	if len(all) > 0 {
		p.Fields = all
	}
	return nil
}

// Field returns a top-level field of the page as a string.
// Returns an empty string if the field is missing or not a scalar.
func (p *Page) Field(key string) string {
	if p == nil {
		return ""
	}
	return BlockValue(p.Fields).String(key)
}

// BodyHash returns the SHA-256 hash of the page body's JSON encoding.
// It is used to detect content changes between two fetches.
// An empty body produces an empty hash.
func (p *Page) BodyHash() string {
	if p == nil || len(p.Body) == 0 {
		return ""
	}
	data, err := json.Marshal(p.Body)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ListMeta is the "meta" object of a listing response.
type ListMeta struct {
	TotalCount int `json:"total_count"`
}

// PageList is the response of the page listing endpoint.
type PageList struct {
	Meta  ListMeta `json:"meta"`
	Items []Page   `json:"items"`
}

// Settings is the site-wide settings document (navigation, sponsors,
// contact details, social links). It is not part of the pages collection
// but shares the page body shape.
type Settings struct {
	ID       int     `json:"id,omitempty"`
	SiteName string  `json:"site_name,omitempty"`
	Body     []Block `json:"body,omitempty"`
}
