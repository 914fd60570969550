package section

import (
	"strings"

	"github.com/arclebanon/arccms/internal/media"
	"github.com/arclebanon/arccms/internal/model"
)

// defaultSponsorsPerPage is the sponsor carousel page size of the site.
const defaultSponsorsPerPage = 4

// Options are the site-wide settings section mappers depend on.
type Options struct {
	// BaseURL is the CMS origin relative media paths are resolved against.
	BaseURL string

	// SponsorsPerPage is the sponsor carousel page size.
	// Zero means 4.
	SponsorsPerPage int
}

func (o Options) withDefaults() Options {
	if o.SponsorsPerPage <= 0 {
		o.SponsorsPerPage = defaultSponsorsPerPage
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return o
}

// image returns the absolute URL of the first image found under keys.
func (o Options) image(v model.BlockValue, keys ...string) string {
	for _, key := range keys {
		if u := v.Image(key).URL(); u != "" {
			return media.Absolute(o.BaseURL, u)
		}
	}
	return ""
}

// link resolves an origin-relative link against the CMS origin. In-page
// anchors, mail links and absolute URLs are returned as they are.
func (o Options) link(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return media.Absolute(o.BaseURL, raw)
	}
	return raw
}

// text returns the first non-blank string found under keys, trimmed.
func text(v model.BlockValue, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(v.String(key)); s != "" {
			return s
		}
	}
	return ""
}

// Stat is a headline figure such as "500+ Participants".
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func mapStat(v model.BlockValue) Stat {
	return Stat{
		Value: text(v, "value", "number"),
		Label: text(v, "label"),
	}
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
