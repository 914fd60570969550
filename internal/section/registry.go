package section

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arclebanon/arccms/internal/resolver"
)

// Section names.
const (
	NameHero       = "hero"
	NameAbout      = "about"
	NameEvents     = "events"
	NameGallery    = "gallery"
	NameRules      = "rules"
	NameVolunteers = "volunteers"
	NameOrganizers = "organizers"
	NameNavigation = "navigation"
	NameFooter     = "footer"
)

// ErrUnknownSection is returned when a section name is not registered.
var ErrUnknownSection = errors.New("unknown section")

// Names returns every section name in page order.
func Names() []string {
	return []string{
		NameNavigation,
		NameHero,
		NameAbout,
		NameEvents,
		NameVolunteers,
		NameGallery,
		NameRules,
		NameOrganizers,
		NameFooter,
	}
}

// New returns the named section.
func New(name string, opts Options) (resolver.Section, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameHero:
		return NewHero(opts), nil
	case NameAbout:
		return NewAbout(opts), nil
	case NameEvents:
		return NewEvents(opts), nil
	case NameGallery:
		return NewGallery(opts), nil
	case NameRules:
		return NewRules(opts), nil
	case NameVolunteers:
		return NewVolunteers(opts), nil
	case NameOrganizers:
		return NewOrganizers(opts), nil
	case NameNavigation:
		return NewNavigation(opts), nil
	case NameFooter:
		return NewFooter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSection, name, strings.Join(Names(), ", "))
	}
}

// All returns every section in page order.
func All(opts Options) []resolver.Section {
	sections := make([]resolver.Section, 0, len(Names()))
	for _, name := range Names() {
		s, _ := New(name, opts) //nolint:errcheck // every name in Names is registered
		sections = append(sections, s)
	}
	return sections
}

// Select returns the named sections in the given order, or every section
// when names is empty. Duplicates are resolved once.
func Select(names []string, opts Options) ([]resolver.Section, error) {
	if len(names) == 0 {
		return All(opts), nil
	}

	seen := make(map[string]struct{}, len(names))
	sections := make([]resolver.Section, 0, len(names))
	for _, name := range names {
		s, err := New(name, opts)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s.SectionName()]; ok {
			continue
		}
		seen[s.SectionName()] = struct{}{}
		sections = append(sections, s)
	}
	return sections, nil
}
