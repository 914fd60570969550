package section

import (
	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// Organizer is an organising body or partner of the competition.
type Organizer struct {
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
	Role        string `json:"role,omitempty"`
	Website     string `json:"website,omitempty"`
}

// Organizers is the view model of the organizers section.
type Organizers struct {
	Organizers []Organizer `json:"organizers"`
	Stats      []Stat      `json:"stats"`
}

func defaultOrganizers() Organizers {
	return Organizers{
		Organizers: []Organizer{
			{Name: "Kalimat", Description: "Leading educational technology company supporting robotics education", Role: "Main Sponsor"},
			{Name: "Teachers Association", Description: "Professional organization of educators promoting STEM education", Role: "Educational Partner"},
			{Name: "Technical Committee", Description: "Expert panel ensuring fair competition and technical excellence", Role: "Technical Oversight"},
			{Name: "University Partners", Description: "Academic institutions providing venue and technical support", Role: "Academic Partners"},
		},
		Stats: []Stat{
			{Value: "15+", Label: "Partner Organizations"},
			{Value: "50+", Label: "Expert Volunteers"},
			{Value: "5+", Label: "Years Experience"},
			{Value: "3", Label: "Countries Represented"},
		},
	}
}

// NewOrganizers declares the organizers section.
func NewOrganizers(opts Options) *resolver.Spec[Organizers] {
	opts = opts.withDefaults()

	mapOrganizer := func(v model.BlockValue) Organizer {
		return Organizer{
			Name:        text(v, "name", "title"),
			Logo:        opts.image(v, "logo", "image"),
			Description: PlainText(text(v, "description")),
			Role:        text(v, "role"),
			Website:     opts.link(text(v, "website", "url")),
		}
	}

	return &resolver.Spec[Organizers]{
		Name:    NameOrganizers,
		Source:  resolver.FromHomePage,
		Default: defaultOrganizers,
		Fields: []resolver.Field[Organizers]{
			resolver.Many("organizer", mapOrganizer, func(vm *Organizers, list []Organizer) { vm.Organizers = list }),
			resolver.Many("organizer_stat", mapStat, func(vm *Organizers, s []Stat) { vm.Stats = s }),
		},
	}
}
