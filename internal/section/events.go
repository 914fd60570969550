package section

import (
	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// Event is an upcoming or past competition event.
type Event struct {
	Title            string `json:"title"`
	Date             string `json:"date,omitempty"`
	Time             string `json:"time,omitempty"`
	Location         string `json:"location,omitempty"`
	Participants     string `json:"participants,omitempty"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status,omitempty"`
	RegistrationLink string `json:"registrationLink,omitempty"`
	Image            string `json:"image,omitempty"`
}

// Events is the view model of the events section.
type Events struct {
	Events []Event `json:"events"`
}

func defaultEvents() Events {
	return Events{Events: []Event{
		{
			Title:        "ARC Championship 2024",
			Date:         "March 15-17, 2024",
			Time:         "9:00 AM - 6:00 PM",
			Location:     "American University of Beirut",
			Participants: "50+ Teams",
			Description:  "The main championship featuring all competition categories with international participants.",
			Status:       "Registration Open",
		},
		{
			Title:        "Workshop: Robotics Fundamentals",
			Date:         "February 10, 2024",
			Time:         "10:00 AM - 4:00 PM",
			Location:     "LAU Engineering Campus",
			Participants: "100 Students",
			Description:  "Hands-on workshop covering robotics basics, programming, and competition preparation.",
			Status:       "Coming Soon",
		},
		{
			Title:        "Junior Robotics Challenge",
			Date:         "April 20, 2024",
			Time:         "9:00 AM - 3:00 PM",
			Location:     "USJ Technology Center",
			Participants: "30+ Schools",
			Description:  "Special competition designed for high school students to encourage early participation.",
			Status:       "Registration Opens Soon",
		},
	}}
}

// NewEvents declares the events section.
func NewEvents(opts Options) *resolver.Spec[Events] {
	opts = opts.withDefaults()

	mapEvent := func(v model.BlockValue) Event {
		return Event{
			Title:            text(v, "title", "name"),
			Date:             text(v, "date"),
			Time:             text(v, "time"),
			Location:         text(v, "location"),
			Participants:     text(v, "participants"),
			Description:      PlainText(text(v, "description")),
			Status:           text(v, "status"),
			RegistrationLink: opts.link(text(v, "registration_link")),
			Image:            opts.image(v, "image"),
		}
	}

	return &resolver.Spec[Events]{
		Name:    NameEvents,
		Source:  resolver.FromHomePage,
		Default: defaultEvents,
		Fields: []resolver.Field[Events]{
			resolver.Many("event", mapEvent, func(vm *Events, es []Event) { vm.Events = es }),
		},
	}
}
