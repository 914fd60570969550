package section

import (
	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// Benefit is a reason to volunteer.
type Benefit struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Volunteers is the view model of the volunteer call-to-action section.
type Volunteers struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	SignupLink  string    `json:"signupLink,omitempty"`
	Benefits    []Benefit `json:"benefits"`
}

func defaultVolunteers() Volunteers {
	return Volunteers{
		Title: "Become a Volunteer",
		Description: "Join our passionate community of volunteers and help make ARC the premier robotics " +
			"competition. Your contribution makes all the difference.",
		Benefits: []Benefit{
			{Title: "Community Impact", Description: "Help shape the next generation of robotics engineers and innovators"},
			{Title: "Meaningful Experience", Description: "Contribute to STEM education and make a lasting difference"},
			{Title: "Skill Development", Description: "Gain valuable experience in event management and technical mentoring"},
		},
	}
}

// NewVolunteers declares the volunteers section. It reads a single
// "volunteer" block; anything the block leaves empty, benefits included,
// keeps its default.
func NewVolunteers(opts Options) *resolver.Spec[Volunteers] {
	opts = opts.withDefaults()

	mapVolunteer := func(v model.BlockValue) Volunteers {
		vm := Volunteers{
			Title:       text(v, "title", "heading"),
			Description: PlainText(text(v, "description", "text")),
			Image:       opts.image(v, "image"),
			SignupLink:  opts.link(text(v, "signup_link", "cta_link")),
		}
		for _, item := range v.List("benefits") {
			b := Benefit{Title: text(item, "title", model.ScalarKey), Description: text(item, "description")}
			if b.Title != "" {
				vm.Benefits = append(vm.Benefits, b)
			}
		}
		return vm
	}

	return &resolver.Spec[Volunteers]{
		Name:    NameVolunteers,
		Source:  resolver.FromHomePage,
		Default: defaultVolunteers,
		Fields: []resolver.Field[Volunteers]{
			resolver.One("volunteer", mapVolunteer, func(vm *Volunteers, got Volunteers) {
				vm.Title = firstNonEmpty(got.Title, vm.Title)
				vm.Description = firstNonEmpty(got.Description, vm.Description)
				vm.Image = firstNonEmpty(got.Image, vm.Image)
				vm.SignupLink = firstNonEmpty(got.SignupLink, vm.SignupLink)
				if len(got.Benefits) > 0 {
					vm.Benefits = got.Benefits
				}
			}),
		},
	}
}
