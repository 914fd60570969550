package section

import (
	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// About is the view model of the "Who we are" and "About ARC" sections.
type About struct {
	Title string `json:"title"`

	// Description is sanitized rich text; Summary is its plain-text excerpt.
	Description string `json:"description"`
	Summary     string `json:"summary"`

	Mission      string      `json:"mission,omitempty"`
	Image        string      `json:"image,omitempty"`
	Values       []Value     `json:"values"`
	Milestones   []Milestone `json:"milestones"`
	Achievements []Stat      `json:"achievements"`
}

// Value is one of the organisation's core values.
type Value struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Milestone is an entry of the history timeline.
type Milestone struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// summaryLength is the rune limit of About.Summary.
const summaryLength = 160

const aboutIntro = "ARC is Lebanon's premier robotics competition, bringing together the brightest minds " +
	"to compete, innovate, and shape the future of technology."

func defaultAbout() About {
	return About{
		Title:       "Who We Are",
		Description: "<p>" + aboutIntro + "</p>",
		Summary:     Excerpt(aboutIntro, summaryLength),
		Mission: "To create a platform where students, professionals, and robotics enthusiasts can " +
			"showcase their skills, learn from each other, and drive innovation in the field of " +
			"robotics and automation.",
		Values: []Value{
			{Title: "Innovation", Description: "Pushing the boundaries of robotics and engineering"},
			{Title: "Community", Description: "Building a network of passionate robotics enthusiasts"},
			{Title: "Excellence", Description: "Striving for the highest standards in competition"},
			{Title: "Learning", Description: "Fostering continuous growth and knowledge sharing"},
		},
		Milestones: []Milestone{
			{Year: "2019", Title: "ARC Founded", Description: "Established as Lebanon's first dedicated robotics competition platform"},
			{Year: "2020", Title: "First Championship", Description: "Inaugural competition with 25 teams from across Lebanon"},
			{Year: "2021", Title: "International Recognition", Description: "Partnered with global robotics organizations and IEEE"},
			{Year: "2022", Title: "Expansion", Description: "Added new categories and welcomed 100+ participating teams"},
			{Year: "2023", Title: "Record Breaking", Description: "Largest competition with 150+ teams and international participants"},
			{Year: "2024", Title: "Future Vision", Description: "Launching educational programs and year-round activities"},
		},
		Achievements: []Stat{
			{Value: "1,500+", Label: "Students Impacted"},
			{Value: "200+", Label: "Awards Given"},
			{Value: "15+", Label: "Partner Universities"},
		},
	}
}

// aboutBlock is the content of an "about" block.
type aboutBlock struct {
	title, description, mission, image string
	values                             []Value
}

// NewAbout declares the about section.
func NewAbout(opts Options) *resolver.Spec[About] {
	opts = opts.withDefaults()

	mapAbout := func(v model.BlockValue) aboutBlock {
		b := aboutBlock{
			title:       text(v, "title", "heading"),
			description: SanitizeHTML(text(v, "description", "body", "text")),
			mission:     PlainText(text(v, "mission")),
			image:       opts.image(v, "image"),
		}
		for _, item := range v.List("values") {
			if val := (Value{Title: text(item, "title"), Description: text(item, "description")}); val.Title != "" {
				b.values = append(b.values, val)
			}
		}
		return b
	}

	mapMilestone := func(v model.BlockValue) Milestone {
		return Milestone{
			Year:        text(v, "year"),
			Title:       text(v, "title"),
			Description: PlainText(text(v, "description")),
		}
	}

	return &resolver.Spec[About]{
		Name:    NameAbout,
		Source:  resolver.FromHomePage,
		Default: defaultAbout,
		Fields: []resolver.Field[About]{
			resolver.One("about", mapAbout, func(vm *About, b aboutBlock) {
				vm.Title = firstNonEmpty(b.title, vm.Title)
				if b.description != "" {
					vm.Description = b.description
					vm.Summary = Excerpt(b.description, summaryLength)
				}
				vm.Mission = firstNonEmpty(b.mission, vm.Mission)
				vm.Image = firstNonEmpty(b.image, vm.Image)
				if len(b.values) > 0 {
					vm.Values = b.values
				}
			}),
			resolver.Many("milestone", mapMilestone, func(vm *About, ms []Milestone) { vm.Milestones = ms }),
			resolver.Many("achievement", mapStat, func(vm *About, s []Stat) { vm.Achievements = s }),
		},
	}
}
