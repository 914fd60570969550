package section

import (
	"strings"

	"github.com/arclebanon/arccms/internal/media"
	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// RuleCategory is a competition category and its key rules.
type RuleCategory struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Rules       []string `json:"rules"`
}

// RuleDocument is a downloadable rule book or form.
type RuleDocument struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	FileType string `json:"fileType"`
	FileSize string `json:"fileSize,omitempty"`
}

// Rules is the view model of the categories and rules section.
type Rules struct {
	Categories   []RuleCategory `json:"categories"`
	GeneralRules []string       `json:"generalRules"`
	Documents    []RuleDocument `json:"documents"`
}

func defaultRules(opts Options) Rules {
	doc := func(name, size string) RuleDocument {
		return RuleDocument{
			Name:     name,
			URL:      media.DocumentURL(opts.BaseURL, model.DocumentRef{}, name),
			FileType: "PDF",
			FileSize: size,
		}
	}

	return Rules{
		Categories: []RuleCategory{
			{
				Title:       "Autonomous Navigation",
				Description: "Robots must navigate through complex courses without human intervention",
				Rules:       []string{"Maximum size: 30x30x30 cm", "Autonomous operation only", "Time limit: 3 minutes"},
			},
			{
				Title:       "Robot Soccer",
				Description: "Teams of robots compete in football matches with specific gameplay rules",
				Rules:       []string{"Team size: 3 robots", "Match duration: 2x10 minutes", "Ball detection required"},
			},
			{
				Title:       "Line Following",
				Description: "Precision challenge following marked paths at maximum speed",
				Rules:       []string{"Single robot entry", "Black line on white surface", "Speed and accuracy scored"},
			},
			{
				Title:       "Sumo Wrestling",
				Description: "Robot battles in a ring with pushing and strategy tactics",
				Rules:       []string{"Weight limit: 3kg", "Ring diameter: 154cm", "Best of 3 rounds"},
			},
		},
		GeneralRules: []string{
			"All participants must register before the deadline",
			"Robots must pass safety inspection before competition",
			"Teams can participate in multiple categories",
			"Fair play and sportsmanship are mandatory",
			"Protests must be filed within 30 minutes of the event",
			"Judges' decisions are final",
		},
		Documents: []RuleDocument{
			doc("Complete Rule Book 2024", "2.1 MB"),
			doc("Safety Guidelines", "1.5 MB"),
			doc("Registration Form", "856 KB"),
			doc("Technical Specifications", "3.2 MB"),
		},
	}
}

// NewRules declares the rules section.
func NewRules(opts Options) *resolver.Spec[Rules] {
	opts = opts.withDefaults()

	mapCategory := func(v model.BlockValue) RuleCategory {
		c := RuleCategory{
			Title:       text(v, "title", "name"),
			Description: PlainText(text(v, "description")),
			Rules:       v.Strings("rules"),
		}
		if c.Rules == nil {
			c.Rules = []string{}
		}
		return c
	}

	mapGeneral := func(v model.BlockValue) []string {
		rules := v.Strings("rules")
		if len(rules) == 0 {
			rules = v.Strings(model.ScalarKey)
		}
		return rules
	}

	return &resolver.Spec[Rules]{
		Name:    NameRules,
		Source:  resolver.FromHomePage,
		Default: func() Rules { return defaultRules(opts) },
		Fields: []resolver.Field[Rules]{
			resolver.Many("rule_category", mapCategory, func(vm *Rules, cs []RuleCategory) { vm.Categories = cs }),
			resolver.One("general_rules", mapGeneral, func(vm *Rules, rules []string) {
				if len(rules) > 0 {
					vm.GeneralRules = rules
				}
			}),
			resolver.Many("rule_document", func(v model.BlockValue) RuleDocument {
				return mapRuleDocument(opts, v)
			}, func(vm *Rules, docs []RuleDocument) { vm.Documents = docs }),
		},
	}
}

// mapRuleDocument follows the document URL chain. Sizes given as text are
// kept as they are; byte counts are formatted.
func mapRuleDocument(opts Options, v model.BlockValue) RuleDocument {
	ref := v.Document("document")
	d := RuleDocument{
		Name:     firstNonEmpty(text(v, "name", "title"), ref.Title),
		FileType: strings.ToUpper(text(v, "file_type")),
	}
	d.URL = media.DocumentURL(opts.BaseURL, ref, d.Name)

	if d.FileType == "" {
		d.FileType = strings.ToUpper(ref.FileExtension)
	}
	if d.FileType == "" {
		d.FileType = "PDF"
	}

	if n, ok := v.Int("file_size"); ok {
		d.FileSize = media.FormatFileSize(int64(n))
	} else if s := text(v, "file_size"); s != "" {
		d.FileSize = s
	} else if ref.FileSize > 0 {
		d.FileSize = media.FormatFileSize(ref.FileSize)
	}

	if d.Name == "" {
		d.Name = "Document"
	}
	return d
}
