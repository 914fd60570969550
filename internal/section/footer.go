package section

import (
	"strings"

	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// Contact kinds.
const (
	ContactLocation = "location"
	ContactPhone    = "phone"
	ContactEmail    = "email"
	ContactWebsite  = "website"
)

// Brand is the footer's identity block.
type Brand struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`
	Logo    string `json:"logo,omitempty"`
}

// Contact is a line of contact information.
type Contact struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// SocialLink is a profile on a social platform. URL may be empty when the
// profile is not known yet.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url,omitempty"`
}

// Partner is a sponsor or partner logo.
type Partner struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Footer is the view model of the site footer.
// SponsorPages is Sponsors split into carousel pages and always agrees
// with it.
type Footer struct {
	Brand        Brand        `json:"brand"`
	Contacts     []Contact    `json:"contacts"`
	Social       []SocialLink `json:"social"`
	Sponsors     []Partner    `json:"sponsors"`
	SponsorPages [][]Partner  `json:"sponsorPages"`
	Partners     []Partner    `json:"partners"`
}

func defaultFooter(perPage int) Footer {
	sponsors := []Partner{
		{Name: "TechCorp"},
		{Name: "RoboTech"},
		{Name: "InnovateLab"},
		{Name: "FutureTech"},
	}
	return Footer{
		Brand: Brand{
			Name: "ARC Lebanon",
			Tagline: "ARC Robotics Competition is Lebanon's leading platform for robotics enthusiasts, " +
				"fostering creativity, technical excellence, and innovation among students and professionals.",
		},
		Contacts: []Contact{
			{Label: "Location", Value: "Beirut, Lebanon", Kind: ContactLocation},
			{Label: "Phone", Value: "+961 1 234 567", Kind: ContactPhone},
			{Label: "Email", Value: "info@arc-robotics.com", Kind: ContactEmail},
			{Label: "Website", Value: "www.arc-robotics.com", Kind: ContactWebsite},
		},
		Social: []SocialLink{
			{Platform: "LinkedIn"},
			{Platform: "Twitter"},
			{Platform: "Instagram"},
		},
		Sponsors:     sponsors,
		SponsorPages: Paginate(sponsors, perPage),
		Partners: []Partner{
			{Name: "IEEE Lebanon"},
			{Name: "AUB Engineering"},
			{Name: "LAU Robotics"},
			{Name: "USJ Tech"},
		},
	}
}

// NewFooter declares the footer section. It reads the settings document.
func NewFooter(opts Options) *resolver.Spec[Footer] {
	opts = opts.withDefaults()

	mapBrand := func(v model.BlockValue) Brand {
		return Brand{
			Name:    text(v, "name", "title"),
			Tagline: PlainText(text(v, "tagline", "description")),
			Logo:    opts.image(v, "logo"),
		}
	}

	mapContact := func(v model.BlockValue) Contact {
		c := Contact{
			Label: text(v, "label"),
			Value: text(v, "value"),
			Kind:  strings.ToLower(text(v, "kind", "type")),
		}
		if c.Kind == "" {
			c.Kind = contactKind(c.Value)
		}
		if c.Label == "" {
			c.Label = Label(c.Kind)
		}
		return c
	}

	mapSocial := func(v model.BlockValue) SocialLink {
		return SocialLink{
			Platform: text(v, "platform", "name"),
			URL:      opts.link(text(v, "url")),
		}
	}

	mapPartner := func(v model.BlockValue) Partner {
		return Partner{
			Name: text(v, "name", "title"),
			Logo: opts.image(v, "logo", "image"),
			URL:  opts.link(text(v, "url", "website")),
		}
	}

	return &resolver.Spec[Footer]{
		Name:    NameFooter,
		Source:  resolver.FromSettings,
		Default: func() Footer { return defaultFooter(opts.SponsorsPerPage) },
		Fields: []resolver.Field[Footer]{
			resolver.One("brand", mapBrand, func(vm *Footer, b Brand) {
				vm.Brand.Name = firstNonEmpty(b.Name, vm.Brand.Name)
				vm.Brand.Tagline = firstNonEmpty(b.Tagline, vm.Brand.Tagline)
				vm.Brand.Logo = firstNonEmpty(b.Logo, vm.Brand.Logo)
			}),
			resolver.Many("contact", mapContact, func(vm *Footer, cs []Contact) { vm.Contacts = cs }),
			resolver.Many("social_link", mapSocial, func(vm *Footer, ls []SocialLink) { vm.Social = ls }),
			resolver.Many("sponsor", mapPartner, func(vm *Footer, ps []Partner) {
				vm.Sponsors = ps
				vm.SponsorPages = Paginate(ps, opts.SponsorsPerPage)
			}),
			resolver.Many("partner", mapPartner, func(vm *Footer, ps []Partner) { vm.Partners = ps }),
		},
	}
}

// contactKind guesses the kind of a contact value.
func contactKind(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.Contains(v, "@"):
		return ContactEmail
	case strings.HasPrefix(v, "http://"), strings.HasPrefix(v, "https://"), strings.HasPrefix(v, "www."):
		return ContactWebsite
	case strings.HasPrefix(v, "+"), v != "" && strings.Trim(v, "0123456789 -()") == "":
		return ContactPhone
	default:
		return ContactLocation
	}
}
