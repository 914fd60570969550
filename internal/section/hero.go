package section

import (
	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// Hero is the view model of the landing banner.
type Hero struct {
	Slides []HeroSlide `json:"slides"`
	Stats  []Stat      `json:"stats"`
}

// HeroSlide is one slide of the banner. BackgroundImage may be empty, in
// which case the slide is rendered on the theme background.
type HeroSlide struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Description     string `json:"description,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	CTAText         string `json:"ctaText,omitempty"`
	CTALink         string `json:"ctaLink,omitempty"`
}

// heroPageFields are the top-level page fields of older home page models.
var heroPageFields = []string{"hero_title", "hero_subtitle", "hero_description", "hero_background"}

func defaultHero() Hero {
	return Hero{
		Slides: []HeroSlide{{
			Title:       "Welcome to ARC Lebanon",
			Subtitle:    "Building a Better Tomorrow",
			Description: "Join us in making a difference in our community",
			CTAText:     "Register Now",
			CTALink:     "#events",
		}},
		Stats: []Stat{
			{Value: "500+", Label: "Participants"},
			{Value: "50+", Label: "Teams"},
			{Value: "3", Label: "Competition Days"},
		},
	}
}

// NewHero declares the hero section. Slides come from "hero_slide" blocks
// (or "hero" blocks of older pages); pages without slide blocks may still
// carry a single slide in their hero_* page fields.
func NewHero(opts Options) *resolver.Spec[Hero] {
	opts = opts.withDefaults()

	mapSlide := func(v model.BlockValue) HeroSlide {
		return HeroSlide{
			Title:           text(v, "title", "heading"),
			Subtitle:        text(v, "subtitle"),
			Description:     PlainText(text(v, "description", "text")),
			BackgroundImage: opts.image(v, "background_image", "image"),
			CTAText:         text(v, "cta_text", "button_text"),
			CTALink:         opts.link(text(v, "cta_link", "button_link")),
		}
	}

	// Legacy pages override the default slide one field at a time.
	setPageFields := func(vm *Hero, v model.BlockValue) {
		s := defaultHero().Slides[0]
		if len(vm.Slides) > 0 {
			s = vm.Slides[0]
		}
		s.Title = firstNonEmpty(text(v, "hero_title"), s.Title)
		s.Subtitle = firstNonEmpty(text(v, "hero_subtitle"), s.Subtitle)
		s.Description = firstNonEmpty(PlainText(text(v, "hero_description")), s.Description)
		s.BackgroundImage = firstNonEmpty(opts.image(v, "hero_background"), s.BackgroundImage)
		vm.Slides = []HeroSlide{s}
	}

	setSlides := func(vm *Hero, slides []HeroSlide) { vm.Slides = slides }

	return &resolver.Spec[Hero]{
		Name:    NameHero,
		Source:  resolver.FromHomePage,
		Default: defaultHero,
		Fields: []resolver.Field[Hero]{
			resolver.PageFields(heroPageFields, setPageFields),
			resolver.Many("hero_slide", mapSlide, setSlides).Or("hero"),
			resolver.Many("hero_stat", mapStat, func(vm *Hero, stats []Stat) { vm.Stats = stats }),
		},
	}
}
