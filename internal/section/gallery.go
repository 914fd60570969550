package section

import (
	"strings"

	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// Gallery media types.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// GalleryItem is a photo or video of the gallery.
type GalleryItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	MediaType   string `json:"mediaType"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// Gallery is the view model of the gallery section.
type Gallery struct {
	Items []GalleryItem `json:"items"`
}

func defaultGallery() Gallery {
	return Gallery{Items: []GalleryItem{
		{MediaType: MediaImage, Title: "Championship Finals 2023", Description: "Intense robot battles in the main arena"},
		{MediaType: MediaVideo, Title: "Autonomous Navigation Challenge", Description: "Robots navigating complex obstacle courses"},
		{MediaType: MediaImage, Title: "Team Collaboration", Description: "Students working together on their robots"},
		{MediaType: MediaImage, Title: "Award Ceremony", Description: "Celebrating the winners of ARC 2023"},
		{MediaType: MediaVideo, Title: "Behind the Scenes", Description: "Preparation and setup for the competition"},
		{MediaType: MediaImage, Title: "Robot Showcase", Description: "Innovative designs from participating teams"},
	}}
}

// NewGallery declares the gallery section.
func NewGallery(opts Options) *resolver.Spec[Gallery] {
	opts = opts.withDefaults()

	mapItem := func(v model.BlockValue) GalleryItem {
		item := GalleryItem{
			Title:       text(v, "title", "caption"),
			Description: PlainText(text(v, "description")),
			Image:       opts.image(v, "image", "thumbnail"),
			VideoURL:    opts.link(text(v, "video_url", "video")),
		}
		switch strings.ToLower(text(v, "media_type", "type")) {
		case MediaVideo:
			item.MediaType = MediaVideo
		case MediaImage:
			item.MediaType = MediaImage
		default:
			item.MediaType = MediaImage
			if item.VideoURL != "" {
				item.MediaType = MediaVideo
			}
		}
		return item
	}

	return &resolver.Spec[Gallery]{
		Name:    NameGallery,
		Source:  resolver.FromHomePage,
		Default: defaultGallery,
		Fields: []resolver.Field[Gallery]{
			resolver.Many("gallery_item", mapItem, func(vm *Gallery, items []GalleryItem) { vm.Items = items }),
		},
	}
}
