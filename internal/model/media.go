package model

import "strings"

// Image size classes exposed by the CMS renditions.
const (
	SizeLarge    = "large"
	SizeOriginal = "original"
)

// ImageRef is a set of rendition URLs keyed by size class, plus the raw URL
// field of the image document.
type ImageRef struct {
	// Renditions maps a size class ("large", "original", ...) to its URL.
	Renditions map[string]string `json:"renditions,omitempty"`

	// RawURL is the image's own "url" field.
	RawURL string `json:"url,omitempty"`
}

// NewImageRef builds an ImageRef from a decoded image object.
// A rendition may be either a URL string or an object with a "url" field.
func NewImageRef(obj map[string]any) ImageRef {
	ref := ImageRef{}
	for key, val := range obj {
		var u string
		switch r := val.(type) {
		case string:
			u = r
		case map[string]any:
			u, _ = r["url"].(string)
		}
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if key == "url" {
			ref.RawURL = u
			continue
		}
		if ref.Renditions == nil {
			ref.Renditions = make(map[string]string)
		}
		ref.Renditions[key] = u
	}
	return ref
}

// URL resolves the image to a single URL: the large rendition, then the
// original, then the raw URL. An empty string means the image is absent.
func (r ImageRef) URL() string {
	if u := r.Renditions[SizeLarge]; u != "" {
		return u
	}
	if u := r.Renditions[SizeOriginal]; u != "" {
		return u
	}
	return r.RawURL
}

// IsZero reports whether the reference resolves to nothing.
func (r ImageRef) IsZero() bool {
	return r.URL() == ""
}

// DocumentRef points at a downloadable file managed by the CMS.
type DocumentRef struct {
	// ID is the Wagtail document id.
	ID int `json:"id,omitempty"`

	// Title is the document title.
	Title string `json:"title,omitempty"`

	// URL is the direct document URL, when the CMS provides one.
	URL string `json:"url,omitempty"`

	// File is the stored file path or URL, when the CMS provides one.
	File string `json:"file,omitempty"`

	// FileExtension is the lower-case extension without dot, e.g. "pdf".
	FileExtension string `json:"file_extension,omitempty"`

	// FileSize is the size in bytes, 0 if unknown.
	FileSize int64 `json:"file_size,omitempty"`
}

// NewDocumentRef builds a DocumentRef from a decoded document object.
// The Wagtail documents API puts the download link under meta.download_url;
// older serializers use a top-level "url".
func NewDocumentRef(obj map[string]any) DocumentRef {
	v := BlockValue(obj)
	ref := DocumentRef{
		Title:         v.String("title"),
		URL:           v.String("url"),
		File:          v.String("file"),
		FileExtension: strings.ToLower(v.String("file_extension")),
	}
	if id, ok := v.Int("id"); ok {
		ref.ID = id
	}
	if size, ok := v.Int("file_size"); ok {
		ref.FileSize = int64(size)
	}
	if ref.URL == "" {
		ref.URL = v.Map("meta").String("download_url")
	}
	return ref
}

// IsZero reports whether the reference carries no usable information.
func (d DocumentRef) IsZero() bool {
	return d.ID == 0 && d.URL == "" && d.File == ""
}
