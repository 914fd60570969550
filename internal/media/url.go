package media

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/arclebanon/arccms/internal/model"
)

// Media paths on the CMS origin.
const (
	MediaPath     = "/media/"
	DocumentsPath = "/media/documents/"
	RulesPath     = "/media/rules/"
	ImagesPath    = "/media/images/"

	// documentsAPIPath is the documents endpoint of the Wagtail v2 API.
	documentsAPIPath = "/api/v2/documents/"
)

// Hosts tried after the configured origin when looking for a file.
// The local one is the CMS development server.
const (
	ProductionOrigin = "https://api.arc.pingtech.dev"
	LocalOrigin      = "http://localhost:8001"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	unsafeChars = regexp.MustCompile(`[^a-z0-9.\-]`)
)

// CleanFilename turns a document name into the file name Wagtail stores it
// under: lower case, runs of whitespace replaced by "-", anything other than
// [a-z0-9.-] removed, and a ".pdf" suffix ensured.
//
//	CleanFilename("Complete Rule Book 2024") == "complete-rule-book-2024.pdf"
func CleanFilename(name string) string {
	clean := strings.ToLower(name)
	clean = whitespace.ReplaceAllString(clean, "-")
	clean = unsafeChars.ReplaceAllString(clean, "")
	if !strings.HasSuffix(clean, ".pdf") {
		clean += ".pdf"
	}
	return clean
}

// IsPDF reports whether name has a .pdf extension.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), ".pdf")
}

// Absolute resolves raw against the CMS origin base.
// Absolute URLs are returned unchanged and an empty raw yields "".
// Protocol-relative URLs ("//cdn/x.jpg") take the scheme of base.
func Absolute(base, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if ref.IsAbs() {
		return raw
	}

	b, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil || b.Host == "" {
		return raw
	}
	return b.ResolveReference(ref).String()
}

// MediaURL returns the URL of filename below dir (e.g. DocumentsPath) on the
// CMS origin. The file name is cleaned with CleanFilename.
func MediaURL(base, filename, dir string) string {
	return strings.TrimRight(base, "/") + dir + CleanFilename(filename)
}

// FallbackURLs returns every location a document may have been uploaded to,
// most likely first: the documents and rules folders on base, then on the
// production origin, then on a local development server. Duplicates are
// removed, so with base set to the production origin the list is shorter.
func FallbackURLs(base, filename string) []string {
	name := CleanFilename(filename)
	origins := []string{strings.TrimRight(base, "/"), ProductionOrigin, LocalOrigin}

	seen := make(map[string]struct{}, len(origins)*2)
	urls := make([]string, 0, len(origins)*2)
	for _, origin := range origins {
		if origin == "" {
			continue
		}
		for _, dir := range []string{DocumentsPath, RulesPath} {
			u := origin + dir + name
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}
	return urls
}

// DocumentURL returns the best known URL of a document: its url, then its
// stored file, then the documents API endpoint of its id, then the
// documents folder entry derived from name. Relative results are made
// absolute against base.
func DocumentURL(base string, ref model.DocumentRef, name string) string {
	switch {
	case strings.TrimSpace(ref.URL) != "":
		return Absolute(base, ref.URL)
	case strings.TrimSpace(ref.File) != "":
		return Absolute(base, ref.File)
	case ref.ID > 0:
		return strings.TrimRight(base, "/") + documentsAPIPath + strconv.Itoa(ref.ID) + "/"
	}

	if strings.TrimSpace(name) == "" {
		name = ref.Title
	}
	if strings.TrimSpace(name) == "" {
		return ""
	}
	return MediaURL(base, name, DocumentsPath)
}
