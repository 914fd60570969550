// Package media builds and probes URLs of files served by the CMS.
//
// Images and documents uploaded to Wagtail are served below /media/ on the
// CMS origin. Block values reference them in several shapes: absolute URLs,
// origin-relative paths, document ids, or only a human readable name. This
// package turns each of those into a URL a browser can open.
//
// Document URLs follow a fixed chain:
//
//  1. the document's own url
//  2. the document's stored file
//  3. the documents API endpoint for the document id
//  4. /media/documents/<clean-name>.pdf
//
// When none of these is known to work, FindWorkingURL probes a list of
// candidate locations with HEAD requests.
package media
