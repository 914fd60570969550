// Package server serves resolved sections over HTTP so editors can preview
// what the site will show before publishing.
//
// Every request resolves against a shared page cache, so a burst of
// requests costs one CMS fetch. POST /api/refresh drops the cache, which
// is what an editor does after publishing a change.
package server
