// Package cache shares CMS fetches between the sections of one page load.
//
// Every section of the site reads the same home page (or the same settings
// document). Fetching it once per section multiplies CMS load by the number
// of sections. PageCache collapses concurrent requests for the same document
// into one in-flight fetch and keeps successful results for a short TTL.
// Failures are never stored, so the next caller retries.
package cache
