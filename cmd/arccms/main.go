// Package main provides the entry point for the arccms CLI.
//
// arccms resolves the content of the ARC Lebanon website from its Wagtail
// CMS. Every section of the site is resolved independently; a section the
// CMS cannot serve shows its built-in defaults.
//
// Usage:
//
//	arccms resolve [section...]
//	arccms inspect
//	arccms serve
//
// See --help for all available options.
package main

// main is the entry point for arccms.
func main() {
	Execute()
}
