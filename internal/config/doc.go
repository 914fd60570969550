// Package config provides configuration structures and utilities for arccms.
// It defines where the CMS lives, how long requests and cached pages may
// live, and how resolution results are reported and stored.
package config
