// Package model defines the documents served by the Wagtail CMS API as the
// content resolution layer sees them.
//
// This package contains the following main types:
//   - Page: a page detail document with its ordered body of blocks
//   - Block and BlockValue: the tagged, loosely typed units of authored content
//   - ImageRef: image renditions keyed by size class
//   - DocumentRef: a downloadable file reference
//   - Settings: the site-wide settings document
//
// Design decision: We keep the CMS shapes loosely typed (BlockValue is a map)
// because block values differ per block type and the CMS schema evolves
// independently of this module. Strong typing happens one layer up, in the
// section view models.
package model
