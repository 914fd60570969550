// Package section declares the content sections of the ARC site.
//
// Each section is a resolver.Spec: the block types it reads from the CMS,
// how a block value maps into the section's view model, and the default
// content shown when the CMS has nothing usable. The defaults are the copy
// the site shipped with before the CMS existed and must stay structurally
// identical to CMS-derived view models.
//
// Block mappers are lenient. A block is only dropped when it carries no
// usable content at all; missing optional fields stay empty rather than
// being filled from the default.
package section
