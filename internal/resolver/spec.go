package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/arclebanon/arccms/internal/model"
)

// Source provides the documents sections are resolved from.
// *wagtail.Client and *cache.PageCache implement it.
type Source interface {
	HomePage(ctx context.Context) (*model.Page, error)
	Settings(ctx context.Context) (*model.Settings, error)
}

// PageFieldsType is the block type under which the home page's top-level
// fields (e.g. "hero_title") are offered to fields. Older page models keep
// section content there instead of in the body.
const PageFieldsType = "@page"

// SourceKind selects the document a section reads.
type SourceKind string

const (
	// FromHomePage reads the body of the site's home page.
	FromHomePage SourceKind = "home"

	// FromSettings reads the body of the site settings document.
	FromSettings SourceKind = "settings"
)

// Cardinality says how many blocks of a type a field takes.
type Cardinality int

const (
	// Singleton fields take the first block in body order.
	Singleton Cardinality = iota

	// Repeatable fields take every block, in body order.
	Repeatable
)

// String returns "singleton" or "repeatable".
func (c Cardinality) String() string {
	if c == Repeatable {
		return "repeatable"
	}
	return "singleton"
}

// Field binds one block type to a part of a view model.
// Build fields with One, Many or PageFields.
type Field[VM any] struct {
	// BlockType is the primary block type.
	BlockType string

	// Aliases are further block types treated as BlockType.
	Aliases []string

	// Cardinality is Singleton or Repeatable.
	Cardinality Cardinality

	// apply maps the candidate values and stores them in vm. It returns the
	// number of values used.
	apply func(vm *VM, values []model.BlockValue) int
}

// Types returns the primary block type followed by its aliases.
func (f Field[VM]) Types() []string {
	return append([]string{f.BlockType}, f.Aliases...)
}

// Or returns a copy of the field that also accepts the given block types.
// Blocks of all accepted types are candidates in body order.
func (f Field[VM]) Or(aliases ...string) Field[VM] {
	f.Aliases = append(slices.Clone(f.Aliases), aliases...)
	return f
}

// One declares a singleton field. The first candidate block is mapped and
// set; set receives the view model holding the defaults so that it may keep
// a default for any value the block leaves empty.
func One[VM, T any](blockType string, mapFn func(model.BlockValue) T, set func(vm *VM, item T)) Field[VM] {
	return Field[VM]{
		BlockType:   blockType,
		Cardinality: Singleton,
		apply: func(vm *VM, values []model.BlockValue) int {
			if len(values) == 0 {
				return 0
			}
			set(vm, mapFn(values[0]))
			return 1
		},
	}
}

// Many declares a repeatable field. Every candidate block is mapped, so N
// blocks give exactly N items in body order. set is only called when there
// is at least one block.
func Many[VM, T any](blockType string, mapFn func(model.BlockValue) T, set func(vm *VM, items []T)) Field[VM] {
	return Field[VM]{
		BlockType:   blockType,
		Cardinality: Repeatable,
		apply: func(vm *VM, values []model.BlockValue) int {
			if len(values) == 0 {
				return 0
			}
			items := make([]T, len(values))
			for i, v := range values {
				items[i] = mapFn(v)
			}
			set(vm, items)
			return len(items)
		},
	}
}

// PageFields declares a field over the home page's top-level fields. It
// applies only when at least one of keys holds a value, since every page
// carries some top-level fields.
func PageFields[VM any](keys []string, set func(vm *VM, fields model.BlockValue)) Field[VM] {
	return Field[VM]{
		BlockType:   PageFieldsType,
		Cardinality: Singleton,
		apply: func(vm *VM, values []model.BlockValue) int {
			if len(values) == 0 || !hasAny(values[0], keys) {
				return 0
			}
			set(vm, values[0])
			return 1
		},
	}
}

func hasAny(v model.BlockValue, keys []string) bool {
	for _, key := range keys {
		switch x := v[key].(type) {
		case nil:
		case string:
			if strings.TrimSpace(x) != "" {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// Spec declares a section.
type Spec[VM any] struct {
	// Name identifies the section, e.g. "hero".
	Name string

	// Source is the document the section reads.
	Source SourceKind

	// Default returns a fresh default view model. It is called for every
	// resolution so callers may modify the returned value freely.
	Default func() VM

	// Fields are applied in order on top of the default.
	Fields []Field[VM]
}

// Resolve fetches the section's document from src and builds its view model.
// It never fails: any fetch error or an absence of matching blocks yields
// the default view model tagged fallback.
func (s *Spec[VM]) Resolve(ctx context.Context, src Source, opts ...Option) Result[VM] {
	o := newOptions(opts)
	start := time.Now()

	result := s.resolve(ctx, src, o.logger)
	result.Section = s.Name
	result.ResolvedAt = time.Now()
	result.Duration = result.ResolvedAt.Sub(start)

	switch {
	case result.OK():
		o.logger.Debug("section resolved",
			"section", s.Name,
			"page_id", result.PageID,
			"matched", result.Matched,
			"missing", result.Missing,
			"duration", result.Duration,
		)
	case result.Reason == ReasonCanceled:
		o.logger.Debug("section resolution canceled", "section", s.Name)
	default:
		o.logger.Warn("section fell back to default content",
			"section", s.Name,
			"reason", result.Reason,
			"error", result.Err,
		)
	}
	return result
}

func (s *Spec[VM]) resolve(ctx context.Context, src Source, logger *slog.Logger) Result[VM] {
	if err := ctx.Err(); err != nil {
		return s.fallback(ReasonCanceled, err)
	}

	blocks, pageID, err := s.fetch(ctx, src)
	if err != nil {
		// The caller's own cancellation or deadline is teardown, not an outage.
		if ctx.Err() != nil {
			return s.fallback(ReasonCanceled, err)
		}
		return s.fallback(reasonFor(err), err)
	}

	vm := s.Default()
	var matched, missing []string
	for _, f := range s.Fields {
		values := extractAny(blocks, f.Types())
		if f.Cardinality == Singleton && len(values) > 1 {
			logger.Warn("multiple blocks for singleton field, using the first",
				"section", s.Name,
				"block_type", f.BlockType,
				"count", len(values),
			)
		}
		if f.apply(&vm, values) > 0 {
			matched = append(matched, f.BlockType)
		} else {
			missing = append(missing, f.BlockType)
		}
	}

	if len(matched) == 0 {
		r := s.fallback(ReasonNoContent, nil)
		r.PageID = pageID
		r.Missing = missing
		return r
	}

	return Result[VM]{
		Status:    StatusOK,
		Reason:    ReasonNone,
		ViewModel: vm,
		PageID:    pageID,
		Matched:   matched,
		Missing:   missing,
	}
}

func (s *Spec[VM]) fetch(ctx context.Context, src Source) ([]model.Block, int, error) {
	switch s.Source {
	case FromSettings:
		settings, err := src.Settings(ctx)
		if err != nil {
			return nil, 0, err
		}
		if settings == nil {
			return nil, 0, nil
		}
		return settings.Body, 0, nil
	case FromHomePage, "":
		page, err := src.HomePage(ctx)
		if err != nil {
			return nil, 0, err
		}
		if page == nil {
			return nil, 0, nil
		}
		if len(page.Fields) == 0 {
			return page.Body, page.ID, nil
		}
		// Clip so the append never writes into a cached page's body.
		blocks := append(slices.Clip(page.Body), model.Block{
			Type:  PageFieldsType,
			Value: model.BlockValue(page.Fields),
		})
		return blocks, page.ID, nil
	default:
		return nil, 0, fmt.Errorf("section %s: unknown source %q", s.Name, s.Source)
	}
}

func (s *Spec[VM]) fallback(reason Reason, err error) Result[VM] {
	r := Result[VM]{
		Status:    StatusFallback,
		Reason:    reason,
		Err:       err,
		ViewModel: s.Default(),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Section is a Spec with its view model type erased.
type Section interface {
	// SectionName returns the section name.
	SectionName() string

	// SourceKind returns the document the section reads.
	SourceKind() SourceKind

	// BlockTypes returns every block type the section reads, aliases included.
	BlockTypes() []string

	// ResolveOutcome resolves the section.
	ResolveOutcome(ctx context.Context, src Source, opts ...Option) Outcome
}

// SectionName implements Section.
func (s *Spec[VM]) SectionName() string { return s.Name }

// SourceKind implements Section.
func (s *Spec[VM]) SourceKind() SourceKind {
	if s.Source == "" {
		return FromHomePage
	}
	return s.Source
}

// BlockTypes implements Section.
func (s *Spec[VM]) BlockTypes() []string {
	var types []string
	for _, f := range s.Fields {
		types = append(types, f.Types()...)
	}
	return types
}

// ResolveOutcome implements Section.
func (s *Spec[VM]) ResolveOutcome(ctx context.Context, src Source, opts ...Option) Outcome {
	return s.Resolve(ctx, src, opts...).Erase()
}
