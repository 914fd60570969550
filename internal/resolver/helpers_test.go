package resolver

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/arclebanon/arccms/internal/model"
)

// fakeSource serves fixed documents or a fixed error.
type fakeSource struct {
	page     *model.Page
	settings *model.Settings
	err      error

	homeCalls     atomic.Int32
	settingsCalls atomic.Int32
}

func (s *fakeSource) HomePage(ctx context.Context) (*model.Page, error) {
	s.homeCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.page, s.err
}

func (s *fakeSource) Settings(ctx context.Context) (*model.Settings, error) {
	s.settingsCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.settings, s.err
}

// blockingSource blocks every fetch until its context is done.
type blockingSource struct {
	started chan struct{}
	once    sync.Once
}

func (s *blockingSource) wait(ctx context.Context) error {
	s.once.Do(func() { close(s.started) })
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingSource) HomePage(ctx context.Context) (*model.Page, error) {
	return nil, s.wait(ctx)
}

func (s *blockingSource) Settings(ctx context.Context) (*model.Settings, error) {
	return nil, s.wait(ctx)
}

type testSlide struct {
	Title       string
	Description string
	Image       string
}

type testVM struct {
	Title       string
	Description string
	Image       string
	Slides      []testSlide
}

func defaultTestVM() testVM {
	return testVM{
		Title:       "Default title",
		Description: "Default description",
		Slides:      []testSlide{{Title: "Default slide"}},
	}
}

func mapSlide(v model.BlockValue) testSlide {
	return testSlide{
		Title:       v.String("title"),
		Description: v.String("description"),
		Image:       v.Image("image").URL(),
	}
}

// testSpec has a singleton "about" field and a repeatable "slide" field
// that also accepts "hero" blocks.
func testSpec() *Spec[testVM] {
	return &Spec[testVM]{
		Name:    "test",
		Source:  FromHomePage,
		Default: defaultTestVM,
		Fields: []Field[testVM]{
			One("about", mapSlide, func(vm *testVM, s testSlide) {
				vm.Title = s.Title
				vm.Description = s.Description
				vm.Image = s.Image
			}),
			Many("slide", mapSlide, func(vm *testVM, s []testSlide) {
				vm.Slides = s
			}).Or("hero"),
		},
	}
}

func pageWith(blocks ...model.Block) *model.Page {
	return &model.Page{ID: 42, Title: "Home", Body: blocks}
}

func block(typ string, value model.BlockValue) model.Block {
	return model.Block{Type: typ, Value: value}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
