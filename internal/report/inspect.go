package report

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/section"
)

// FieldView is one field of an inspected block.
type FieldView struct {
	Key string `json:"key"`

	// Value is the field rendered as text. Rich text is converted to
	// Markdown, images are reduced to their URL and nested values are
	// summarised.
	Value string `json:"value"`
}

// BlockView is one inspected block.
type BlockView struct {
	Index  int         `json:"index"`
	ID     string      `json:"id,omitempty"`
	Type   string      `json:"type"`
	Label  string      `json:"label"`
	Fields []FieldView `json:"fields"`
}

// Inspection is a readable dump of a page body.
type Inspection struct {
	BaseURL string       `json:"base_url"`
	Page    *PageSummary `json:"page"`
	Blocks  []BlockView  `json:"blocks"`
}

var (
	markdownConverterOnce sync.Once
	markdownConverter     *converter.Converter
)

func richTextConverter() *converter.Converter {
	markdownConverterOnce.Do(func() {
		markdownConverter = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		)
	})
	return markdownConverter
}

// Inspect renders every block of page. Relative links in rich text are
// resolved against baseURL. Blocks of types listed in only are kept; an
// empty only keeps every block.
func Inspect(baseURL string, page *model.Page, only ...string) *Inspection {
	ins := &Inspection{
		BaseURL: baseURL,
		Page:    NewPageSummary(page),
		Blocks:  []BlockView{},
	}
	if page == nil {
		return ins
	}

	for i, b := range page.Body {
		if len(only) > 0 && !slices.Contains(only, b.Type) {
			continue
		}
		ins.Blocks = append(ins.Blocks, BlockView{
			Index:  i,
			ID:     b.ID,
			Type:   b.Type,
			Label:  section.Label(b.Type),
			Fields: fieldViews(baseURL, b.Value),
		})
	}
	return ins
}

// fieldViews renders the fields of a block value in key order.
func fieldViews(baseURL string, v model.BlockValue) []FieldView {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	views := make([]FieldView, 0, len(keys))
	for _, k := range keys {
		views = append(views, FieldView{Key: k, Value: renderValue(baseURL, v, k)})
	}
	return views
}

func renderValue(baseURL string, v model.BlockValue, key string) string {
	switch val := v[key].(type) {
	case nil:
		return "-"
	case string:
		if looksLikeHTML(val) {
			return toMarkdown(baseURL, val)
		}
		return val
	case map[string]any:
		if u := v.Image(key).URL(); u != "" {
			return u
		}
		if doc := v.Document(key); doc.ID > 0 {
			return fmt.Sprintf("document #%d %s", doc.ID, doc.Title)
		}
		return fmt.Sprintf("{%d fields}", len(val))
	case []any:
		if items := v.Strings(key); len(items) == len(val) {
			return strings.Join(items, "; ")
		}
		return fmt.Sprintf("[%d items]", len(val))
	default:
		return v.String(key)
	}
}

func looksLikeHTML(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}

// toMarkdown converts rich text to Markdown, falling back to the plain
// text when the converter rejects the input.
func toMarkdown(baseURL, html string) string {
	conv := richTextConverter()

	var (
		md  string
		err error
	)
	if baseURL != "" {
		md, err = conv.ConvertString(html, converter.WithDomain(baseURL))
	} else {
		md, err = conv.ConvertString(html)
	}
	if err != nil {
		return section.PlainText(html)
	}
	return strings.TrimSpace(md)
}
