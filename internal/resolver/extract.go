package resolver

import (
	"github.com/arclebanon/arccms/internal/model"
)

// Extract returns the values of the page's blocks whose type equals
// blockType, in body order. A nil page or an empty body yields an empty
// slice; Extract never fails.
func Extract(page *model.Page, blockType string) []model.BlockValue {
	if page == nil {
		return []model.BlockValue{}
	}
	return ExtractBody(page.Body, blockType)
}

// ExtractBody is Extract over any block list, e.g. a settings body.
func ExtractBody(blocks []model.Block, blockType string) []model.BlockValue {
	return extractAny(blocks, []string{blockType})
}

// extractAny returns the values of blocks whose type is any of types,
// in body order.
func extractAny(blocks []model.Block, types []string) []model.BlockValue {
	values := []model.BlockValue{}
	for _, b := range blocks {
		for _, t := range types {
			if b.Type == t {
				values = append(values, b.Value)
				break
			}
		}
	}
	return values
}

// CountByType counts blocks per type. Inspectors use it to show what a
// page actually contains next to what the sections expect.
func CountByType(blocks []model.Block) map[string]int {
	counts := make(map[string]int)
	for _, b := range blocks {
		counts[b.Type]++
	}
	return counts
}
