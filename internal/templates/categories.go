package templates

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFallbackCategory receives files that match no keyword.
const DefaultFallbackCategory = "other"

const (
	categoryTableDecodeErrorTemplateConstant   = "unable to decode category table: %w"
	categoryMissingNameMessageConstant         = "category table entry %d has no name"
	categoryDuplicateNameErrorTemplateConstant = "category %q is declared more than once"
	categoryMissingKeywordsErrorTemplate       = "category %q has no keywords"
	categoryFallbackCollisionErrorTemplate     = "fallback category %q must not also be a keyword category"
)

//go:embed categories.yaml
var defaultCategoryTableData []byte

var errEmptyCategoryTable = errors.New("category table declares no categories")

// Category maps a label to the file-name substrings that select it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoryTable is an ordered keyword table with a fallback label.
type CategoryTable struct {
	Fallback   string     `yaml:"fallback"`
	Categories []Category `yaml:"categories"`
}

// DefaultCategoryTable returns the embedded category table.
func DefaultCategoryTable() (CategoryTable, error) {
	return LoadCategoryTable(bytes.NewReader(defaultCategoryTableData))
}

// LoadCategoryTable decodes and validates a YAML category table. Keywords are lower-cased and trimmed.
func LoadCategoryTable(reader io.Reader) (CategoryTable, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var table CategoryTable
	if decodeError := decoder.Decode(&table); decodeError != nil {
		return CategoryTable{}, fmt.Errorf(categoryTableDecodeErrorTemplateConstant, decodeError)
	}
	return table.normalize()
}

func (table CategoryTable) normalize() (CategoryTable, error) {
	normalized := CategoryTable{Fallback: strings.TrimSpace(table.Fallback)}
	if len(normalized.Fallback) == 0 {
		normalized.Fallback = DefaultFallbackCategory
	}
	if len(table.Categories) == 0 {
		return CategoryTable{}, errEmptyCategoryTable
	}

	seenNames := make(map[string]struct{}, len(table.Categories))
	for index, category := range table.Categories {
		name := strings.TrimSpace(category.Name)
		if len(name) == 0 {
			return CategoryTable{}, fmt.Errorf(categoryMissingNameMessageConstant, index)
		}
		if _, duplicate := seenNames[name]; duplicate {
			return CategoryTable{}, fmt.Errorf(categoryDuplicateNameErrorTemplateConstant, name)
		}
		if name == normalized.Fallback {
			return CategoryTable{}, fmt.Errorf(categoryFallbackCollisionErrorTemplate, name)
		}
		seenNames[name] = struct{}{}

		keywords := make([]string, 0, len(category.Keywords))
		for _, keyword := range category.Keywords {
			trimmed := strings.ToLower(strings.TrimSpace(keyword))
			if len(trimmed) > 0 {
				keywords = append(keywords, trimmed)
			}
		}
		if len(keywords) == 0 {
			return CategoryTable{}, fmt.Errorf(categoryMissingKeywordsErrorTemplate, name)
		}

		normalized.Categories = append(normalized.Categories, Category{Name: name, Keywords: keywords})
	}

	return normalized, nil
}

// Match returns every category whose keywords occur in the lower-cased file name, in table order.
// A name matching nothing yields the fallback category alone.
func (table CategoryTable) Match(fileName string) []string {
	lowered := strings.ToLower(fileName)
	var matched []string
	for _, category := range table.Categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(lowered, keyword) {
				matched = append(matched, category.Name)
				break
			}
		}
	}
	if len(matched) == 0 {
		fallback := table.Fallback
		if len(fallback) == 0 {
			fallback = DefaultFallbackCategory
		}
		return []string{fallback}
	}
	return matched
}
