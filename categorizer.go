package twconfig

import (
	"sort"
	"strings"

	"github.com/yacobolo/twconfig/internal/cssvalue"
)

// PropertyCategory groups related CSS properties
type PropertyCategory string

// Property categories for organizing typography declarations
const (
	CategoryVisual     PropertyCategory = "Visual"
	CategoryLayout     PropertyCategory = "Layout"
	CategoryTypography PropertyCategory = "Typography"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryCustom     PropertyCategory = "Custom"
	CategoryInternal   PropertyCategory = "Internal"
)

// CategoryOrder is the display order of categories in reports
var CategoryOrder = []PropertyCategory{
	CategoryTypography, CategoryLayout, CategoryVisual, CategoryEffects, CategoryCustom, CategoryInternal,
}

// propertyCategories maps CSS property names to categories.
// A property missing from this table is reported as unknown.
var propertyCategories = map[string]PropertyCategory{
	// Visual
	"background":            CategoryVisual,
	"background-color":      CategoryVisual,
	"background-image":      CategoryVisual,
	"background-size":       CategoryVisual,
	"background-position":   CategoryVisual,
	"background-repeat":     CategoryVisual,
	"color":                 CategoryVisual,
	"border":                CategoryVisual,
	"border-color":          CategoryVisual,
	"border-radius":         CategoryVisual,
	"border-width":          CategoryVisual,
	"border-style":          CategoryVisual,
	"border-top":            CategoryVisual,
	"border-right":          CategoryVisual,
	"border-bottom":         CategoryVisual,
	"border-left":           CategoryVisual,
	"border-inline":         CategoryVisual,
	"border-block":          CategoryVisual,
	"box-shadow":            CategoryVisual,
	"opacity":               CategoryVisual,
	"outline":               CategoryVisual,
	"outline-color":         CategoryVisual,
	"outline-width":         CategoryVisual,
	"outline-style":         CategoryVisual,
	"fill":                  CategoryVisual,
	"stroke":                CategoryVisual,
	"background-clip":       CategoryVisual,
	"border-top-color":      CategoryVisual,
	"border-bottom-color":   CategoryVisual,
	"border-top-width":      CategoryVisual,
	"border-bottom-width":   CategoryVisual,
	"text-decoration-color": CategoryVisual,
	"outline-offset":        CategoryVisual,

	// Layout
	"display":               CategoryLayout,
	"flex":                  CategoryLayout,
	"flex-direction":        CategoryLayout,
	"flex-wrap":             CategoryLayout,
	"flex-grow":             CategoryLayout,
	"flex-shrink":           CategoryLayout,
	"flex-basis":            CategoryLayout,
	"justify-content":       CategoryLayout,
	"align-items":           CategoryLayout,
	"align-self":            CategoryLayout,
	"align-content":         CategoryLayout,
	"gap":                   CategoryLayout,
	"row-gap":               CategoryLayout,
	"column-gap":            CategoryLayout,
	"grid":                  CategoryLayout,
	"grid-template-columns": CategoryLayout,
	"grid-template-rows":    CategoryLayout,
	"grid-template-areas":   CategoryLayout,
	"grid-column":           CategoryLayout,
	"grid-row":              CategoryLayout,
	"position":              CategoryLayout,
	"inset":                 CategoryLayout,
	"inset-block":           CategoryLayout,
	"inset-block-start":     CategoryLayout,
	"inset-block-end":       CategoryLayout,
	"inset-inline":          CategoryLayout,
	"inset-inline-start":    CategoryLayout,
	"inset-inline-end":      CategoryLayout,
	"top":                   CategoryLayout,
	"right":                 CategoryLayout,
	"bottom":                CategoryLayout,
	"left":                  CategoryLayout,
	"width":                 CategoryLayout,
	"height":                CategoryLayout,
	"inline-size":           CategoryLayout,
	"block-size":            CategoryLayout,
	"min-width":             CategoryLayout,
	"min-height":            CategoryLayout,
	"min-inline-size":       CategoryLayout,
	"min-block-size":        CategoryLayout,
	"max-width":             CategoryLayout,
	"max-height":            CategoryLayout,
	"max-inline-size":       CategoryLayout,
	"max-block-size":        CategoryLayout,
	"padding":               CategoryLayout,
	"padding-top":           CategoryLayout,
	"padding-right":         CategoryLayout,
	"padding-bottom":        CategoryLayout,
	"padding-left":          CategoryLayout,
	"padding-inline":        CategoryLayout,
	"padding-inline-start":  CategoryLayout,
	"padding-inline-end":    CategoryLayout,
	"padding-block":         CategoryLayout,
	"padding-block-start":   CategoryLayout,
	"padding-block-end":     CategoryLayout,
	"margin":                CategoryLayout,
	"margin-top":            CategoryLayout,
	"margin-right":          CategoryLayout,
	"margin-bottom":         CategoryLayout,
	"margin-left":           CategoryLayout,
	"margin-inline":         CategoryLayout,
	"margin-inline-start":   CategoryLayout,
	"margin-inline-end":     CategoryLayout,
	"margin-block":          CategoryLayout,
	"margin-block-start":    CategoryLayout,
	"margin-block-end":      CategoryLayout,
	"overflow":              CategoryLayout,
	"overflow-x":            CategoryLayout,
	"overflow-y":            CategoryLayout,
	"z-index":               CategoryLayout,
	"aspect-ratio":          CategoryLayout,
	"object-fit":            CategoryLayout,
	"object-position":       CategoryLayout,
	"box-sizing":            CategoryLayout,
	"float":                 CategoryLayout,
	"clear":                 CategoryLayout,
	"table-layout":          CategoryLayout,
	"border-collapse":       CategoryLayout,
	"border-spacing":        CategoryLayout,
	"counter-reset":         CategoryLayout,
	"counter-increment":     CategoryLayout,
	"visibility":            CategoryLayout,

	// Typography
	"font-family":           CategoryTypography,
	"font-size":             CategoryTypography,
	"font-weight":           CategoryTypography,
	"font-style":            CategoryTypography,
	"font-variant":          CategoryTypography,
	"font-variant-numeric":  CategoryTypography,
	"line-height":           CategoryTypography,
	"letter-spacing":        CategoryTypography,
	"text-align":            CategoryTypography,
	"text-decoration":       CategoryTypography,
	"text-transform":        CategoryTypography,
	"text-overflow":         CategoryTypography,
	"white-space":           CategoryTypography,
	"word-break":            CategoryTypography,
	"word-wrap":             CategoryTypography,
	"hyphens":               CategoryTypography,
	"list-style":            CategoryTypography,
	"list-style-type":       CategoryTypography,
	"list-style-position":   CategoryTypography,
	"quotes":                CategoryTypography,
	"content":               CategoryTypography,
	"vertical-align":        CategoryTypography,
	"text-indent":           CategoryTypography,
	"font-feature-settings": CategoryTypography,
	"text-underline-offset": CategoryTypography,
	"overflow-wrap":         CategoryTypography,
	"tab-size":              CategoryTypography,

	// Effects
	"transition":                 CategoryEffects,
	"transition-property":        CategoryEffects,
	"transition-duration":        CategoryEffects,
	"transition-timing-function": CategoryEffects,
	"transition-delay":           CategoryEffects,
	"transform":                  CategoryEffects,
	"transform-origin":           CategoryEffects,
	"animation":                  CategoryEffects,
	"animation-name":             CategoryEffects,
	"animation-duration":         CategoryEffects,
	"animation-timing-function":  CategoryEffects,
	"animation-delay":            CategoryEffects,
	"animation-iteration-count":  CategoryEffects,
	"animation-direction":        CategoryEffects,
	"filter":                     CategoryEffects,
	"backdrop-filter":            CategoryEffects,
	"mix-blend-mode":             CategoryEffects,
	"clip-path":                  CategoryEffects,
	"mask":                       CategoryEffects,
}

// CategorizedProperty is a typography declaration with its category
type CategorizedProperty struct {
	Name     string // kebab-case
	Value    string
	Category PropertyCategory
	Known    bool
}

// categorizeProperty determines the category of a kebab-case property.
// known is false when neither the table nor a prefix rule recognizes it.
func categorizeProperty(name string) (cat PropertyCategory, known bool) {
	if cat, exists := propertyCategories[name]; exists {
		return cat, true
	}

	if strings.HasPrefix(name, "--") {
		return CategoryCustom, true
	}

	if strings.HasPrefix(name, "-webkit-") ||
		strings.HasPrefix(name, "-moz-") ||
		strings.HasPrefix(name, "-ms-") ||
		strings.HasPrefix(name, "-o-") {
		return CategoryInternal, true
	}

	if strings.HasPrefix(name, "flex-") || strings.HasPrefix(name, "grid-") {
		return CategoryLayout, true
	}
	if strings.HasPrefix(name, "border-") {
		return CategoryVisual, true
	}
	if strings.HasPrefix(name, "padding-") || strings.HasPrefix(name, "margin-") {
		return CategoryLayout, true
	}
	if strings.HasPrefix(name, "font-") || strings.HasPrefix(name, "text-") {
		return CategoryTypography, true
	}

	return CategoryLayout, false
}

// CategorizeTypography groups every declaration of t by category.
// Properties within a category are sorted by name.
func CategorizeTypography(t Typography) map[PropertyCategory][]CategorizedProperty {
	result := make(map[PropertyCategory][]CategorizedProperty)

	t.walk(func(_ TypographyModifier, _ string, decl Declaration) {
		name := cssvalue.PropertyName(decl.Property)
		cat, known := categorizeProperty(name)
		result[cat] = append(result[cat], CategorizedProperty{
			Name:     name,
			Value:    decl.Value.String(),
			Category: cat,
			Known:    known,
		})
	})

	for cat := range result {
		sort.SliceStable(result[cat], func(i, j int) bool {
			return result[cat][i].Name < result[cat][j].Name
		})
	}

	return result
}
