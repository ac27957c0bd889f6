// Package naming converts between database identifiers (snake_case table and
// column names) and generated-code identifiers (PascalCase, camelCase),
// including English singular/plural inflection.
//
// The inflection rules are deliberately small and fixed: a short irregular
// lookup table plus the -ies/-es/-s suffix rules below. Words the rules do
// not match are treated as already singular. This is a documented limitation,
// not a bug: guessing beyond the rule set (Latin plurals, -f/-fe words) would
// trade determinism for accuracy, and identical input must always produce
// identical output.
package naming

import "strings"

var irregularSingulars = map[string]string{
	"people":   "person",
	"children": "child",
	"men":      "man",
	"women":    "woman",
	"data":     "datum",
}

var irregularPlurals = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"datum":  "data",
}

// ToSingular converts a plural word to singular. Rules apply in priority
// order: irregular lookup, -ies → -y, -ses/-xes/-ches/-shes → strip "es",
// trailing -s → strip, else unchanged. The guaranteed law is the round trip
// ToPlural(ToSingular(w)) == w; ToSingular is not a fixed point for
// singulars that themselves end in -s ("status" → "statu").
func ToSingular(word string) string {
	if s, ok := irregularSingulars[word]; ok {
		return s
	}
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case hasAnySuffix(word, "ses", "xes", "ches", "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

// ToPlural inverts ToSingular over the covered rule set:
// ToPlural(ToSingular(w)) == w for every plural the rules produce.
func ToPlural(word string) string {
	if p, ok := irregularPlurals[word]; ok {
		return p
	}
	switch {
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(word[len(word)-2]):
		return word[:len(word)-1] + "ies"
	case hasAnySuffix(word, "s", "x", "ch", "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

// ToClassName converts a snake_case table name to a PascalCase singular type
// name: "user_profiles" → "UserProfile". Only the final token is
// singularized.
func ToClassName(tableName string) string {
	parts := strings.Split(tableName, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == len(parts)-1 {
			part = ToSingular(part)
		}
		b.WriteString(title(part))
	}
	return b.String()
}

// ToFieldName converts a snake_case column name to camelCase:
// "created_at" → "createdAt". No singularization is applied.
func ToFieldName(columnName string) string {
	parts := strings.Split(columnName, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(strings.ToLower(part))
			continue
		}
		b.WriteString(title(part))
	}
	return b.String()
}

// ToPascalCase converts snake_case to PascalCase without singularizing.
func ToPascalCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(title(part))
	}
	return b.String()
}

// Capitalize upper-cases the first byte: "userService" → "UserService".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Decapitalize lower-cases the first byte: "UserService" → "userService".
func Decapitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var initialisms = map[string]string{
	"id":   "ID",
	"uuid": "UUID",
	"url":  "URL",
	"api":  "API",
	"json": "JSON",
	"sql":  "SQL",
	"html": "HTML",
	"http": "HTTP",
}

// ToExportedName converts a snake_case column to an exported Go identifier,
// upper-casing common initialisms: "author_id" → "AuthorID".
func ToExportedName(columnName string) string {
	parts := strings.Split(columnName, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if upper, ok := initialisms[strings.ToLower(part)]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(title(part))
	}
	return b.String()
}

// ToSnakeCase converts PascalCase or camelCase to snake_case:
// "UserCreateDTO" → "user_create_dto".
func ToSnakeCase(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			// A new word starts at an upper-case letter unless it continues
			// an acronym run that the next letter does not break.
			if i > 0 && (!isUpper(s[i-1]) || (i+1 < len(s) && !isUpper(s[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteByte(c - 'A' + 'a')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func title(part string) string {
	if part == "" {
		return ""
	}
	return strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func hasAnySuffix(word string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			return true
		}
	}
	return false
}
