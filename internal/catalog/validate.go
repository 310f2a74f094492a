package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RequiredFields lists the keys every product object must carry.
var RequiredFields = []string{"id", "name", "slug", "category", "priceCents", "currency", "stock", "image"}

// Substrings typical of UTF-8 text that was decoded as Latin-1 or CP1252.
var mojibakeHints = []string{"Ã", "â", "\uFFFD", "Ð", "Ñ", "à¤", "à®", "ì"}

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// A bare 40", 54" or 60" in a name is usually a pasted screen size.
	screenSizePattern = regexp.MustCompile(`(^|[^0-9])(40|54|60)"`)
)

// Finding is one validation message. Index is the product position, or -1
// for problems with the payload as a whole.
type Finding struct {
	Index   int
	Field   string
	Message string
}

func (f Finding) String() string {
	if f.Index < 0 {
		return f.Message
	}
	return fmt.Sprintf("item[%d]: %s", f.Index, f.Message)
}

// Result collects the findings of one validation run.
type Result struct {
	Products int
	Errors   []Finding
	Warnings []Finding
}

// OK reports whether no blocking errors were found.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// Validate checks data, the decoded product file, record by record.
// A non-array payload yields a single error and no per-record checks.
func Validate(data any, assets AssetResolver) Result {
	items, ok := data.([]any)
	if !ok {
		return Result{Errors: []Finding{{Index: -1, Message: "Top-level JSON must be an array of product objects."}}}
	}

	v := &validator{
		assets:    assets,
		seenIDs:   make(map[string]bool),
		seenSlugs: make(map[string]bool),
	}
	v.res.Products = len(items)
	for i, item := range items {
		v.product(i, item)
	}
	return v.res
}

type validator struct {
	assets    AssetResolver
	seenIDs   map[string]bool
	seenSlugs map[string]bool
	res       Result
}

func (v *validator) errorf(i int, field, format string, args ...any) {
	v.res.Errors = append(v.res.Errors, Finding{Index: i, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) warnf(i int, field, format string, args ...any) {
	v.res.Warnings = append(v.res.Warnings, Finding{Index: i, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) product(i int, item any) {
	p, ok := item.(map[string]any)
	if !ok {
		v.errorf(i, "", "expected object, got %s", jsonType(item))
		return
	}

	// A missing field gets exactly one error; the checks below skip it.
	for _, f := range RequiredFields {
		if _, ok := p[f]; !ok {
			v.errorf(i, f, "missing required field '%s'", f)
		}
	}

	v.uniqueKey(i, p, "id", v.seenIDs)
	if slug, ok := v.uniqueKey(i, p, "slug", v.seenSlugs); ok && !slugPattern.MatchString(slug) {
		v.warnf(i, "slug", "slug '%s' is not kebab-case", slug)
	}

	if name, ok := v.nonEmptyString(i, p, "name"); ok && screenSizePattern.MatchString(name) {
		v.warnf(i, "name", "name contains size 40/54/60: \"%s\"", name)
	}
	v.nonEmptyString(i, p, "category")
	if cur, ok := v.nonEmptyString(i, p, "currency"); ok {
		if c := strings.TrimSpace(cur); strings.ToUpper(c) != c {
			v.warnf(i, "currency", "currency '%s' should be uppercase (e.g. CAD)", cur)
		}
	}

	v.nonNegativeInt(i, p, "priceCents")
	v.nonNegativeInt(i, p, "stock")

	if img, ok := v.nonEmptyString(i, p, "image"); ok {
		v.checkAsset(i, "image", "image", img)
	}
	v.extraImages(i, p)
	v.mojibake(i, p)
}

// uniqueKey checks an identifier-like field: a string, non-empty after
// trimming, not seen before in the file. It returns the trimmed value.
func (v *validator) uniqueKey(i int, p map[string]any, key string, seen map[string]bool) (string, bool) {
	raw, present := p[key]
	if !present {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		v.errorf(i, key, "'%s' must be string, got %s", key, jsonType(raw))
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		v.errorf(i, key, "'%s' is empty", key)
		return "", false
	}
	if seen[s] {
		v.errorf(i, key, "duplicate %s '%s'", key, s)
	} else {
		seen[s] = true
	}
	return s, true
}

func (v *validator) nonEmptyString(i int, p map[string]any, key string) (string, bool) {
	raw, present := p[key]
	if !present {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		v.errorf(i, key, "'%s' must be non-empty string", key)
		return "", false
	}
	return s, true
}

func (v *validator) nonNegativeInt(i int, p map[string]any, key string) {
	raw, present := p[key]
	if !present {
		return
	}
	n, ok := raw.(json.Number)
	if !ok || !isInteger(n) {
		v.errorf(i, key, "'%s' must be integer, got %s", key, jsonType(raw))
		return
	}
	if isNegative(n) {
		v.errorf(i, key, "'%s' cannot be negative", key)
	}
}

// extraImages checks the optional "images" array. null counts as absent.
func (v *validator) extraImages(i int, p map[string]any) {
	raw := p["images"]
	if raw == nil {
		return
	}
	list, ok := raw.([]any)
	if !ok {
		v.errorf(i, "images", "'images' must be an array when present")
		return
	}
	for j, entry := range list {
		label := fmt.Sprintf("images[%d]", j)
		s, ok := entry.(string)
		if !ok || strings.TrimSpace(s) == "" {
			v.errorf(i, "images", "%s must be non-empty string", label)
			continue
		}
		v.checkAsset(i, "images", label, s)
	}
}

func (v *validator) checkAsset(i int, field, label, ref string) {
	if LooksLikeURL(ref) || v.assets.Exists(ref) {
		return
	}
	v.warnf(i, field, "%s file not found -> %s", label, ref)
}

func (v *validator) mojibake(i int, p map[string]any) {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, ok := p[k].(string)
		if ok && containsAny(s, mojibakeHints) {
			v.warnf(i, k, "'%s' may have encoding issues", k)
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isInteger reports whether n was written without a fraction or exponent.
func isInteger(n json.Number) bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// isNegative works on the literal so values beyond int64 still classify.
func isNegative(n json.Number) bool {
	s := string(n)
	return strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0") != ""
}

// jsonType names the JSON type of a decoded value.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
