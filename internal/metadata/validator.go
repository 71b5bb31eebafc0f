package metadata

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// localeTagRegex matches language-region tags such as en-US or nl-NL.
var localeTagRegex = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)

const (
	hintURL        = "Use an absolute URL including its scheme, e.g. https://example.com/script.user.js"
	hintLocale     = "Use a two-letter language and two-letter region separated by a hyphen, e.g. en-US or nl-NL"
	hintString     = "Quote the value in the config file so it is read as a string"
	hintGrant      = "Run 'usheader grants --known' to list the supported grants"
	hintResource   = "Resource ids are referenced from GM_getResourceText/GM_getResourceURL and cannot contain whitespace"
	hintSingleLine = "Each value becomes one header line; use a folded scalar (>-) for long text"
)

// ValidationResult accumulates issues while a raw configuration is checked.
type ValidationResult struct {
	Issues []Issue
}

// AddIssue records a violated rule at path.
func (v *ValidationResult) AddIssue(path, hint, format string, args ...interface{}) {
	v.Issues = append(v.Issues, Issue{Path: path, Message: fmt.Sprintf(format, args...), Hint: hint})
}

// HasErrors returns true if any rule was violated.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Issues) > 0
}

// Err returns the accumulated issues as a *ValidationError, or nil.
func (v *ValidationResult) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return &ValidationError{Issues: slices.Clone(v.Issues)}
}

// Validate checks a loosely-typed configuration object and normalizes it.
//
// raw is usually the result of decoding YAML or JSON: nil, map[string]any or
// map[any]any. Keys that do not name a field are ignored. Every field is
// optional except name. On failure the returned error is a *ValidationError
// listing every issue; no partial model is returned.
//
// Validate keeps no state between calls and is safe for concurrent use.
func Validate(raw any) (*Metadata, error) {
	obj, ok := asObject(raw)
	if !ok {
		if raw == nil {
			obj = map[string]any{}
		} else {
			return nil, &ValidationError{Issues: []Issue{{
				Message: fmt.Sprintf("expected an object, got %s", typeName(raw)),
			}}}
		}
	}

	v := &validation{obj: obj}
	m := &Metadata{}

	m.Scalars.Name = v.str(FieldName, true)
	m.Scalars.Namespace = v.str(FieldNamespace, false)
	m.Scalars.Version = v.str(FieldVersion, false)
	m.Scalars.Description = v.str(FieldDescription, false)
	m.Scalars.Icon = v.url(FieldIcon)
	m.Scalars.DownloadURL = v.url(FieldDownloadURL)
	m.Scalars.SupportURL = v.url(FieldSupportURL)
	m.Scalars.HomepageURL = v.url(FieldHomepageURL)
	m.Scalars.RunAt = RunAt(v.enum(FieldRunAt, runAtValues, string(RunAtDocumentEnd)))
	m.Scalars.InjectInto = InjectInto(v.enum(FieldInjectInto, injectIntoValues, string(InjectIntoPage)))
	m.Scalars.NoFrames = v.boolean(FieldNoFrames)
	m.Scalars.Unwrap = v.boolean(FieldUnwrap)

	m.Sets.Match = v.stringSet(FieldMatch, false)
	m.Sets.ExcludeMatch = v.stringSet(FieldExcludeMatch, false)
	m.Sets.Include = v.stringSet(FieldInclude, false)
	m.Sets.Exclude = v.stringSet(FieldExclude, false)
	m.Sets.Grants = v.grantSet(FieldGrants)
	m.Sets.Require = v.stringSet(FieldRequire, true)

	m.Maps.LocalizedName = v.localeMap(FieldLocalizedName)
	m.Maps.LocalizedDescription = v.localeMap(FieldLocalizedDescription)
	m.Maps.Resources = v.resourceMap(FieldResources)

	if err := v.result.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

type validation struct {
	obj    map[string]any
	result ValidationResult
}

// lookup returns the value of a field; null counts as absent.
func (v *validation) lookup(f Field) (any, bool) {
	val, ok := v.obj[f.Name()]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

func (v *validation) str(f Field, required bool) string {
	val, ok := v.lookup(f)
	if !ok {
		if required {
			v.result.AddIssue(f.Name(), "", "is required")
		}
		return ""
	}
	return v.nonEmptyString(f.Name(), val)
}

func (v *validation) nonEmptyString(path string, val any) string {
	s, ok := val.(string)
	if !ok {
		v.result.AddIssue(path, hintString, "expected string, got %s", typeName(val))
		return ""
	}
	if s == "" {
		v.result.AddIssue(path, "", "must not be empty")
		return ""
	}
	if strings.ContainsAny(s, "\r\n") {
		v.result.AddIssue(path, hintSingleLine, "must be a single line")
		return ""
	}
	return s
}

func (v *validation) url(f Field) string {
	val, ok := v.lookup(f)
	if !ok {
		return ""
	}
	return v.urlValue(f.Name(), val)
}

func (v *validation) urlValue(path string, val any) string {
	s := v.nonEmptyString(path, val)
	if s == "" {
		return ""
	}
	if !IsURL(s) {
		v.result.AddIssue(path, hintURL, "invalid URL %q", s)
		return ""
	}
	return s
}

// boolean returns nil when the flag is absent.
func (v *validation) boolean(f Field) *bool {
	val, ok := v.lookup(f)
	if !ok {
		return nil
	}
	b, isBool := val.(bool)
	if !isBool {
		v.result.AddIssue(f.Name(), "Use true or false without quotes", "expected boolean, got %s", typeName(val))
		return nil
	}
	return &b
}

func (v *validation) enum(f Field, allowed []string, def string) string {
	val, ok := v.lookup(f)
	if !ok {
		return def
	}
	s, isString := val.(string)
	if !isString {
		v.result.AddIssue(f.Name(), "", "expected one of %s, got %s", quoteList(allowed), typeName(val))
		return def
	}
	if !slices.Contains(allowed, s) {
		v.result.AddIssue(f.Name(), "", "invalid value %q, expected one of %s", s, quoteList(allowed))
		return def
	}
	return s
}

func (v *validation) array(f Field) ([]any, bool) {
	val, ok := v.lookup(f)
	if !ok {
		return nil, false
	}
	items, isArray := asArray(val)
	if !isArray {
		v.result.AddIssue(f.Name(), "Use a YAML/JSON list, even for a single value", "expected array, got %s", typeName(val))
		return nil, false
	}
	return items, true
}

func (v *validation) stringSet(f Field, urls bool) StringSet {
	items, ok := v.array(f)
	if !ok {
		return nil
	}
	set := make(StringSet, len(items))
	for i, item := range items {
		path := f.Name() + "." + strconv.Itoa(i)
		var s string
		if urls {
			s = v.urlValue(path, item)
		} else {
			s = v.nonEmptyString(path, item)
		}
		if s != "" {
			set.Add(s)
		}
	}
	return set
}

func (v *validation) grantSet(f Field) GrantSet {
	items, ok := v.array(f)
	if !ok {
		return nil
	}
	set := make(GrantSet, len(items))
	for i, item := range items {
		path := f.Name() + "." + strconv.Itoa(i)
		s, isString := item.(string)
		if !isString {
			v.result.AddIssue(path, hintGrant, "expected grant name, got %s", typeName(item))
			continue
		}
		g, known := ParseGrant(s)
		if !known {
			v.result.AddIssue(path, hintGrant, "unknown grant %q", s)
			continue
		}
		set.Add(g)
	}
	return set
}

// record returns the entries of an object-valued field with sorted keys.
func (v *validation) record(f Field) ([]string, map[string]any, bool) {
	val, ok := v.lookup(f)
	if !ok {
		return nil, nil, false
	}
	obj, isObject := asObject(val)
	if !isObject {
		v.result.AddIssue(f.Name(), "", "expected object, got %s", typeName(val))
		return nil, nil, false
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, obj, true
}

func (v *validation) localeMap(f Field) *OrderedMap {
	keys, obj, ok := v.record(f)
	if !ok {
		return nil
	}
	out := NewOrderedMap()
	for _, locale := range keys {
		path := f.Name() + "." + locale
		if !IsLocaleTag(locale) {
			v.result.AddIssue(path, hintLocale, "invalid locale tag %q", locale)
			continue
		}
		if s := v.nonEmptyString(path, obj[locale]); s != "" {
			out.Set(locale, s)
		}
	}
	return out
}

func (v *validation) resourceMap(f Field) *OrderedMap {
	keys, obj, ok := v.record(f)
	if !ok {
		return nil
	}
	out := NewOrderedMap()
	for _, id := range keys {
		path := f.Name() + "." + id
		if !IsResourceID(id) {
			v.result.AddIssue(path, hintResource, "invalid resource id %q", id)
			continue
		}
		if u := v.urlValue(path, obj[id]); u != "" {
			out.Set(id, u)
		}
	}
	return out
}

// IsURL reports whether s is an absolute URL: it must parse, carry a scheme,
// and have a host, path or opaque part.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}

// IsLocaleTag reports whether s has the xx-XX shape.
func IsLocaleTag(s string) bool {
	return localeTagRegex.MatchString(s)
}

// IsResourceID reports whether s is a non-empty identifier without whitespace.
func IsResourceID(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) == -1
}

func asObject(val any) (map[string]any, bool) {
	switch t := val.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = item
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = item
		}
		return out, true
	}
	return nil, false
}

func asArray(val any) ([]any, bool) {
	switch t := val.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []Grant:
		out := make([]any, len(t))
		for i, g := range t {
			out[i] = string(g)
		}
		return out, true
	}
	return nil, false
}

// typeName names the JSON type of a decoded value for error messages.
func typeName(val any) string {
	switch val.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any, map[any]any, map[string]string:
		return "object"
	default:
		return fmt.Sprintf("%T", val)
	}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, s := range values {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, ", ")
}
