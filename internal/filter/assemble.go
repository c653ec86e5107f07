package filter

import (
	"errors"
	"sort"
	"strings"

	"github.com/runnerr0/mediacat/internal/locale"
	"github.com/runnerr0/mediacat/internal/media"
)

// Predicate decides whether a record belongs in a result.
type Predicate func(r *media.Record) bool

// Always matches every record.
func Always(*media.Record) bool { return true }

// Never matches no record.
func Never(*media.Record) bool { return false }

func allOf(preds []Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return func(r *media.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Field names used in ValidationError for the non-text inputs.
const (
	FieldFileType Field = "file_type"
)

// ValidationError lists the Spec fields that could not be compiled. Each of
// them was compiled to Never; the rest of the filter is still usable.
type ValidationError struct {
	Fields map[Field]error
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + e.Fields[Field(n)].Error()
	}
	return "invalid filter: " + strings.Join(parts, "; ")
}

// Unwrap exposes the per-field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, err := range e.Fields {
		errs = append(errs, err)
	}
	return errs
}

// quickSearchFields are searched by a quick search, in this order.
var quickSearchFields = []Field{
	FieldTopic, FieldTitle, FieldLocation, FieldPeople, FieldTags, FieldExtension, FieldDateText,
}

// assembler builds the composite predicate for one Spec.
type assembler struct {
	parser Parser
	match  MatchStrategy
	preds  []Predicate
	errs   map[Field]error
}

func (a *assembler) add(p Predicate) {
	a.preds = append(a.preds, p)
}

func (a *assembler) fail(f Field, err error) {
	if a.errs == nil {
		a.errs = make(map[Field]error)
	}
	a.errs[f] = err
	a.add(Never)
}

func (a *assembler) err() error {
	if len(a.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: a.errs}
}

// compile assembles spec into a predicate and ordering. The privacy and
// status checks are always the first conjuncts.
func (a *assembler) compile(spec *Spec, privacyThreshold int) (Predicate, OrderBy, error) {
	a.add(func(r *media.Record) bool {
		return r.Status == media.StatusActive && r.PrivacyLevel <= privacyThreshold
	})

	a.albums(spec.Albums)

	if q := strings.TrimSpace(spec.QuickSearch); q != "" {
		a.add(quickSearch(q))
		return allOf(a.preds), OrderBy{Primary: SortDate}, a.err()
	}

	for _, fe := range spec.textFields() {
		node, err := a.parser.Parse(fe.expr)
		if err != nil {
			a.fail(fe.field, err)
			continue
		}
		if node != nil {
			a.add(CompileField(node, fe.field, a.match))
		}
	}

	a.exact(spec)
	a.ranges(spec)

	return allOf(a.preds), orderFromSort(spec.Sort), a.err()
}

func (a *assembler) albums(tags []string) {
	var selected []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 {
		return
	}
	match := a.match
	a.add(func(r *media.Record) bool {
		if r.Albums == nil {
			return false
		}
		for _, t := range selected {
			if match(*r.Albums, t) {
				return true
			}
		}
		return false
	})
}

func (a *assembler) exact(spec *Spec) {
	if loc := spec.LocationExact; loc != "" {
		a.add(func(r *media.Record) bool {
			return r.Location != nil && *r.Location == loc
		})
	}
	if spec.FileType != "" {
		ft, err := media.ParseFileType(spec.FileType)
		if err != nil {
			a.fail(FieldFileType, err)
		} else {
			a.add(func(r *media.Record) bool { return r.FileType == ft })
		}
	}
	if ext := locale.Fold(spec.FileExtension); ext != "" {
		a.add(func(r *media.Record) bool {
			return strings.Contains(locale.Fold(r.Extension), ext)
		})
	}
}

func (a *assembler) ranges(spec *Spec) {
	if dr := spec.DateRange; !dr.IsZero() {
		a.add(func(r *media.Record) bool { return dr.Contains(r.Date) })
	}
	if cr := spec.CreatedAtRange; !cr.IsZero() {
		a.add(func(r *media.Record) bool { return cr.Contains(r.CreatedAt) })
	}
	if pr := spec.PeopleCountRange; !pr.IsZero() {
		a.add(func(r *media.Record) bool { return pr.Contains(r.PeopleCount) })
	}
}

// quickSearch ORs a containment test over the quick search fields, once
// with the query as typed and once with its Turkish upper-case form.
// Containment follows SQL LIKE: ASCII letters match either case, every
// other rune must match exactly. The upper-case pass is what lets "izmir"
// find "İZMİR".
func quickSearch(q string) Predicate {
	literal := asciiLower(q)
	upper := asciiLower(locale.Upper(q))
	return func(r *media.Record) bool {
		for _, f := range quickSearchFields {
			v := f.Of(r)
			if v == nil {
				continue
			}
			lv := asciiLower(*v)
			if strings.Contains(lv, literal) || strings.Contains(lv, upper) {
				return true
			}
		}
		return false
	}
}

func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// IsValidation reports whether err carries per-field validation failures.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
