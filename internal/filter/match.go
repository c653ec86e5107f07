package filter

import (
	"fmt"
	"strings"

	"github.com/runnerr0/mediacat/internal/media"
)

// MatchStrategy decides whether a single pattern matches a field value. The
// value of a list field is the whole comma-joined string.
type MatchStrategy func(value, pattern string) bool

// SubstringContains matches when pattern occurs anywhere in value, even
// across a list-item boundary. A tag that is a substring of another tag
// ("a01" in "a010") matches both. This is the catalog's long-standing
// behaviour for albums and mini-expressions.
func SubstringContains(value, pattern string) bool {
	return strings.Contains(value, pattern)
}

// DelimitedSetContains matches when pattern equals one comma-separated item
// of value, ignoring surrounding whitespace.
func DelimitedSetContains(value, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	for _, item := range strings.Split(value, ",") {
		if strings.TrimSpace(item) == pattern {
			return true
		}
	}
	return false
}

// Match strategy names accepted by ParseMatchStrategy.
const (
	StrategySubstring = "substring"
	StrategyDelimited = "delimited"
)

// ParseMatchStrategy looks a strategy up by its config name.
func ParseMatchStrategy(name string) (MatchStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategySubstring:
		return SubstringContains, nil
	case StrategyDelimited:
		return DelimitedSetContains, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q", name)
	}
}

// Eval interprets node against one field value. A nil value never matches a
// term; a nil node matches everything.
func Eval(node Node, value *string, match MatchStrategy) bool {
	switch n := node.(type) {
	case nil:
		return true
	case Term:
		if value == nil {
			return false
		}
		return match(*value, n.Pattern)
	case And:
		return Eval(n.Left, value, match) && Eval(n.Right, value, match)
	case Or:
		return Eval(n.Left, value, match) || Eval(n.Right, value, match)
	default:
		return false
	}
}

// Field names a text field of a record.
type Field string

const (
	FieldTopic     Field = "topic"
	FieldTitle     Field = "title"
	FieldLocation  Field = "location"
	FieldPeople    Field = "people"
	FieldTags      Field = "tags"
	FieldAlbums    Field = "albums"
	FieldExtension Field = "extension"
	FieldDateText  Field = "date_text"
)

// Of returns the field's value on r. Extension and date text are never nil.
func (f Field) Of(r *media.Record) *string {
	switch f {
	case FieldTopic:
		return r.Topic
	case FieldTitle:
		return r.Title
	case FieldLocation:
		return r.Location
	case FieldPeople:
		return r.People
	case FieldTags:
		return r.Tags
	case FieldAlbums:
		return r.Albums
	case FieldExtension:
		return &r.Extension
	case FieldDateText:
		return &r.DateText
	}
	return nil
}

// CompileField binds a parsed expression to one field of a record.
func CompileField(node Node, field Field, match MatchStrategy) Predicate {
	if node == nil {
		return Always
	}
	return func(r *media.Record) bool {
		return Eval(node, field.Of(r), match)
	}
}
