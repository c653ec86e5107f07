package filter

import (
	"io"
	"log/slog"

	"github.com/runnerr0/mediacat/internal/media"
)

// Engine compiles and runs catalog queries. It holds no per-query state
// and may be shared; the privacy threshold is passed with every query.
type Engine struct {
	parser Parser
	match  MatchStrategy
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithParser replaces the mini-expression parser.
func WithParser(p Parser) Option {
	return func(e *Engine) { e.parser = p }
}

// WithMatchStrategy replaces SubstringContains for albums and terms.
func WithMatchStrategy(m MatchStrategy) Option {
	return func(e *Engine) { e.match = m }
}

// WithLogger sets the logger stage counts are written to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an Engine using FirstSplitParser and SubstringContains
// unless options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		parser: FirstSplitParser{},
		match:  SubstringContains,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile turns spec into a predicate and an ordering. A non-nil error is
// a *ValidationError; the predicate and ordering are still valid and treat
// every failing field as matching nothing.
func (e *Engine) Compile(spec Spec, privacyThreshold int) (Predicate, OrderBy, error) {
	a := assembler{parser: e.parser, match: e.match}
	return a.compile(&spec, privacyThreshold)
}

// Run executes spec over records: compile, filter, date-component passes,
// then sort. Each stage consumes the whole output of the previous one. The
// result is returned even when err is a *ValidationError.
func (e *Engine) Run(spec Spec, privacyThreshold int, records []media.Record) ([]media.Record, error) {
	pred, order, verr := e.Compile(spec, privacyThreshold)
	if verr != nil {
		e.logger.Debug("filter has invalid fields", slog.Any("error", verr))
	}

	matched := ApplyFilter(pred, records)
	narrowed := ApplyDateDimensions(matched, spec)
	out := Order(narrowed, order)

	e.logger.Debug("filter applied",
		slog.Int("candidates", len(records)),
		slog.Int("matched", len(matched)),
		slog.Int("after_dates", len(narrowed)),
		slog.String("order", string(order.Primary)+","+string(order.Secondary)),
		slog.Bool("quick", spec.QuickSearch != ""),
	)
	return out, verr
}

// ApplyFilter keeps the records pred accepts, in input order.
func ApplyFilter(pred Predicate, records []media.Record) []media.Record {
	out := make([]media.Record, 0, len(records))
	for i := range records {
		if pred(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

var defaultEngine = NewEngine()

// CompileFilter compiles spec with the default engine.
func CompileFilter(spec Spec, privacyThreshold int) (Predicate, OrderBy, error) {
	return defaultEngine.Compile(spec, privacyThreshold)
}
