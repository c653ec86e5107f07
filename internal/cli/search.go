package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/mediacat/internal/filter"
	"github.com/runnerr0/mediacat/internal/media"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt, args)
	})
}

// buildSpec turns the flags into a filter.Spec. Sort keys missing from the
// flags come from the config.
func (c *SearchCommand) buildSpec(rt *env, args []string) (filter.Spec, error) {
	quick := c.Quick
	if quick == "" && len(args) > 0 {
		quick = strings.Join(args, " ")
	}

	spec := filter.Spec{
		Albums:        c.Album,
		Topic:         c.Topic,
		Title:         c.Title,
		Location:      c.Location,
		People:        c.People,
		Tags:          c.Tags,
		QuickSearch:   quick,
		LocationExact: c.LocationExact,
		FileType:      c.Type,
		FileExtension: c.Ext,
		Days:          c.Days,
		Months:        c.Months,
		Years:         c.Years,
		Weekdays:      c.Weekdays,
	}

	var err error
	if spec.DateRange, err = c.dateRange(); err != nil {
		return spec, err
	}
	if spec.CreatedAtRange, err = c.createdRange(); err != nil {
		return spec, err
	}
	if c.PeopleRange {
		spec.PeopleCountRange = filter.Between(c.PeopleMin, c.PeopleMax)
	} else {
		spec.PeopleCountRange = filter.Exactly(c.PeopleMin)
	}

	primary, secondary := c.Sort, c.ThenBy
	if primary == "" {
		primary = rt.cfg.Catalog.DefaultSort
	}
	if secondary == "" {
		secondary = rt.cfg.Catalog.ThenBy
	}
	if spec.Sort.Primary, err = filter.ParseSortKey(primary); err != nil {
		return spec, fmt.Errorf("invalid --sort: %w", err)
	}
	if spec.Sort.Secondary, err = filter.ParseSortKey(secondary); err != nil {
		return spec, fmt.Errorf("invalid --then-by: %w", err)
	}

	return spec, nil
}

func (c *SearchCommand) dateRange() (filter.IntRange, error) {
	bound := func(flag, s string, end bool) (int, error) {
		if s == "" {
			return filter.NoBound, nil
		}
		n, err := parseDayNumber(s, end)
		if err != nil {
			return 0, fmt.Errorf("invalid --%s: %w", flag, err)
		}
		return n, nil
	}

	from, err := bound("date-from", c.DateFrom, false)
	if err != nil {
		return filter.IntRange{}, err
	}
	if !c.DateRange {
		return filter.Exactly(from), nil
	}
	to, err := bound("date-to", c.DateTo, true)
	if err != nil {
		return filter.IntRange{}, err
	}
	return filter.Between(from, to), nil
}

func (c *SearchCommand) createdRange() (filter.TimeRange, error) {
	var r filter.TimeRange
	var err error
	if c.CreatedFrom != "" {
		if r.Start, err = parseTime(c.CreatedFrom, false); err != nil {
			return r, fmt.Errorf("invalid --created-from: %w", err)
		}
	}
	if !c.CreatedRange {
		return r, nil
	}
	r.Enabled = true
	if c.CreatedTo != "" {
		if r.End, err = parseTime(c.CreatedTo, true); err != nil {
			return r, fmt.Errorf("invalid --created-to: %w", err)
		}
	}
	return r, nil
}

// threshold is --privacy when given, else the configured threshold.
func (c *SearchCommand) threshold(rt *env) int {
	if c.Privacy >= 0 {
		return c.Privacy
	}
	return rt.cfg.Catalog.PrivacyThreshold
}

// executeWithStore runs the search against a provided env (for testing).
func (c *SearchCommand) executeWithStore(ctx context.Context, rt *env, args []string) error {
	spec, err := c.buildSpec(rt, args)
	if err != nil {
		return err
	}

	engine, err := newEngine(rt.cfg, rt.logger)
	if err != nil {
		return err
	}

	threshold := c.threshold(rt)
	candidates, err := rt.store.Candidates(ctx, threshold)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}

	results, err := engine.Run(spec, threshold, candidates)
	if err != nil {
		if !filter.IsValidation(err) {
			return fmt.Errorf("search failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	total := len(results)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}

	if c.globals != nil && c.globals.JSON {
		return printRecordsJSON(spec.QuickSearch, total, results)
	}
	return printRecordsHuman(spec.QuickSearch, total, results)
}

func printRecordsHuman(quick string, total int, results []media.Record) error {
	if total == 0 {
		if quick != "" {
			fmt.Printf("No records found for %q\n", quick)
		} else {
			fmt.Println("No records found")
		}
		return nil
	}

	if quick != "" {
		fmt.Printf("Found %d %s for %q\n\n", total, plural(total, "record"), quick)
	} else {
		fmt.Printf("Found %d %s\n\n", total, plural(total, "record"))
	}

	for i, r := range results {
		fmt.Printf("%d. %s  %s", i+1, r.DateText, displayTitle(&r))
		fmt.Printf("  (%s %s)\n", r.FileType, r.Extension)

		var meta []string
		for _, v := range []*string{r.Location, r.People, r.Albums} {
			if v != nil && *v != "" {
				meta = append(meta, *v)
			}
		}
		if len(meta) > 0 {
			fmt.Printf("   %s\n", strings.Join(meta, " · "))
		}
		fmt.Printf("   %s\n", r.ID)

		if i < len(results)-1 {
			fmt.Println()
		}
	}

	if len(results) < total {
		fmt.Printf("\n... %d more\n", total-len(results))
	}
	return nil
}

func displayTitle(r *media.Record) string {
	if r.Title != nil && *r.Title != "" {
		return *r.Title
	}
	return "(untitled)"
}

type jsonRecord struct {
	ID           string  `json:"id"`
	Title        *string `json:"title"`
	Topic        *string `json:"topic"`
	Location     *string `json:"location"`
	People       *string `json:"people"`
	Tags         *string `json:"tags"`
	Albums       *string `json:"albums"`
	Date         string  `json:"date"`
	Precision    string  `json:"precision"`
	Rank         float64 `json:"rank"`
	FileType     string  `json:"file_type"`
	Extension    string  `json:"extension"`
	CreatedAt    string  `json:"created_at"`
	PrivacyLevel int     `json:"privacy_level"`
	PeopleCount  int     `json:"people_count"`
	Status       string  `json:"status"`
}

func toJSONRecord(r *media.Record) jsonRecord {
	return jsonRecord{
		ID:           r.ID,
		Title:        r.Title,
		Topic:        r.Topic,
		Location:     r.Location,
		People:       r.People,
		Tags:         r.Tags,
		Albums:       r.Albums,
		Date:         r.DateText,
		Precision:    r.Precision.String(),
		Rank:         r.Rank,
		FileType:     string(r.FileType),
		Extension:    r.Extension,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		PrivacyLevel: r.PrivacyLevel,
		PeopleCount:  r.PeopleCount,
		Status:       string(r.Status),
	}
}

type jsonSearchOutput struct {
	Count   int          `json:"count"`
	Quick   string       `json:"quick,omitempty"`
	Results []jsonRecord `json:"results"`
}

func printRecordsJSON(quick string, total int, results []media.Record) error {
	out := jsonSearchOutput{
		Count:   total,
		Quick:   quick,
		Results: make([]jsonRecord, len(results)),
	}
	for i := range results {
		out.Results[i] = toJSONRecord(&results[i])
	}
	return writeJSON(out)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
