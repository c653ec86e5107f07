package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/mediacat/internal/filter"
	"github.com/runnerr0/mediacat/internal/media"
)

func newSearch() *SearchCommand {
	return &SearchCommand{PeopleMin: -1, PeopleMax: -1, Privacy: -1, globals: &GlobalFlags{}}
}

func TestBuildSpec_EmptyFlagsAreIdentity(t *testing.T) {
	rt := newTestEnv(t)
	spec, err := newSearch().buildSpec(rt, nil)
	require.NoError(t, err)

	assert.True(t, spec.DateRange.IsZero())
	assert.True(t, spec.CreatedAtRange.IsZero())
	assert.True(t, spec.PeopleCountRange.IsZero())
	assert.Equal(t, filter.Sort{Primary: filter.SortDate}, spec.Sort)
}

func TestBuildSpec_Ranges(t *testing.T) {
	rt := newTestEnv(t)

	c := newSearch()
	c.DateFrom = "2020"
	c.DateTo = "06.2020"
	c.DateRange = true
	c.PeopleMin = 2
	spec, err := c.buildSpec(rt, nil)
	require.NoError(t, err)

	require.NotNil(t, spec.DateRange.Start)
	require.NotNil(t, spec.DateRange.End)
	assert.Equal(t, media.DateParts{Day: 1, Month: 1, Year: 2020}.DayNumber(), *spec.DateRange.Start)
	assert.Equal(t, media.DateParts{Day: 30, Month: 6, Year: 2020}.DayNumber(), *spec.DateRange.End)
	assert.True(t, spec.DateRange.Enabled)

	// Without --people-range the count is exact.
	assert.False(t, spec.PeopleCountRange.Enabled)
	assert.True(t, spec.PeopleCountRange.Contains(2))
	assert.False(t, spec.PeopleCountRange.Contains(3))

	c.PeopleRange = true
	spec, err = c.buildSpec(rt, nil)
	require.NoError(t, err)
	assert.True(t, spec.PeopleCountRange.Contains(30))
	assert.False(t, spec.PeopleCountRange.Contains(1))
}

func TestBuildSpec_SortFallsBackToConfig(t *testing.T) {
	rt := newTestEnv(t)
	rt.cfg.Catalog.DefaultSort = "location"
	rt.cfg.Catalog.ThenBy = "title"

	spec, err := newSearch().buildSpec(rt, nil)
	require.NoError(t, err)
	assert.Equal(t, filter.Sort{Primary: filter.SortLocation, Secondary: filter.SortTitle}, spec.Sort)

	c := newSearch()
	c.Sort = "type"
	spec, err = c.buildSpec(rt, nil)
	require.NoError(t, err)
	assert.Equal(t, filter.SortType, spec.Sort.Primary)
}

func TestBuildSpec_InvalidFlags(t *testing.T) {
	rt := newTestEnv(t)
	for _, mutate := range []func(c *SearchCommand){
		func(c *SearchCommand) { c.Sort = "size" },
		func(c *SearchCommand) { c.ThenBy = "rank" },
		func(c *SearchCommand) { c.DateFrom = "2020-01-01" },
		func(c *SearchCommand) { c.DateTo = "32.01.2020"; c.DateRange = true },
		func(c *SearchCommand) { c.CreatedFrom = "yesterday" },
	} {
		c := newSearch()
		mutate(c)
		_, err := c.buildSpec(rt, nil)
		assert.Error(t, err)
	}
}

func TestBuildSpec_ArgsBecomeQuickSearch(t *testing.T) {
	rt := newTestEnv(t)
	spec, err := newSearch().buildSpec(rt, []string{"kar", "tatili"})
	require.NoError(t, err)
	assert.Equal(t, "kar tatili", spec.QuickSearch)
}

func TestSearch_HumanOutput(t *testing.T) {
	rt := newTestEnv(t)
	ctx := context.Background()
	ids := seedRecords(t, rt,
		seed{title: "Kale", date: "10.05.2021", location: "Ankara", albums: "gezi"},
		seed{title: "Saat Kulesi", date: "01.03.2020", location: "İzmir-Ankara"},
		seed{title: "Uludağ", date: "02.01.2020", location: "Bursa"},
		seed{title: "Gizli", date: "02.01.2020", location: "Ankara", privacy: 5},
	)

	c := newSearch()
	c.Quick = "ankara"
	var err error
	output := captureOutput(t, func() { err = c.executeWithStore(ctx, rt, nil) })
	require.NoError(t, err)

	assert.Contains(t, output, `Found 2 records for "ankara"`)
	assert.Contains(t, output, "1. 01.03.2020  Saat Kulesi")
	assert.Contains(t, output, "2. 10.05.2021  Kale")
	assert.Contains(t, output, "Ankara · gezi")
	assert.Contains(t, output, ids[0])
	assert.NotContains(t, output, "Gizli")

	c.Privacy = 5
	output = captureOutput(t, func() { err = c.executeWithStore(ctx, rt, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Found 3 records")
}

func TestSearch_NoResults(t *testing.T) {
	rt := newTestEnv(t)
	c := newSearch()
	c.Title = "yok"
	var err error
	output := captureOutput(t, func() { err = c.executeWithStore(context.Background(), rt, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "No records found")
}

func TestSearch_ValidationErrorStillPrintsResults(t *testing.T) {
	rt := newTestEnv(t)
	seedRecords(t, rt,
		seed{title: "a", date: "01.01.2020", people: "Ali"},
		seed{title: "b", date: "02.01.2020", people: "Can"},
	)

	c := newSearch()
	c.Title = "[broken"
	var err error
	output := captureOutput(t, func() { err = c.executeWithStore(context.Background(), rt, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "No records found")
}

func TestSearch_JSONAndLimit(t *testing.T) {
	rt := newTestEnv(t)
	seedRecords(t, rt,
		seed{title: "a", date: "01.01.2020", people: "Ali,Veli"},
		seed{title: "b", date: "01.01.2020", people: "Ali"},
		seed{title: "c", date: "03.01.2020", people: "Can"},
	)

	c := newSearch()
	c.globals.JSON = true
	c.People = "Ali"
	c.Limit = 1
	var err error
	output := captureOutput(t, func() { err = c.executeWithStore(context.Background(), rt, nil) })
	require.NoError(t, err)

	var out jsonSearchOutput
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, 2, out.Count)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "a", *out.Results[0].Title)
	assert.Equal(t, "01.01.2020", out.Results[0].Date)
	assert.Equal(t, "day", out.Results[0].Precision)
	assert.Equal(t, 2, out.Results[0].PeopleCount)
}

func TestSearch_DateComponentsAndDelimitedStrategy(t *testing.T) {
	rt := newTestEnv(t)
	seedRecords(t, rt,
		seed{title: "sat", date: "29.02.2020", albums: "a010"},
		seed{title: "sun", date: "01.03.2020", albums: "a01"},
		seed{title: "month", date: "02.2020", albums: "a01"},
	)

	c := newSearch()
	c.globals.JSON = true
	c.Album = []string{"a01"}
	c.Weekdays = "Cumartesi,Pazar"

	run := func() jsonSearchOutput {
		var out jsonSearchOutput
		var err error
		output := captureOutput(t, func() { err = c.executeWithStore(context.Background(), rt, nil) })
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal([]byte(output), &out))
		return out
	}

	out := run()
	assert.Equal(t, 2, out.Count, "substring albums match a010 too; month precision has no weekday")

	rt.cfg.Search.MatchStrategy = "delimited"
	out = run()
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "sun", *out.Results[0].Title)
}
