package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/mediacat/internal/media"
)

func compile(t *testing.T, spec Spec, threshold int) (Predicate, OrderBy) {
	t.Helper()
	pred, order, err := CompileFilter(spec, threshold)
	require.NoError(t, err)
	return pred, order
}

func TestCompile_EmptySpecIsIdentity(t *testing.T) {
	records := []media.Record{
		record("a", "01.01.2020"),
		record("b", "02.01.2020"),
		record("c", "03.01.2020"),
	}
	records[1].Title = nil
	records[2].Albums = media.Text("x")

	pred, order := compile(t, Spec{}, 0)
	assert.Equal(t, []string{"a", "b", "c"}, ids(ApplyFilter(pred, records)))
	assert.Equal(t, OrderBy{Primary: SortDate}, order)
}

func TestCompile_PrivacyAndStatusAlwaysApply(t *testing.T) {
	public := record("public", "01.01.2020")
	private := record("private", "01.01.2020")
	private.PrivacyLevel = 3
	deleted := record("deleted", "01.01.2020")
	deleted.Status = media.StatusDeleted
	records := []media.Record{public, private, deleted}

	pred, _ := compile(t, Spec{}, 2)
	assert.Equal(t, []string{"public"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{}, 3)
	assert.Equal(t, []string{"public", "private"}, ids(ApplyFilter(pred, records)))

	// Quick search cannot bypass them either.
	pred, _ = compile(t, Spec{QuickSearch: "2020"}, 2)
	assert.Equal(t, []string{"public"}, ids(ApplyFilter(pred, records)))
}

func TestCompile_AlbumsAnyOfBySubstring(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Albums = media.Text("a010,b02")
	b := record("b", "01.01.2020")
	b.Albums = media.Text("c03")
	c := record("c", "01.01.2020")
	records := []media.Record{a, b, c}

	pred, _ := compile(t, Spec{Albums: []string{"a01", "c03"}}, 0)
	// "a01" is a substring of "a010"; that match is kept on purpose.
	assert.Equal(t, []string{"a", "b"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{Albums: []string{" ", ""}}, 0)
	assert.Len(t, ApplyFilter(pred, records), 3)
}

func TestCompile_AlbumsDelimitedStrategy(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Albums = media.Text("a010,b02")

	e := NewEngine(WithMatchStrategy(DelimitedSetContains))
	pred, _, err := e.Compile(Spec{Albums: []string{"a01"}}, 0)
	require.NoError(t, err)
	assert.False(t, pred(&a))
}

func TestCompile_FieldExpressions(t *testing.T) {
	a := record("a", "01.01.2020")
	a.People = media.Text("Ali,Veli")
	a.Topic = media.Text("Bayram")
	b := record("b", "01.01.2020")
	b.People = media.Text("Can")
	b.Topic = media.Text("Bayram")
	c := record("c", "01.01.2020")
	c.People = media.Text("Ali")
	records := []media.Record{a, b, c}

	pred, _ := compile(t, Spec{People: "[Ali+Veli],Can"}, 0)
	assert.Equal(t, []string{"a", "b"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{People: "Ali", Topic: "Bayram"}, 0)
	assert.Equal(t, []string{"a"}, ids(ApplyFilter(pred, records)))
}

func TestCompile_ParseErrorFailsOnlyThatField(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Title = media.Text("Düğün")

	pred, order, err := CompileFilter(Spec{Title: "[Düğün", Sort: Sort{Primary: SortTitle}}, 0)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, FieldTitle)

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)

	assert.False(t, pred(&a), "a malformed field must not produce matches")
	assert.Equal(t, SortTitle, order.Primary)
}

func TestCompile_InvalidFileTypeFailsClosed(t *testing.T) {
	a := record("a", "01.01.2020")
	pred, _, err := CompileFilter(Spec{FileType: "document"}, 0)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, FieldFileType)
	assert.False(t, pred(&a))
}

func TestCompile_ExactFields(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Location = media.Text("Ankara")
	a.Extension = ".JPG"
	b := record("b", "01.01.2020")
	b.Location = media.Text("Ankara Kalesi")
	b.FileType = media.FileVideo
	b.Extension = ".mp4"
	records := []media.Record{a, b}

	pred, _ := compile(t, Spec{LocationExact: "Ankara"}, 0)
	assert.Equal(t, []string{"a"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{FileType: "video"}, 0)
	assert.Equal(t, []string{"b"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{FileExtension: "jp"}, 0)
	assert.Equal(t, []string{"a"}, ids(ApplyFilter(pred, records)))
}

func peopleRecords() []media.Record {
	var out []media.Record
	for i, n := range []int{0, 1, 2, 3, 5} {
		r := record(string(rune('a'+i)), "01.01.2020")
		r.PeopleCount = n
		out = append(out, r)
	}
	return out
}

func TestCompile_PeopleCountRangeSemantics(t *testing.T) {
	records := peopleRecords()

	// Disabled: exact match on start; end is ignored.
	pred, _ := compile(t, Spec{PeopleCountRange: IntRange{Start: IntBound(2), End: IntBound(NoBound)}}, 0)
	assert.Equal(t, []string{"c"}, ids(ApplyFilter(pred, records)))

	// Enabled with the same pair: at least two, unbounded above.
	pred, _ = compile(t, Spec{PeopleCountRange: Between(2, NoBound)}, 0)
	assert.Equal(t, []string{"c", "d", "e"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{PeopleCountRange: Between(NoBound, 1)}, 0)
	assert.Equal(t, []string{"a", "b"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{PeopleCountRange: Between(NoBound, NoBound)}, 0)
	assert.Len(t, ApplyFilter(pred, records), 5)

	pred, _ = compile(t, Spec{PeopleCountRange: Exactly(NoBound)}, 0)
	assert.Len(t, ApplyFilter(pred, records), 5)
}

func TestCompile_InvertedRangeMatchesNothing(t *testing.T) {
	pred, _ := compile(t, Spec{PeopleCountRange: Between(3, 1)}, 0)
	assert.Empty(t, ApplyFilter(pred, peopleRecords()))
}

func TestCompile_DateRange(t *testing.T) {
	records := []media.Record{
		record("a", "31.12.2019"),
		record("b", "01.01.2020"),
		record("c", "15.06.2020"),
		record("d", "01.01.2021"),
	}
	start := media.DateParts{Day: 1, Month: 1, Year: 2020}.DayNumber()
	end := media.DateParts{Day: 31, Month: 12, Year: 2020}.DayNumber()

	pred, _ := compile(t, Spec{DateRange: Between(start, end)}, 0)
	assert.Equal(t, []string{"b", "c"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{DateRange: IntRange{Start: &start, End: &end}}, 0)
	assert.Equal(t, []string{"b"}, ids(ApplyFilter(pred, records)))
}

func TestCompile_CreatedAtRange(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var records []media.Record
	for i := 0; i < 3; i++ {
		r := record(string(rune('a'+i)), "01.01.2020")
		r.CreatedAt = t0.Add(time.Duration(i) * 24 * time.Hour)
		records = append(records, r)
	}

	pred, _ := compile(t, Spec{CreatedAtRange: TimeRange{Start: t0.Add(24 * time.Hour)}}, 0)
	assert.Equal(t, []string{"b"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{CreatedAtRange: TimeRange{Start: t0.Add(24 * time.Hour), Enabled: true}}, 0)
	assert.Equal(t, []string{"b", "c"}, ids(ApplyFilter(pred, records)))

	pred, _ = compile(t, Spec{CreatedAtRange: TimeRange{End: t0, Enabled: true}}, 0)
	assert.Equal(t, []string{"a"}, ids(ApplyFilter(pred, records)))
}

func TestCompile_QuickSearchCase(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Location = media.Text("ANKARA")
	b := record("b", "01.01.2020")
	b.Location = media.Text("İzmir-Ankara")
	c := record("c", "01.01.2020")
	c.Location = media.Text("Bursa")
	records := []media.Record{a, b, c}

	pred, order := compile(t, Spec{QuickSearch: "ankara"}, 0)
	assert.Equal(t, []string{"a", "b"}, ids(ApplyFilter(pred, records)))
	assert.Equal(t, OrderBy{Primary: SortDate}, order)
}

func TestCompile_QuickSearchTurkishUpper(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Title = media.Text("İZMİR GEZİSİ")
	pred, _ := compile(t, Spec{QuickSearch: "izmir"}, 0)
	assert.True(t, pred(&a))
}

func TestCompile_QuickSearchFields(t *testing.T) {
	r := record("a", "07.03.2011")
	r.Extension = ".heic"
	r.Tags = media.Text("kar,kış")

	for _, q := range []string{"heic", "03.2011", "kış"} {
		pred, _ := compile(t, Spec{QuickSearch: q}, 0)
		assert.True(t, pred(&r), "quick search %q", q)
	}
	pred, _ := compile(t, Spec{QuickSearch: "yaz"}, 0)
	assert.False(t, pred(&r))
}

func TestCompile_QuickSearchOverridesDetailedFields(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Title = media.Text("Deniz")
	a.Albums = media.Text("tatil")
	b := record("b", "01.01.2020")
	b.Title = media.Text("Deniz")
	records := []media.Record{a, b}

	spec := Spec{
		QuickSearch:      "Deniz",
		Title:            "Dağ",
		FileType:         "video",
		PeopleCountRange: Exactly(4),
		Sort:             Sort{Primary: SortTitle},
	}
	pred, order, err := CompileFilter(spec, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(ApplyFilter(pred, records)))
	assert.Equal(t, OrderBy{Primary: SortDate}, order)

	// Albums still narrow a quick search.
	spec.Albums = []string{"tatil"}
	pred, _ = compile(t, spec, 0)
	assert.Equal(t, []string{"a"}, ids(ApplyFilter(pred, records)))
}

func TestValidationError_Message(t *testing.T) {
	_, _, err := CompileFilter(Spec{Title: "[a", Tags: "b+"}, 0)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "tags:")
	assert.Contains(t, msg, "title:")
	assert.Less(t, len("invalid filter: "), len(msg))
}
