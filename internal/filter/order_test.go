package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runnerr0/mediacat/internal/media"
)

func TestOrderFromSort(t *testing.T) {
	assert.Equal(t, OrderBy{Primary: SortDate}, orderFromSort(Sort{}))
	assert.Equal(t, OrderBy{Primary: SortDate, Secondary: SortTitle}, orderFromSort(Sort{Secondary: SortTitle}))
	assert.Equal(t, OrderBy{Primary: SortTitle}, orderFromSort(Sort{Primary: SortTitle, Secondary: SortTitle}))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey(" Location ")
	assert.NoError(t, err)
	assert.Equal(t, SortLocation, k)

	k, err = ParseSortKey("")
	assert.NoError(t, err)
	assert.Equal(t, SortNone, k)

	_, err = ParseSortKey("rank")
	assert.Error(t, err)
}

func TestOrder_DateThenRank(t *testing.T) {
	a := record("a", "02.01.2020")
	a.Rank = 2
	b := record("b", "02.01.2020")
	b.Rank = 1
	c := record("c", "01.01.2020")
	c.Rank = 5
	in := []media.Record{a, b, c}

	out := Order(in, OrderBy{Primary: SortDate})
	assert.Equal(t, []string{"c", "b", "a"}, ids(out))
	assert.Equal(t, []string{"a", "b", "c"}, ids(in), "input must not be reordered")
}

func TestOrder_StableOnFullTie(t *testing.T) {
	var in []media.Record
	for _, id := range []string{"x", "y", "z"} {
		in = append(in, record(id, "01.01.2020"))
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids(Order(in, OrderBy{Primary: SortDate})))
}

func TestOrder_TurkishCollationNilFirst(t *testing.T) {
	titles := map[string]*string{
		"d": media.Text("Denizli"),
		"c": media.Text("Çanakkale"),
		"n": nil,
		"b": media.Text("Cide"),
	}
	var in []media.Record
	for _, id := range []string{"d", "c", "n", "b"} {
		r := record(id, "01.01.2020")
		r.Title = titles[id]
		in = append(in, r)
	}
	assert.Equal(t, []string{"n", "b", "c", "d"}, ids(Order(in, OrderBy{Primary: SortTitle})))
}

func TestOrder_SecondaryKey(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Location = media.Text("İzmir")
	a.FileType = media.FileVideo
	b := record("b", "05.01.2020")
	b.Location = media.Text("Ankara")
	b.FileType = media.FileVideo
	c := record("c", "03.01.2020")
	c.Location = media.Text("Bursa")
	in := []media.Record{a, b, c}

	out := Order(in, OrderBy{Primary: SortType, Secondary: SortLocation})
	assert.Equal(t, []string{"c", "b", "a"}, ids(out))

	out = Order(in, OrderBy{Primary: SortType, Secondary: SortDate})
	assert.Equal(t, []string{"c", "a", "b"}, ids(out))
}

func TestOrder_Extension(t *testing.T) {
	a := record("a", "01.01.2020")
	a.Extension = ".png"
	b := record("b", "01.01.2020")
	b.Extension = ".heic"
	assert.Equal(t, []string{"b", "a"}, ids(Order([]media.Record{a, b}, OrderBy{Primary: SortExtension})))
}
