package filter

import (
	"time"

	"github.com/runnerr0/mediacat/internal/media"
)

// record returns an active, public, full-precision image record dated
// dateText. Tests override the fields they care about.
func record(id, dateText string) media.Record {
	parts, err := media.ParseDate(dateText)
	if err != nil {
		panic(err)
	}
	return media.Record{
		ID:        id,
		Date:      parts.DayNumber(),
		DateText:  dateText,
		Precision: media.PrecisionDay,
		Rank:      1,
		FileType:  media.FileImage,
		Extension: ".jpg",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Status:    media.StatusActive,
	}
}

func ids(records []media.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
