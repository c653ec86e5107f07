// Package media defines the catalog's record model.
package media

import (
	"fmt"
	"strings"
	"time"
)

// FileType is the kind of media a record points at.
type FileType string

const (
	FileImage FileType = "image"
	FileVideo FileType = "video"
	FileAudio FileType = "audio"
)

// ParseFileType accepts the type names case-insensitively.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image", "photo":
		return FileImage, nil
	case "video":
		return FileVideo, nil
	case "audio":
		return FileAudio, nil
	default:
		return "", fmt.Errorf("unknown file type %q (use image, video or audio)", s)
	}
}

// Status is the lifecycle state of a record. Deleted records stay in the
// store until pruned but never reach a search result.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Record is a single catalog entry. Nullable text fields are pointers; a nil
// field never matches a non-empty pattern.
type Record struct {
	ID           string
	Topic        *string
	Title        *string
	Location     *string
	People       *string // comma-joined names
	Tags         *string // comma-joined
	Albums       *string // comma-joined album tags
	Date         int     // day number, see DateParts.DayNumber
	DateText     string  // DD.MM.YYYY, unknown components are 00
	Precision    Precision
	Rank         float64 // manual order within one Date
	FileType     FileType
	Extension    string
	CreatedAt    time.Time
	PrivacyLevel int
	PeopleCount  int
	Status       Status
}

// Text returns a pointer to s, for filling nullable fields.
func Text(s string) *string {
	return &s
}

// Value dereferences a nullable field, mapping nil to "".
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PeopleCountOf counts the non-empty names in a comma-joined people list.
func PeopleCountOf(people string) int {
	n := 0
	for _, name := range strings.Split(people, ",") {
		if strings.TrimSpace(name) != "" {
			n++
		}
	}
	return n
}
