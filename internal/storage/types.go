package storage

import "errors"

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// Stats holds aggregate statistics about the catalog database.
type Stats struct {
	TotalRecords      int64
	ActiveRecords     int64
	DeletedRecords    int64
	OldestDate        string // DD.MM.YYYY of the earliest active record
	NewestDate        string
	DatabaseSizeBytes int64
	ByType            []TypeCount
	TopAlbums         []AlbumCount
}

// TypeCount pairs a file type with its active record count.
type TypeCount struct {
	FileType string
	Count    int64
}

// AlbumCount pairs an album tag with the number of active records in it.
type AlbumCount struct {
	Album string
	Count int64
}

// AuditEntry is one line of the audit log written by mutating operations.
type AuditEntry struct {
	Action   string
	Detail   string
	RecordID string
}
