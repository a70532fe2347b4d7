package entity

import "time"

type FileEventType string

const (
	FileUploaded FileEventType = "uploaded"
	FileDeleted  FileEventType = "deleted"
	// FileOrphaned публикуется, когда блоб загружен, а запись о нём создать не удалось
	FileOrphaned FileEventType = "orphaned"
)

type FileEvent struct {
	EventID     string        `json:"-" msgpack:"event_id"`
	Type        FileEventType `json:"type" msgpack:"type"`
	FileID      string        `json:"file_id,omitempty" msgpack:"file_id"`
	StorageKey  string        `json:"storage_key" msgpack:"storage_key"`
	MimeType    string        `json:"mime_type,omitempty" msgpack:"mime_type"`
	CandidateID *string       `json:"candidate_id,omitempty" msgpack:"candidate_id"`
	OccurredAt  time.Time     `json:"-" msgpack:"occurred_at"`
}
