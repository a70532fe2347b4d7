package entity

import (
	"strings"
	"time"
)

type UploadType string

const (
	UploadTypeResume   UploadType = "RESUME"
	UploadTypeDocument UploadType = "DOCUMENT"
)

func (t UploadType) Valid() bool {
	return t == UploadTypeResume || t == UploadTypeDocument
}

// Prefix возвращает логическое пространство ключей в объектном хранилище для типа загрузки
func (t UploadType) Prefix() string {
	return "uploads/" + strings.ToLower(string(t))
}

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"

	DefaultMaxUploadSize int64 = 10 * 1024 * 1024
)

type UploadPolicy struct {
	MaxSizeBytes     int64    `json:"maxSizeBytes"`
	AllowedMimeTypes []string `json:"allowedMimeTypes"`
}

func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxSizeBytes:     DefaultMaxUploadSize,
		AllowedMimeTypes: []string{MimePDF, MimeDOC, MimeDOCX},
	}
}

// WithDefaults подставляет значения по умолчанию вместо незаданных полей
func (p UploadPolicy) WithDefaults() UploadPolicy {
	def := DefaultUploadPolicy()
	if p.MaxSizeBytes <= 0 {
		p.MaxSizeBytes = def.MaxSizeBytes
	}
	if len(p.AllowedMimeTypes) == 0 {
		p.AllowedMimeTypes = def.AllowedMimeTypes
	}
	return p
}

type FileValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

type FileUpload struct {
	ID           string     `json:"id" db:"id"`
	Filename     string     `json:"filename" db:"filename"`
	OriginalName string     `json:"originalName" db:"original_name"`
	MimeType     string     `json:"mimeType" db:"mime_type"`
	Size         int64      `json:"size" db:"size"`
	URL          string     `json:"url" db:"url"`
	Key          string     `json:"key" db:"storage_key"`
	CandidateID  *string    `json:"candidateId,omitempty" db:"candidate_id"`
	Type         UploadType `json:"type" db:"type"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

type UploadFileRequest struct {
	RawBytes     []byte        `json:"-"`
	ContentType  string        `json:"-"`
	OriginalName string        `json:"-"`
	CandidateID  *string       `json:"candidateId"`
	Type         UploadType    `json:"type"`
	Policy       *UploadPolicy `json:"-"`
}

type AttachFileRequest struct {
	CandidateID *string `json:"candidateId"`
}

type ListFilesRequest struct {
	CandidateID    string     `query:"candidate_id"`
	Type           UploadType `query:"type"`
	IncludeDeleted bool       `query:"include_deleted"`
	Limit          uint64     `query:"limit"`
	Offset         uint64     `query:"offset"`
}

type DownloadLink struct {
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mimeType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExtractedText живёт только в рамках одного запроса и нигде не сохраняется
type ExtractedText struct {
	FileID   string `json:"fileId"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// TextBlock - единица результата сервиса распознавания текста
type TextBlock struct {
	Text string `json:"text"`
}
