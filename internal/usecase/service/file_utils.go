package service

import (
	"fmt"
	"recruit-backend/internal/entity"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const randomTokenLength = 12

// ValidateFile проверяет размер и MIME-тип. Размер проверяется первым, возвращается только первая ошибка
func ValidateFile(size int64, mimeType string, policy entity.UploadPolicy) entity.FileValidationResult {
	policy = policy.WithDefaults()

	if size > policy.MaxSizeBytes {
		return entity.FileValidationResult{
			IsValid: false,
			Error:   fmt.Sprintf("File size exceeds maximum limit of %sMB", formatMegabytes(policy.MaxSizeBytes)),
		}
	}

	if !slices.Contains(policy.AllowedMimeTypes, mimeType) {
		return entity.FileValidationResult{
			IsValid: false,
			Error:   "File type not allowed. Allowed types: " + strings.Join(policy.AllowedMimeTypes, ", "),
		}
	}

	return entity.FileValidationResult{IsValid: true}
}

func formatMegabytes(size int64) string {
	return strconv.FormatFloat(float64(size)/(1024*1024), 'f', -1, 64)
}

// SanitizeFilename заменяет каждый символ вне [A-Za-z0-9.-] на "_"
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// FileExtension возвращает расширение в нижнем регистре без точки. Если точки нет - пустую строку
func FileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// GenerateUniqueFilename строит имя вида <unix ms>-<случайный токен>.<расширение>.
// Координация между загрузками не нужна: уникальность даёт случайная часть
func GenerateUniqueFilename(originalName string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:randomTokenLength]
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), token)
	if ext := FileExtension(originalName); ext != "" {
		filename += "." + ext
	}
	return filename
}

// StorageKey детерминированно выводит ключ хранилища из типа загрузки и имени файла
func StorageKey(uploadType entity.UploadType, filename string) string {
	return uploadType.Prefix() + "/" + filename
}

func GenerateUniqueKey(originalName string, uploadType entity.UploadType) (string, string) {
	filename := GenerateUniqueFilename(originalName)
	return filename, StorageKey(uploadType, filename)
}
