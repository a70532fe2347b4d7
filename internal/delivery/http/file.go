package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"recruit-backend/internal/delivery/http/utils"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/usecase"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

const octetStream = "application/octet-stream"

type File struct {
	fileUseCase usecase.File
	authManager utils.Auth
	// timeout ограничивает каждый вызов хранилища и OCR внутри запроса
	timeout time.Duration
}

func NewFile(fileUseCase usecase.File, authManager utils.Auth, timeout time.Duration) *File {
	return &File{
		fileUseCase: fileUseCase,
		authManager: authManager,
		timeout:     timeout,
	}
}

func (f *File) Configure(server *echo.Group) {
	server.Use(f.authManager.Middleware)
	server.POST("/upload", f.Upload)
	server.GET("", f.List)
	server.GET("/", f.List)
	server.GET("/:id", f.GetDownloadLink)
	server.GET("/:id/text", f.ExtractText)
	server.PATCH("/:id", f.Attach)
	server.DELETE("/:id", f.Delete)
}

type uploadMetadata struct {
	CandidateID *string           `json:"candidateId"`
	Type        entity.UploadType `json:"type"`
}

func (f *File) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "No file provided",
		})
	}

	metadata, err := readUploadMetadata(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid input",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.Logger().Errorf("Ошибка чтения файла: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Ошибка чтения файла",
		})
	}
	defer func() { _ = src.Close() }()
	rawBytes, err := io.ReadAll(src)
	if err != nil {
		c.Logger().Errorf("Ошибка чтения файла: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Ошибка чтения файла",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), f.timeout)
	defer cancel()
	file, err := f.fileUseCase.UploadFile(ctx, &entity.UploadFileRequest{
		RawBytes:     rawBytes,
		ContentType:  DeclaredContentType(fileHeader.Header.Get(echo.HeaderContentType), rawBytes),
		OriginalName: fileHeader.Filename,
		CandidateID:  metadata.CandidateID,
		Type:         metadata.Type,
	})
	if err != nil {
		return f.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    file,
	})
}

// readUploadMetadata читает поле metadata (JSON) или, если его нет, отдельные поля формы
func readUploadMetadata(c echo.Context) (*uploadMetadata, error) {
	metadata := &uploadMetadata{}
	if raw := c.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), metadata); err != nil {
			return nil, err
		}
	} else {
		metadata.Type = entity.UploadType(c.FormValue("type"))
		if candidateID := c.FormValue("candidate_id"); candidateID != "" {
			metadata.CandidateID = &candidateID
		}
	}
	if metadata.CandidateID != nil && *metadata.CandidateID == "" {
		metadata.CandidateID = nil
	}
	return metadata, nil
}

// DeclaredContentType берёт тип из заголовка части формы без параметров.
// Если клиент тип не указал, он определяется по содержимому
func DeclaredContentType(header string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(header); err == nil && mediaType != octetStream {
		return mediaType
	}
	detected := mimetype.Detect(data).String()
	if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
		return mediaType
	}
	return strings.TrimSpace(strings.SplitN(detected, ";", 2)[0])
}

func (f *File) List(c echo.Context) error {
	request := &entity.ListFilesRequest{}
	if err := utils.ReadQuery(c, request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Неверный формат запроса",
		})
	}

	files, err := f.fileUseCase.ListFiles(c.Request().Context(), request)
	if err != nil {
		return f.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    files,
	})
}

func (f *File) GetDownloadLink(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), f.timeout)
	defer cancel()

	link, err := f.fileUseCase.GetDownloadLink(ctx, c.Param("id"))
	if err != nil {
		return f.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    link,
	})
}

func (f *File) ExtractText(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), f.timeout)
	defer cancel()

	text, err := f.fileUseCase.ExtractText(ctx, c.Param("id"))
	if err != nil {
		return f.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    text,
	})
}

func (f *File) Attach(c echo.Context) error {
	request := &entity.AttachFileRequest{}
	if err := utils.ReadJSON(c, request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Неверный формат запроса",
		})
	}

	file, err := f.fileUseCase.AttachToCandidate(c.Request().Context(), c.Param("id"), request.CandidateID)
	if err != nil {
		return f.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    file,
	})
}

func (f *File) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), f.timeout)
	defer cancel()

	if err := f.fileUseCase.DeleteFile(ctx, c.Param("id")); err != nil {
		return f.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
	})
}

func (f *File) writeError(c echo.Context, err error) error {
	var validationErr *usecase.ValidationError
	status, message := http.StatusInternalServerError, "Ошибка сервера"
	switch {
	case errors.As(err, &validationErr):
		status, message = http.StatusBadRequest, validationErr.Message
	case errors.Is(err, usecase.ErrFileNotFound):
		status, message = http.StatusNotFound, "File not found"
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "Внешний сервис не ответил вовремя"
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		status, message = http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, usecase.ErrExtractionFailure):
		status, message = http.StatusUnprocessableEntity, "Failed to extract text"
	case errors.Is(err, usecase.ErrStorage):
		status, message = http.StatusBadGateway, "Ошибка файлового хранилища"
	}
	if status >= http.StatusInternalServerError || status == http.StatusUnprocessableEntity {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{
		"success": false,
		"error":   message,
	})
}
