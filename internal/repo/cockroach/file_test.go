package cockroach

import (
	"context"
	"errors"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFileID = "0b7f7a3e-2a8f-4c55-9d4e-8f1d2c3b4a50"

func newMockRepo(t *testing.T) (repo.File, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewFile(sqlx.NewDb(db, "sqlmock")), mock
}

func fileRows(created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(fileColumns).AddRow(
		testFileID, "1700000000000-abcdef123456.pdf", "cv.pdf", entity.MimePDF, int64(42),
		"https://storage.test/recruit/uploads/resume/1700000000000-abcdef123456.pdf",
		"uploads/resume/1700000000000-abcdef123456.pdf", "cand-1", "RESUME", created, created, nil,
	)
}

func TestAddFile(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Now().UTC()
	candidateID := "cand-1"
	file := &entity.FileUpload{
		Filename:     "1700000000000-abcdef123456.pdf",
		OriginalName: "cv.pdf",
		MimeType:     entity.MimePDF,
		Size:         42,
		URL:          "https://storage.test/x",
		Key:          "uploads/resume/1700000000000-abcdef123456.pdf",
		CandidateID:  &candidateID,
		Type:         entity.UploadTypeResume,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO file_upload (filename,original_name,mime_type,size,url,storage_key,candidate_id,type,created_at,updated_at) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id",
	)).
		WithArgs(file.Filename, file.OriginalName, file.MimeType, file.Size, file.URL, file.Key, "cand-1", "RESUME", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testFileID))

	id, err := r.AddFile(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, testFileID, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFileError(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO file_upload").WillReturnError(errors.New("duplicate key"))

	_, err := r.AddFile(context.Background(), &entity.FileUpload{Type: entity.UploadTypeDocument})
	assert.EqualError(t, err, "duplicate key")
}

func TestGetFile(t *testing.T) {
	r, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM file_upload WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(testFileID).
		WillReturnRows(fileRows(created))

	file, err := r.GetFile(context.Background(), testFileID, false)
	require.NoError(t, err)
	assert.Equal(t, testFileID, file.ID)
	assert.Equal(t, entity.UploadTypeResume, file.Type)
	assert.Equal(t, "uploads/resume/1700000000000-abcdef123456.pdf", file.Key)
	require.NotNil(t, file.CandidateID)
	assert.Equal(t, "cand-1", *file.CandidateID)
	assert.Nil(t, file.DeletedAt)
	assert.Equal(t, created, file.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFileIncludeDeleted(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM file_upload WHERE id = $1")).
		WithArgs(testFileID).
		WillReturnRows(fileRows(time.Now()))

	_, err := r.GetFile(context.Background(), testFileID, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFileNotFound(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery("FROM file_upload").WillReturnRows(sqlmock.NewRows(fileColumns))

	_, err := r.GetFile(context.Background(), testFileID, false)
	assert.ErrorIs(t, err, repo.ErrFileNotFound)

	// не uuid - в базу не ходим
	_, err = r.GetFile(context.Background(), "not-a-uuid", false)
	assert.ErrorIs(t, err, repo.ErrFileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFileByKey(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM file_upload WHERE storage_key = $1")).
		WithArgs("uploads/resume/1700000000000-abcdef123456.pdf").
		WillReturnRows(fileRows(time.Now()))

	file, err := r.GetFileByKey(context.Background(), "uploads/resume/1700000000000-abcdef123456.pdf")
	require.NoError(t, err)
	assert.Equal(t, testFileID, file.ID)
}

func TestListFiles(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM file_upload WHERE candidate_id = $1 AND type = $2 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT 10 OFFSET 20",
	)).
		WithArgs("cand-1", "RESUME").
		WillReturnRows(fileRows(time.Now()))

	files, err := r.ListFiles(context.Background(), &entity.ListFilesRequest{
		CandidateID: "cand-1",
		Type:        entity.UploadTypeResume,
		Limit:       10,
		Offset:      20,
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, testFileID, files[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilesEmpty(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM file_upload ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(fileColumns))

	files, err := r.ListFiles(context.Background(), &entity.ListFilesRequest{IncludeDeleted: true})
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestUpdateFileCandidate(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE file_upload SET candidate_id = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL")).
		WithArgs(nil, sqlmock.AnyArg(), testFileID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.UpdateFileCandidate(context.Background(), testFileID, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteFile(t *testing.T) {
	r, mock := newMockRepo(t)
	deletedAt := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE file_upload SET deleted_at = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL")).
		WithArgs(deletedAt, deletedAt, testFileID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.SoftDeleteFile(context.Background(), testFileID, deletedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteFileNotFound(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE file_upload").WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.SoftDeleteFile(context.Background(), testFileID, time.Now())
	assert.ErrorIs(t, err, repo.ErrFileNotFound)
}
