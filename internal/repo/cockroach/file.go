package cockroach

import (
	"context"
	"database/sql"
	"errors"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const fileTable = "file_upload"

var fileColumns = []string{
	"id",
	"filename",
	"original_name",
	"mime_type",
	"size",
	"url",
	"storage_key",
	"candidate_id",
	"type",
	"created_at",
	"updated_at",
	"deleted_at",
}

type File struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

func NewFile(db *sqlx.DB) repo.File {
	return &File{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (f *File) AddFile(ctx context.Context, file *entity.FileUpload) (string, error) {
	query, args, err := f.builder.
		Insert(fileTable).
		Columns("filename", "original_name", "mime_type", "size", "url", "storage_key", "candidate_id", "type", "created_at", "updated_at").
		Values(file.Filename, file.OriginalName, file.MimeType, file.Size, file.URL, file.Key, file.CandidateID, file.Type, file.CreatedAt, file.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := f.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (f *File) GetFile(ctx context.Context, id string, includeDeleted bool) (*entity.FileUpload, error) {
	// идентификатор не uuid - такой записи точно нет, в базу не ходим
	if _, err := uuid.Parse(id); err != nil {
		return nil, repo.ErrFileNotFound
	}
	builder := f.builder.Select(fileColumns...).From(fileTable).Where(sq.Eq{"id": id})
	if !includeDeleted {
		builder = builder.Where("deleted_at IS NULL")
	}
	return f.getOne(ctx, builder)
}

func (f *File) GetFileByKey(ctx context.Context, key string) (*entity.FileUpload, error) {
	return f.getOne(ctx, f.builder.Select(fileColumns...).From(fileTable).Where(sq.Eq{"storage_key": key}))
}

func (f *File) getOne(ctx context.Context, builder sq.SelectBuilder) (*entity.FileUpload, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	file := &entity.FileUpload{}
	err = f.db.GetContext(ctx, file, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (f *File) ListFiles(ctx context.Context, request *entity.ListFilesRequest) ([]*entity.FileUpload, error) {
	builder := f.builder.Select(fileColumns...).From(fileTable)
	if request.CandidateID != "" {
		builder = builder.Where(sq.Eq{"candidate_id": request.CandidateID})
	}
	if request.Type != "" {
		builder = builder.Where(sq.Eq{"type": request.Type})
	}
	if !request.IncludeDeleted {
		builder = builder.Where("deleted_at IS NULL")
	}
	builder = builder.OrderBy("created_at DESC")
	if request.Limit > 0 {
		builder = builder.Limit(request.Limit)
	}
	if request.Offset > 0 {
		builder = builder.Offset(request.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	files := make([]*entity.FileUpload, 0)
	if err := f.db.SelectContext(ctx, &files, query, args...); err != nil {
		return nil, err
	}
	return files, nil
}

func (f *File) UpdateFileCandidate(ctx context.Context, id string, candidateID *string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repo.ErrFileNotFound
	}
	return f.update(ctx, f.builder.
		Update(fileTable).
		Set("candidate_id", candidateID).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL"),
	)
}

func (f *File) SoftDeleteFile(ctx context.Context, id string, deletedAt time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return repo.ErrFileNotFound
	}
	return f.update(ctx, f.builder.
		Update(fileTable).
		Set("deleted_at", deletedAt).
		Set("updated_at", deletedAt).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL"),
	)
}

// update возвращает ErrFileNotFound, если ни одна строка не изменилась
func (f *File) update(ctx context.Context, builder sq.UpdateBuilder) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	result, err := f.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo.ErrFileNotFound
	}
	return nil
}
