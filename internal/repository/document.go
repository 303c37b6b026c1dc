package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// DocumentRepository persists uploaded documents and their extracted
// text.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// CreateParams carries everything needed to insert a document row.
type CreateDocumentParams struct {
	Title    string
	Filename string
	FilePath string
	FileType string
	FileSize int64
	Content  *string
	UserID   int64
}

func (r *DocumentRepository) Create(ctx context.Context, params CreateDocumentParams) (*Document, error) {
	rows, err := r.pool.Query(ctx, `
		insert into documents (title, filename, file_path, file_type, file_size, content, user_id)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning *`,
		params.Title, params.Filename, params.FilePath, params.FileType,
		params.FileSize, params.Content, params.UserID,
	)
	if err != nil {
		return nil, err
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Document])
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetForUser fetches an active document owned by userID.
func (r *DocumentRepository) GetForUser(ctx context.Context, docUUID uuid.UUID, userID int64) (*Document, error) {
	rows, err := r.pool.Query(ctx, `
		select * from documents
		where uuid = $1 and user_id = $2 and is_deleted = false`,
		docUUID, userID,
	)
	if err != nil {
		return nil, err
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Document])
	if err != nil {
		return nil, errors.Wrap(err, "table:documents:")
	}
	return doc, nil
}

// GetByID fetches an active document without a user scope. Used by
// background jobs that act on internal ids.
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*Document, error) {
	rows, err := r.pool.Query(ctx, `
		select * from documents
		where id = $1 and is_deleted = false`,
		id,
	)
	if err != nil {
		return nil, err
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Document])
	if err != nil {
		return nil, errors.Wrap(err, "table:documents:")
	}
	return doc, nil
}

// ListForUser returns the user's active documents, newest first, with
// content omitted so listings stay light.
func (r *DocumentRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*Document, error) {
	rows, err := r.pool.Query(ctx, `
		select id, uuid, title, filename, file_path, file_type, file_size,
		       null as content, user_id, created_at, updated_at, deleted_at, is_deleted
		from documents
		where user_id = $1 and is_deleted = false
		order by created_at desc
		limit $2 offset $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Document])
}

// CountForUser reports how many active documents the user owns.
func (r *DocumentRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		select count(*) from documents
		where user_id = $1 and is_deleted = false`,
		userID,
	).Scan(&count)
	return count, err
}

// UpdateTitle renames a document owned by userID.
func (r *DocumentRepository) UpdateTitle(ctx context.Context, docUUID uuid.UUID, userID int64, title string) (*Document, error) {
	rows, err := r.pool.Query(ctx, `
		update documents
		set title = $3, updated_at = now()
		where uuid = $1 and user_id = $2 and is_deleted = false
		returning *`,
		docUUID, userID, title,
	)
	if err != nil {
		return nil, err
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Document])
	if err != nil {
		return nil, errors.Wrap(err, "table:documents:")
	}
	return doc, nil
}

// SetContent stores extracted text for a document. Used by the
// extraction worker.
func (r *DocumentRepository) SetContent(ctx context.Context, id int64, content string) error {
	tag, err := r.pool.Exec(ctx, `
		update documents
		set content = $2, updated_at = now()
		where id = $1 and is_deleted = false`,
		id, content,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:documents:")
	}
	return nil
}

// SoftDelete marks a document deleted and returns it so the caller can
// schedule the file purge. Questions and sessions that reference the
// document are soft-deleted in the same transaction.
func (r *DocumentRepository) SoftDelete(ctx context.Context, docUUID uuid.UUID, userID int64) (*Document, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		update documents
		set is_deleted = true, deleted_at = now()
		where uuid = $1 and user_id = $2 and is_deleted = false
		returning *`,
		docUUID, userID,
	)
	if err != nil {
		return nil, err
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Document])
	if err != nil {
		return nil, errors.Wrap(err, "table:documents:")
	}

	_, err = tx.Exec(ctx, `
		update questions
		set is_deleted = true, deleted_at = now()
		where document_id = $1 and is_deleted = false`,
		doc.ID,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		update study_sessions
		set is_deleted = true, deleted_at = now()
		where document_id = $1 and is_deleted = false`,
		doc.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// PurgeDeleted hard-deletes document rows (and their dependents) that
// were soft-deleted before the cutoff. Returns the number of documents
// removed.
func (r *DocumentRepository) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		delete from questions
		where document_id in (
			select id from documents where is_deleted = true and deleted_at < $1
		)`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `
		delete from study_sessions
		where document_id in (
			select id from documents where is_deleted = true and deleted_at < $1
		)`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `
		delete from documents
		where is_deleted = true and deleted_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListPurgeableFiles returns the storage paths of documents about to
// be purged so their files can be removed first.
func (r *DocumentRepository) ListPurgeableFiles(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		select file_path from documents
		where is_deleted = true and deleted_at < $1`,
		cutoff,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
