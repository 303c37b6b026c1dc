package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// QuestionRepository persists generated study questions.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// CreateQuestionParams carries one question to insert.
type CreateQuestionParams struct {
	QuestionText  string
	QuestionType  string
	CorrectAnswer string
	Options       *string
	Explanation   *string
	Difficulty    string
	DocumentID    int64
	UserID        int64
}

// CreateBatch inserts a batch of questions in one transaction so a
// partial generation never persists.
func (r *QuestionRepository) CreateBatch(ctx context.Context, batch []CreateQuestionParams) ([]*Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	questions := make([]*Question, 0, len(batch))
	for _, params := range batch {
		rows, err := tx.Query(ctx, `
			insert into questions (question_text, question_type, correct_answer, options, explanation, difficulty, document_id, user_id)
			values ($1, $2, $3, $4, $5, $6, $7, $8)
			returning *`,
			params.QuestionText, params.QuestionType, params.CorrectAnswer,
			params.Options, params.Explanation, params.Difficulty,
			params.DocumentID, params.UserID,
		)
		if err != nil {
			return nil, err
		}

		question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Question])
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetForUser fetches an active question owned by userID.
func (r *QuestionRepository) GetForUser(ctx context.Context, questionUUID uuid.UUID, userID int64) (*Question, error) {
	rows, err := r.pool.Query(ctx, `
		select * from questions
		where uuid = $1 and user_id = $2 and is_deleted = false`,
		questionUUID, userID,
	)
	if err != nil {
		return nil, err
	}

	question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Question])
	if err != nil {
		return nil, errors.Wrap(err, "table:questions:")
	}
	return question, nil
}

// ListForDocument returns the active questions of one document, oldest
// first, optionally filtered by type and difficulty.
func (r *QuestionRepository) ListForDocument(ctx context.Context, documentID, userID int64, questionType, difficulty string) ([]*Question, error) {
	rows, err := r.pool.Query(ctx, `
		select * from questions
		where document_id = $1 and user_id = $2 and is_deleted = false
		  and ($3 = '' or question_type = $3)
		  and ($4 = '' or difficulty = $4)
		order by created_at asc, id asc`,
		documentID, userID, questionType, difficulty,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Question])
}

// SetExplanation replaces a question's explanation.
func (r *QuestionRepository) SetExplanation(ctx context.Context, questionUUID uuid.UUID, userID int64, explanation string) (*Question, error) {
	rows, err := r.pool.Query(ctx, `
		update questions
		set explanation = $3, updated_at = now()
		where uuid = $1 and user_id = $2 and is_deleted = false
		returning *`,
		questionUUID, userID, explanation,
	)
	if err != nil {
		return nil, err
	}

	question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Question])
	if err != nil {
		return nil, errors.Wrap(err, "table:questions:")
	}
	return question, nil
}

// SoftDelete marks a question deleted.
func (r *QuestionRepository) SoftDelete(ctx context.Context, questionUUID uuid.UUID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `
		update questions
		set is_deleted = true, deleted_at = now()
		where uuid = $1 and user_id = $2 and is_deleted = false`,
		questionUUID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:questions:")
	}
	return nil
}
