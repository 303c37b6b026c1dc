package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// StudySessionRepository persists study sessions.
type StudySessionRepository struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepository(pool *pgxpool.Pool) *StudySessionRepository {
	return &StudySessionRepository{pool: pool}
}

// CreateStudySessionParams carries one session to insert.
type CreateStudySessionParams struct {
	SessionName      string
	TotalQuestions   int
	CorrectAnswers   int
	ScorePercentage  *float64
	TimeSpentMinutes *int
	Answers          *string
	DocumentID       int64
	UserID           int64
}

func (r *StudySessionRepository) Create(ctx context.Context, params CreateStudySessionParams) (*StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		insert into study_sessions (session_name, total_questions, correct_answers, score_percentage, time_spent_minutes, answers, document_id, user_id)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning *`,
		params.SessionName, params.TotalQuestions, params.CorrectAnswers,
		params.ScorePercentage, params.TimeSpentMinutes, params.Answers,
		params.DocumentID, params.UserID,
	)
	if err != nil {
		return nil, err
	}

	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[StudySession])
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetForUser fetches an active session owned by userID.
func (r *StudySessionRepository) GetForUser(ctx context.Context, sessionUUID uuid.UUID, userID int64) (*StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		select * from study_sessions
		where uuid = $1 and user_id = $2 and is_deleted = false`,
		sessionUUID, userID,
	)
	if err != nil {
		return nil, err
	}

	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[StudySession])
	if err != nil {
		return nil, errors.Wrap(err, "table:study_sessions:")
	}
	return session, nil
}

// ListForUser returns the user's active sessions, newest first.
func (r *StudySessionRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		select * from study_sessions
		where user_id = $1 and is_deleted = false
		order by created_at desc
		limit $2 offset $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[StudySession])
}

// ListForDocument returns the active sessions recorded against one
// document, newest first.
func (r *StudySessionRepository) ListForDocument(ctx context.Context, documentID, userID int64) ([]*StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		select * from study_sessions
		where document_id = $1 and user_id = $2 and is_deleted = false
		order by created_at desc`,
		documentID, userID,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[StudySession])
}

// UpdateSessionParams carries the mutable fields of a session. Nil
// fields keep their stored values.
type UpdateSessionParams struct {
	SessionName      *string
	CorrectAnswers   *int
	ScorePercentage  *float64
	TimeSpentMinutes *int
	Answers          *string
}

// Update applies a partial update to a session.
func (r *StudySessionRepository) Update(ctx context.Context, sessionUUID uuid.UUID, userID int64, params UpdateSessionParams) (*StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		update study_sessions
		set session_name = coalesce($3, session_name),
		    correct_answers = coalesce($4, correct_answers),
		    score_percentage = coalesce($5, score_percentage),
		    time_spent_minutes = coalesce($6, time_spent_minutes),
		    answers = coalesce($7, answers),
		    updated_at = now()
		where uuid = $1 and user_id = $2 and is_deleted = false
		returning *`,
		sessionUUID, userID, params.SessionName, params.CorrectAnswers,
		params.ScorePercentage, params.TimeSpentMinutes, params.Answers,
	)
	if err != nil {
		return nil, err
	}

	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[StudySession])
	if err != nil {
		return nil, errors.Wrap(err, "table:study_sessions:")
	}
	return session, nil
}

// SoftDelete marks a session deleted.
func (r *StudySessionRepository) SoftDelete(ctx context.Context, sessionUUID uuid.UUID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `
		update study_sessions
		set is_deleted = true, deleted_at = now()
		where uuid = $1 and user_id = $2 and is_deleted = false`,
		sessionUUID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:study_sessions:")
	}
	return nil
}
