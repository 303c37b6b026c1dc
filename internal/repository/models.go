package repository

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash never leaves the service
// layer.
type User struct {
	ID           int64      `db:"id" json:"-"`
	UUID         uuid.UUID  `db:"uuid" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
	IsDeleted    bool       `db:"is_deleted" json:"-"`
}

// Document is an uploaded study document. Content holds the extracted
// plain text and is kept out of list responses for size.
type Document struct {
	ID        int64      `db:"id" json:"-"`
	UUID      uuid.UUID  `db:"uuid" json:"id"`
	Title     string     `db:"title" json:"title"`
	Filename  string     `db:"filename" json:"filename"`
	FilePath  string     `db:"file_path" json:"-"`
	FileType  string     `db:"file_type" json:"file_type"`
	FileSize  int64      `db:"file_size" json:"file_size"`
	Content   *string    `db:"content" json:"content,omitempty"`
	UserID    int64      `db:"user_id" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
	IsDeleted bool       `db:"is_deleted" json:"-"`
}

// Question is a generated study question. Options is a JSON-encoded
// string array, empty for short-answer questions.
type Question struct {
	ID            int64      `db:"id" json:"-"`
	UUID          uuid.UUID  `db:"uuid" json:"id"`
	QuestionText  string     `db:"question_text" json:"question_text"`
	QuestionType  string     `db:"question_type" json:"question_type"`
	CorrectAnswer string     `db:"correct_answer" json:"correct_answer"`
	Options       *string    `db:"options" json:"options,omitempty"`
	Explanation   *string    `db:"explanation" json:"explanation,omitempty"`
	Difficulty    string     `db:"difficulty" json:"difficulty"`
	DocumentID    int64      `db:"document_id" json:"-"`
	UserID        int64      `db:"user_id" json:"-"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `db:"deleted_at" json:"-"`
	IsDeleted     bool       `db:"is_deleted" json:"-"`
}

// StudySession records one practice run over a document's questions.
// Answers is a JSON-encoded map of question id to given answer.
type StudySession struct {
	ID               int64      `db:"id" json:"-"`
	UUID             uuid.UUID  `db:"uuid" json:"id"`
	SessionName      string     `db:"session_name" json:"session_name"`
	TotalQuestions   int        `db:"total_questions" json:"total_questions"`
	CorrectAnswers   int        `db:"correct_answers" json:"correct_answers"`
	ScorePercentage  *float64   `db:"score_percentage" json:"score_percentage,omitempty"`
	TimeSpentMinutes *int       `db:"time_spent_minutes" json:"time_spent_minutes,omitempty"`
	Answers          *string    `db:"answers" json:"answers,omitempty"`
	DocumentID       int64      `db:"document_id" json:"-"`
	UserID           int64      `db:"user_id" json:"-"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	DeletedAt        *time.Time `db:"deleted_at" json:"-"`
	IsDeleted        bool       `db:"is_deleted" json:"-"`
}
