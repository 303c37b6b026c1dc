// Package repository handles all interactions with the database.
//
// It contains the raw SQL and row mapping for every entity, keeping
// query logic out of the service layer. Reads exclude soft-deleted
// rows and are scoped to the owning user unless a method says
// otherwise. Not-found errors carry a "table:<name>:" annotation so
// the error handler can name the missing entity.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances, wired
// once at startup and handed to the service layer.
type Repositories struct {
	User         *UserRepository
	Document     *DocumentRepository
	Question     *QuestionRepository
	StudySession *StudySessionRepository
}

// NewRepositories constructs every repository against one shared
// connection pool. Background job handlers build their own instances
// the same way.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(pool),
		Document:     NewDocumentRepository(pool),
		Question:     NewQuestionRepository(pool),
		StudySession: NewStudySessionRepository(pool),
	}
}
