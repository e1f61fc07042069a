package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type SessionOwnedByUser struct {
	UserID uuid.UUID
}

func (s SessionOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// OpenSessions keeps sessions that have not ended yet.
type OpenSessions struct{}

func (s OpenSessions) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ended_at IS NULL")
}

type ByWordAndSession struct {
	WordID    uuid.UUID
	SessionID uuid.UUID
}

func (s ByWordAndSession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("word_id = ? AND session_id = ?", s.WordID, s.SessionID)
}

type ByWordStatus struct {
	Status int
}

func (s ByWordStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
