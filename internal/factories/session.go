package factories

import (
	"time"

	"github.com/chrisdamba/foodiebot/internal/models"
	"github.com/lucsky/cuid"
)

type SessionFactory struct{}

func (sf *SessionFactory) CreateSession() *models.Session {
	return &models.Session{
		ID:        cuid.New(),
		StartedAt: time.Now(),
	}
}
