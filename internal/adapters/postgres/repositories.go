package postgres

import (
	"github.com/netscan/netscan-api/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Users   ports.UserRepository
	History ports.HistoryRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:   &userRepository{db: db},
		History: &historyRepository{db: db},
	}
}
