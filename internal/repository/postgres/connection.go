package postgres

import (
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Lobby{},
		&domain.LobbyPlayer{},
		&domain.Game{},
		&domain.Player{},
		&domain.Card{},
		&domain.Vote{},
		&domain.MinuteRequest{},
		&domain.RevealPlan{},
		&domain.GameEvent{},
		&domain.GameAdmin{},
		&domain.Invite{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Lobby:       NewLobbyRepository(db),
		LobbyPlayer: NewLobbyPlayerRepository(db),
		Game:        NewGameRepository(db),
		Player:      NewPlayerRepository(db),
		Card:        NewCardRepository(db),
		Vote:        NewVoteRepository(db),
		Minute:      NewMinuteRequestRepository(db),
		RevealPlan:  NewRevealPlanRepository(db),
		GameEvent:   NewGameEventRepository(db),
		GameAdmin:   NewGameAdminRepository(db),
		Invite:      NewInviteRepository(db),
	}
}
