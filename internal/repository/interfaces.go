package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
)

type LobbyRepository interface {
	Create(ctx context.Context, lobby *domain.Lobby) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lobby, error)
	Update(ctx context.Context, lobby *domain.Lobby) error
}

type LobbyPlayerRepository interface {
	GetByLobbyID(ctx context.Context, lobbyID uuid.UUID) ([]*domain.LobbyPlayer, error)
	ReplaceAll(ctx context.Context, lobbyID uuid.UUID, players []*domain.LobbyPlayer) error
}

type GameRepository interface {
	// CreateWithDeal persists the game together with its players, cards,
	// host admin record and opening event in one transaction.
	CreateWithDeal(ctx context.Context, game *domain.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	GetByLobbyID(ctx context.Context, lobbyID uuid.UUID) (*domain.Game, error)
	Update(ctx context.Context, game *domain.Game) error
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.Player, error)
	Update(ctx context.Context, player *domain.Player) error
	CountSpectators(ctx context.Context, gameID uuid.UUID) (int64, error)
	FindSpectator(ctx context.Context, gameID, userID uuid.UUID) (*domain.Player, error)
}

type CardRepository interface {
	GetByPlayerAndCategory(ctx context.Context, playerID uuid.UUID, category domain.CardCategory) (*domain.Card, error)
	GetUnopenedByGameAndCategory(ctx context.Context, gameID uuid.UUID, category domain.CardCategory) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
}

type VoteRepository interface {
	Upsert(ctx context.Context, vote *domain.Vote) error
	ClearTargets(ctx context.Context, gameID uuid.UUID, round int) error
	GetByGameAndRound(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.Vote, error)
	// TallyByTarget counts non-null targets per target player across the
	// whole game, not one round.
	TallyByTarget(ctx context.Context, gameID uuid.UUID) (map[uuid.UUID]int, error)
}

type MinuteRequestRepository interface {
	Create(ctx context.Context, req *domain.MinuteRequest) error
	Update(ctx context.Context, req *domain.MinuteRequest) error
	GetByGameRoundPlayer(ctx context.Context, gameID uuid.UUID, round int, playerID uuid.UUID) (*domain.MinuteRequest, error)
	CountByGameAndRound(ctx context.Context, gameID uuid.UUID, round int) (int64, error)
	GetQueue(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.MinuteRequest, error)
	GetLatestByPlayer(ctx context.Context, gameID, playerID uuid.UUID) (*domain.MinuteRequest, error)
	GetLatestApproved(ctx context.Context, gameID uuid.UUID) (*domain.MinuteRequest, error)
	GetRunning(ctx context.Context, gameID uuid.UUID) (*domain.MinuteRequest, error)
}

type RevealPlanRepository interface {
	Upsert(ctx context.Context, plan *domain.RevealPlan) error
	GetByGameAndRound(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.RevealPlan, error)
}

// EventFilter narrows and paginates the per-game audit log. Cursor is the id
// of the last event of the previous page; results are newest-first.
type EventFilter struct {
	Type     string
	PlayerID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Take     int
	Cursor   *uuid.UUID
}

type GameEventRepository interface {
	Create(ctx context.Context, event *domain.GameEvent) error
	List(ctx context.Context, gameID uuid.UUID, filter EventFilter) ([]*domain.GameEvent, error)
}

type GameAdminRepository interface {
	Upsert(ctx context.Context, admin *domain.GameAdmin) error
	GetByGameAndUser(ctx context.Context, gameID, userID uuid.UUID) (*domain.GameAdmin, error)
}

type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	GetByCode(ctx context.Context, code string) (*domain.Invite, error)
	Update(ctx context.Context, invite *domain.Invite) error
}

type Repositories struct {
	Lobby       LobbyRepository
	LobbyPlayer LobbyPlayerRepository
	Game        GameRepository
	Player      PlayerRepository
	Card        CardRepository
	Vote        VoteRepository
	Minute      MinuteRequestRepository
	RevealPlan  RevealPlanRepository
	GameEvent   GameEventRepository
	GameAdmin   GameAdminRepository
	Invite      InviteRepository
}
