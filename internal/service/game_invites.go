package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

// InviteAcceptResult reports what an accepted invite granted. PlayerID is set
// only for spectator invites.
type InviteAcceptResult struct {
	Role     domain.InviteRole `json:"role"`
	GameID   uuid.UUID         `json:"gameId"`
	PlayerID *uuid.UUID        `json:"playerId,omitempty"`
}

// CreateInvite issues a short-lived code granting co-host or spectator access.
func (s *GameService) CreateInvite(ctx context.Context, gameID uuid.UUID, role domain.InviteRole) (*domain.Invite, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	if role != domain.InviteRoleCoHost && role != domain.InviteRoleSpectator {
		return nil, ErrUnsupportedInviteRole
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	invite := &domain.Invite{
		ID:        uuid.New(),
		GameID:    gameID,
		Code:      code,
		Role:      role,
		ExpiresAt: s.now().Add(domain.InviteTTL),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventInviteCreated, map[string]interface{}{
		"role": string(role),
		"code": code,
	})

	return invite, nil
}

// AcceptInvite redeems a code for the given user. A code is consumed by
// exactly one user: re-acceptance by the same user is idempotent, a different
// user gets a conflict. Co-host invites upsert an admin row; spectator invites
// require spectators to be enabled and reuse the user's existing spectator
// seat when one exists.
func (s *GameService) AcceptInvite(ctx context.Context, code string, userID uuid.UUID) (*InviteAcceptResult, error) {
	invite, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if invite.IsExpired(s.now()) {
		return nil, ErrInviteExpired
	}
	if invite.UsedByUserID != nil && *invite.UsedByUserID != userID {
		return nil, ErrInviteConflict
	}

	result := &InviteAcceptResult{Role: invite.Role, GameID: invite.GameID}

	switch invite.Role {
	case domain.InviteRoleCoHost:
		admin := &domain.GameAdmin{
			ID:     uuid.New(),
			GameID: invite.GameID,
			UserID: userID,
			Role:   domain.GameAdminRoleCoHost,
		}
		if err := s.adminRepo.Upsert(ctx, admin); err != nil {
			return nil, err
		}
	case domain.InviteRoleSpectator:
		game, err := s.GetGame(ctx, invite.GameID)
		if err != nil {
			return nil, err
		}
		if !game.IsSpectatorsEnabled {
			return nil, ErrSpectatorsDisabled
		}
		spectator, err := s.ensureSpectator(ctx, invite.GameID, userID)
		if err != nil {
			return nil, err
		}
		result.PlayerID = &spectator.ID
	default:
		return nil, ErrUnsupportedInviteRole
	}

	if invite.UsedByUserID == nil {
		invite.UsedByUserID = &userID
		if err := s.inviteRepo.Update(ctx, invite); err != nil {
			return nil, err
		}
	}

	s.logEvent(ctx, invite.GameID, domain.EventInviteAccepted, map[string]interface{}{
		"role":   string(invite.Role),
		"userId": userID.String(),
	})

	return result, nil
}

// ensureSpectator returns the user's existing spectator seat or appends a new
// one numbered past SpectatorNumberOffset.
func (s *GameService) ensureSpectator(ctx context.Context, gameID, userID uuid.UUID) (*domain.Player, error) {
	existing, err := s.playerRepo.FindSpectator(ctx, gameID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.playerRepo.CountSpectators(ctx, gameID)
	if err != nil {
		return nil, err
	}

	number := domain.SpectatorNumberOffset + int(count) + 1
	spectator := &domain.Player{
		ID:       uuid.New(),
		GameID:   gameID,
		Number:   number,
		Nickname: fmt.Sprintf("Spectator %d", int(count)+1),
		UserID:   &userID,
		Status:   domain.PlayerStatusAlive,
		Role:     domain.PlayerRoleSpectator,
	}
	if err := s.playerRepo.Create(ctx, spectator); err != nil {
		return nil, err
	}
	return spectator, nil
}

func generateInviteCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
