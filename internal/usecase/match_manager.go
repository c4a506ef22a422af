package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/quixo-backend/internal/apperror"
	"github.com/rocketscienceinc/quixo-backend/internal/entity"
	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type moveRecorder interface {
	MatchCreated()
	MatchDeleted()
	MoveApplied(direction string)
	MoveRejected(direction, kind string)
}

// MatchManager serves Quixo matches out of the match repository. Moves on one
// match are serialized, moves on different matches run in parallel.
type MatchManager struct {
	logger    *slog.Logger
	matchRepo matchRepo
	metrics   moveRecorder

	newID func() string
	now   func() time.Time

	locksMutex sync.Mutex
	locks      map[string]*matchLock
}

// matchLock lives in MatchManager.locks while refs callers hold or wait for it.
type matchLock struct {
	mu   sync.Mutex
	refs int
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepo, metrics moveRecorder) *MatchManager {
	return &MatchManager{
		logger:    logger.With("component", "match_manager"),
		matchRepo: matchRepo,
		metrics:   metrics,

		newID: uuid.NewString,
		now:   time.Now,

		locks: make(map[string]*matchLock),
	}
}

// CreateMatch - starts a match between two distinct players, board may be nil for an empty one.
func (that *MatchManager) CreateMatch(ctx context.Context, players [2]string, board [][]string) (*entity.Match, error) {
	if err := quixo.CheckPlayers(players); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err)
	}

	game, err := quixo.NewGame(players, board)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	match := entity.NewMatch(that.newID(), game, that.now().UTC())
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to save match: %w", err)
	}

	that.metrics.MatchCreated()
	that.logger.Info("match created", "matchID", match.ID, "players", match.Players)

	return match, nil
}

func (that *MatchManager) GetMatch(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// RenderMatch - returns the legend and board of a match as text.
func (that *MatchManager) RenderMatch(ctx context.Context, id string) (string, error) {
	match, err := that.GetMatch(ctx, id)
	if err != nil {
		return "", err
	}

	game, err := match.Game()
	if err != nil {
		return "", fmt.Errorf("failed to load game: %w", err)
	}

	return game.Render(), nil
}

// MoveCube - lets player insert a cube into the match and stores the result.
func (that *MatchManager) MoveCube(
	ctx context.Context, id, player string, origin quixo.Position, direction quixo.Direction,
) (*entity.Match, error) {
	log := that.logger.With("method", "MoveCube", "matchID", id, "player", player)

	unlock := that.lock(id)
	defer unlock()

	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	game, err := match.Game()
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	if err = game.MoveCube(player, origin, direction); err != nil {
		that.metrics.MoveRejected(string(direction), quixo.KindOf(err))
		log.Debug("move rejected", "error", err)

		return nil, fmt.Errorf("failed to move cube: %w", err)
	}

	match.Apply(game, that.now().UTC())

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	that.metrics.MoveApplied(string(direction))
	log.Debug("cube moved", "origin", origin, "direction", direction, "moves", match.Moves)

	return match, nil
}

func (that *MatchManager) DeleteMatch(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	that.metrics.MatchDeleted()
	that.logger.Info("match deleted", "matchID", id)

	return nil
}

// lock - acquires the lock of match id and returns its release. The entry is
// dropped with the last release, so expired matches leave nothing behind.
func (that *MatchManager) lock(id string) func() {
	that.locksMutex.Lock()
	entry, ok := that.locks[id]
	if !ok {
		entry = &matchLock{}
		that.locks[id] = entry
	}
	entry.refs++
	that.locksMutex.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.locksMutex.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, id)
		}
		that.locksMutex.Unlock()
	}
}
