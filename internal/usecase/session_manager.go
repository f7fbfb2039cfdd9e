package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, sess *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager drives session lifecycles: each operation loads the
// session, applies the state transition and stores the result. A failed
// transition leaves the stored session exactly as it was.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger: logger,

		sessionRepo: sessionRepo,
	}
}

// GetOrCreateSession - returns the stored session, or creates a fresh one
// when the id is empty or unknown.
func (that *SessionManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return that.createSession(ctx, uuid.NewString())
	}

	existingSession, err := that.sessionRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.createSession(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return existingSession, nil
}

// SubmitMove - applies a move to the session's active game. An invalid move
// returns the unchanged session alongside the error so the caller can
// render it as a no-op; a corrupt state propagates as a hard stop and the
// stored session is not overwritten.
func (that *SessionManager) SubmitMove(ctx context.Context, id string, cell int) (*entity.Session, error) {
	existingSession, err := that.getSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = session.SubmitMove(existingSession, cell); err != nil {
		if errors.Is(err, apperror.ErrInvalidMove) {
			return existingSession, err
		}

		return nil, fmt.Errorf("failed to submit move: %w", err)
	}

	if err = that.updateSession(ctx, existingSession); err != nil {
		return nil, err
	}

	return existingSession, nil
}

// StartNewGame - replaces the active game; history and stats survive.
func (that *SessionManager) StartNewGame(ctx context.Context, id string) (*entity.Session, error) {
	existingSession, err := that.getSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	session.StartNewGame(existingSession)

	if err = that.updateSession(ctx, existingSession); err != nil {
		return nil, err
	}

	return existingSession, nil
}

// ResetStats - clears the history and tally; the active game survives.
func (that *SessionManager) ResetStats(ctx context.Context, id string) (*entity.Session, error) {
	existingSession, err := that.getSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	session.ResetStats(existingSession)

	if err = that.updateSession(ctx, existingSession); err != nil {
		return nil, err
	}

	return existingSession, nil
}

// EndSession - discards the stored session on teardown.
func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *SessionManager) createSession(ctx context.Context, id string) (*entity.Session, error) {
	newSession := session.New(id)

	if err := that.sessionRepo.CreateOrUpdate(ctx, newSession); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", newSession.ID)

	return newSession, nil
}

func (that *SessionManager) getSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	existingSession, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return existingSession, nil
}

func (that *SessionManager) updateSession(ctx context.Context, sess *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, sess); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
