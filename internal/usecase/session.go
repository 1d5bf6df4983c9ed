package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/interaction"
	"github.com/rocketscienceinc/tictactoe-xr/internal/scene"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

type optionRepo interface {
	GetByKey(ctx context.Context, key string) (*entity.OptionSet, error)
}

// CellFilledFunc is told about every committed answer of every session.
type CellFilledFunc func(sessionID string, cell entity.CellID, text string)

// SessionManager keeps the running board sessions by id.
type SessionManager struct {
	logger     *slog.Logger
	optionRepo optionRepo
	optionsKey string
	layout     scene.Layout

	onCellFilled CellFilledFunc

	sessionsMutex sync.RWMutex
	sessions      map[string]*Session
}

func NewSessionManager(logger *slog.Logger, optionRepo optionRepo, optionsKey string, layout scene.Layout) *SessionManager {
	return &SessionManager{
		logger:     logger.With("component", "session_manager"),
		optionRepo: optionRepo,
		optionsKey: optionsKey,
		layout:     layout,

		sessions: make(map[string]*Session),
	}
}

// OnCellFilled registers fn for every session started afterwards.
func (that *SessionManager) OnCellFilled(fn CellFilledFunc) {
	that.onCellFilled = fn
}

// Start builds the board, loads the persisted option set and moves both to
// their in-session anchors. A missing or malformed set leaves the palette
// out; the board stays interactive.
func (that *SessionManager) Start(ctx context.Context, id string) (*Session, []interaction.Effect, error) {
	log := that.logger.With("method", "Start", "sessionID", id)

	that.sessionsMutex.Lock()
	defer that.sessionsMutex.Unlock()

	if _, ok := that.sessions[id]; ok {
		return nil, nil, fmt.Errorf("%w: %s", apperror.ErrSessionExists, id)
	}

	session := that.newSession(id)

	set, err := that.optionRepo.GetByKey(ctx, that.optionsKey)
	switch {
	case errors.Is(err, apperror.ErrOptionsNotFound), errors.Is(err, apperror.ErrMalformedOptions):
		log.Warn("palette skipped", "key", that.optionsKey, "error", err)
	case err != nil:
		log.Error("failed to load options", "key", that.optionsKey, "error", err)
	default:
		session.scene.LoadPalette(set)
		session.topic = set.Topic
	}

	effects := session.start()
	that.sessions[id] = session

	log.Info("session started", "options", session.optionCount())

	return session, effects, nil
}

func (that *SessionManager) Get(id string) (*Session, error) {
	that.sessionsMutex.RLock()
	defer that.sessionsMutex.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return session, nil
}

// End hides the session's visuals, resets the anchors and forgets the session.
func (that *SessionManager) End(id string) ([]interaction.Effect, error) {
	that.sessionsMutex.Lock()
	session, ok := that.sessions[id]
	delete(that.sessions, id)
	that.sessionsMutex.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	effects := session.end()
	that.logger.Info("session ended", "sessionID", id, "filled", session.filledCount())

	return effects, nil
}

func (that *SessionManager) Len() int {
	that.sessionsMutex.RLock()
	defer that.sessionsMutex.RUnlock()

	return len(that.sessions)
}

func (that *SessionManager) newSession(id string) *Session {
	session := &Session{
		ID:    id,
		scene: scene.New(that.layout),
	}

	logger := that.logger.With("sessionID", id)
	onCellFilled := that.onCellFilled

	session.engine = interaction.New(logger, session.scene.Registry(),
		interaction.WithCellFilledHandler(func(cell entity.CellID, text string) {
			if onCellFilled != nil {
				onCellFilled(id, cell, text)
			}
		}),
	)

	return session
}

// Session is one running board: its scene and the engine driving it.
type Session struct {
	ID string

	// mu keeps scene transform updates and hit-testing of one frame together.
	mu     sync.Mutex
	scene  *scene.Scene
	engine *interaction.Engine
	topic  string
}

// Frame turns the palette toward the viewer and hit-tests the gaze ray of pose.
func (that *Session) Frame(pose vmath.Transform) []interaction.Effect {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scene.FaceCamera(pose.Position)

	return that.engine.Tick(vmath.GazeRay(pose))
}

// Activate applies a trigger press. A nil hit uses the target of the last frame.
func (that *Session) Activate(hit *entity.HitResult) []interaction.Effect {
	that.mu.Lock()
	defer that.mu.Unlock()

	if hit == nil {
		return that.engine.Activate()
	}

	return that.engine.OnActivate(*hit)
}

// Recenter moves the board in front of the viewer.
func (that *Session) Recenter(pose vmath.Transform) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scene.Recenter(pose)
}

func (that *Session) Board() entity.Board {
	return that.engine.Board()
}

func (that *Session) Topic() string {
	return that.topic
}

// Objects lists every registered surface, for clients that draw the scene.
func (that *Session) Objects() []entity.InteractiveObject {
	that.mu.Lock()
	defer that.mu.Unlock()

	objects := that.scene.Registry().All()

	out := make([]entity.InteractiveObject, 0, len(objects))
	for _, obj := range objects {
		out = append(out, *obj)
	}

	return out
}

func (that *Session) start() []interaction.Effect {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scene.Start()

	return that.engine.OnSessionStart()
}

func (that *Session) end() []interaction.Effect {
	that.mu.Lock()
	defer that.mu.Unlock()

	effects := that.engine.OnSessionEnd()
	that.scene.End()

	return effects
}

func (that *Session) optionCount() int {
	if palette := that.scene.Palette(); palette != nil {
		return palette.Len()
	}

	return 0
}

func (that *Session) filledCount() int {
	board := that.engine.Board()
	return board.FilledCount()
}
