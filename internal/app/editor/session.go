package editor

import (
	"context"
	"time"

	"tilepuzzle/internal/app/interaction"
	"tilepuzzle/internal/app/motion"
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

type FrameInput struct {
	DT      time.Duration
	Pointer interaction.PointerState
}

// ScreenMapper turns a grid cell into the screen point a pointer would use
// to reach it.
type ScreenMapper interface {
	ScreenOf(c world.Coord) world.Vec2
}

type Config struct {
	ID            string
	Interaction   *interaction.Controller
	Motion        *motion.Scheduler
	Screens       ScreenMapper
	FrameInterval time.Duration
	Logger        logger.Logger
}

// Session drives the editor one frame at a time. Input is handled before
// motion so a move started this frame advances in the same frame.
type Session struct {
	cfg     Config
	log     logger.Logger
	frames  int
	elapsed time.Duration
	pointer world.Vec2
}

func NewSession(cfg Config) *Session {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = time.Second / 60
	}
	l := cfg.Logger
	if l == nil {
		l = logger.NewNop()
	}
	return &Session{cfg: cfg, log: l.With(logger.F("session_id", cfg.ID))}
}

func (s *Session) ID() string                           { return s.cfg.ID }
func (s *Session) Frames() int                          { return s.frames }
func (s *Session) Elapsed() time.Duration               { return s.elapsed }
func (s *Session) Interaction() *interaction.Controller { return s.cfg.Interaction }

func (s *Session) Frame(ctx context.Context, in FrameInput) {
	s.pointer = in.Pointer.Screen
	s.cfg.Interaction.Update(in.Pointer)
	if s.cfg.Motion != nil {
		s.cfg.Motion.Tick(ctx, in.DT)
	}
	s.frames++
	s.elapsed += in.DT
}

// Settle runs idle frames until no entity is moving or maxFrames is reached.
// Returns the number of frames run.
func (s *Session) Settle(ctx context.Context, maxFrames int) int {
	n := 0
	for ; n < maxFrames && s.cfg.Motion != nil && s.cfg.Motion.Moving(); n++ {
		if ctx.Err() != nil {
			break
		}
		s.Frame(ctx, FrameInput{DT: s.cfg.FrameInterval, Pointer: interaction.PointerState{Screen: s.pointer}})
	}
	return n
}
