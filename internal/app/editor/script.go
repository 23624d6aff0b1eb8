package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tilepuzzle/internal/app/interaction"
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

var ErrInvalidScript = errors.New("invalid pointer script")

type Action string

const (
	ActionDown  Action = "down"
	ActionDrag  Action = "drag"
	ActionUp    Action = "up"
	ActionClick Action = "click"
	ActionWait  Action = "wait"
)

// Step is one scripted gesture. Tool, when set, is selected before the
// gesture runs; a step may carry only a tool.
type Step struct {
	Tool     string       `yaml:"tool"`
	Action   Action       `yaml:"action"`
	Cell     *world.Coord `yaml:"cell"`
	Modifier bool         `yaml:"modifier"`
	Frames   int          `yaml:"frames"`
}

type Script struct {
	Name   string `yaml:"name"`
	Settle int    `yaml:"settle"`
	Steps  []Step `yaml:"steps"`
}

func DecodeScript(r io.Reader) (Script, error) {
	var script Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	for i, step := range script.Steps {
		switch step.Action {
		case "", ActionWait:
		case ActionDown, ActionDrag, ActionClick:
			if step.Cell == nil {
				return Script{}, fmt.Errorf("%w: step %d: %s needs a cell", ErrInvalidScript, i, step.Action)
			}
		case ActionUp:
		default:
			return Script{}, fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i, step.Action)
		}
		if step.Frames < 0 {
			return Script{}, fmt.Errorf("%w: step %d: negative frames", ErrInvalidScript, i)
		}
	}
	return script, nil
}

// Run replays script frame by frame, then settles in-flight motion for at
// most script.Settle frames.
func (s *Session) Run(ctx context.Context, script Script) error {
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.TrimSpace(step.Tool) != "" {
			if err := s.cfg.Interaction.SelectToolByName(step.Tool); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
		s.runStep(ctx, step)
	}
	if script.Settle > 0 {
		s.Settle(ctx, script.Settle)
	}
	s.log.Info("script replayed",
		logger.F("script", script.Name),
		logger.F("steps", len(script.Steps)),
		logger.F("frames", s.frames),
	)
	return nil
}

func (s *Session) runStep(ctx context.Context, step Step) {
	screen := s.pointer
	if step.Cell != nil && s.cfg.Screens != nil {
		screen = s.cfg.Screens.ScreenOf(*step.Cell)
	}
	frames := step.Frames
	if frames == 0 {
		frames = 1
	}
	frame := func(p interaction.PointerState) {
		p.Screen = screen
		p.Modifier = step.Modifier
		s.Frame(ctx, FrameInput{DT: s.cfg.FrameInterval, Pointer: p})
	}

	switch step.Action {
	case ActionDown:
		frame(interaction.PointerState{Pressed: true})
		for i := 1; i < frames; i++ {
			frame(interaction.PointerState{})
		}
	case ActionClick:
		frame(interaction.PointerState{Pressed: true})
		frame(interaction.PointerState{Released: true})
	case ActionUp:
		frame(interaction.PointerState{Released: true})
	case ActionDrag, ActionWait:
		for i := 0; i < frames; i++ {
			frame(interaction.PointerState{})
		}
	}
}
