package motion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"
	"tilepuzzle/internal/logger"
)

// Scheduler owns the motion controllers of all movable entities and advances
// each of them once per frame tick.
type Scheduler struct {
	cfg         Config
	listeners   []ports.PickupListener
	controllers map[uuid.UUID]*Controller
	order       []uuid.UUID
}

func NewScheduler(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	s := &Scheduler{
		controllers: map[uuid.UUID]*Controller{},
	}
	if cfg.Pickups != nil {
		s.listeners = append(s.listeners, cfg.Pickups)
	}
	cfg.Pickups = s
	s.cfg = cfg
	return s
}

func (s *Scheduler) Subscribe(l ports.PickupListener) {
	s.listeners = append(s.listeners, l)
}

func (s *Scheduler) OnPickupCollectable(ctx context.Context, collectable *world.Entity) {
	for _, l := range s.listeners {
		l.OnPickupCollectable(ctx, collectable)
	}
}

// Attach returns the controller for e, creating it on first use.
func (s *Scheduler) Attach(e *world.Entity) *Controller {
	if c, ok := s.controllers[e.ID]; ok {
		return c
	}
	c := NewController(e, s.cfg)
	s.controllers[e.ID] = c
	s.order = append(s.order, e.ID)
	return c
}

func (s *Scheduler) Controller(id uuid.UUID) (*Controller, bool) {
	c, ok := s.controllers[id]
	return c, ok
}

// Detach completes any in-flight task and forgets the controller.
func (s *Scheduler) Detach(id uuid.UUID) {
	c, ok := s.controllers[id]
	if !ok {
		return
	}
	c.Finish()
	delete(s.controllers, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Reserved reports whether an in-flight task will land on c. The landing
// cell is empty in the occupancy index until the task completes.
func (s *Scheduler) Reserved(c world.Coord) bool {
	for _, ctl := range s.controllers {
		if t, ok := ctl.Task(); ok && t.To == c {
			return true
		}
	}
	return false
}

func (s *Scheduler) Moving() bool {
	for _, c := range s.controllers {
		if c.Moving() {
			return true
		}
	}
	return false
}

func (s *Scheduler) Tick(ctx context.Context, dt time.Duration) {
	for _, id := range s.order {
		s.controllers[id].Advance(ctx, dt)
	}
}
