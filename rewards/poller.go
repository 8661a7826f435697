package rewards

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CheckpointSource fetches the latest checkpoint set, usually from chain.
type CheckpointSource func(ctx context.Context) (*CheckpointSet, error)

// Poller drives an Engine: it refreshes checkpoints from a source and emits
// an interpolated reading on every tick.
type Poller struct {
	engine  *Engine
	source  CheckpointSource
	tick    time.Duration
	refresh time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

type PollerOption func(*Poller)

// WithRefreshInterval reloads checkpoints every d. Zero loads them once.
func WithRefreshInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.refresh = d
	}
}

func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) {
		p.now = now
	}
}

func WithPollerLogger(logger *zap.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewPoller(engine *Engine, source CheckpointSource, tick time.Duration, opts ...PollerOption) *Poller {
	p := &Poller{
		engine: engine,
		source: source,
		tick:   tick,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, fn := range opts {
		fn(p)
	}
	return p
}

func (p *Poller) load(ctx context.Context) error {
	set, err := p.source(ctx)
	if err != nil {
		return err
	}
	p.engine.Refresh(set)
	return nil
}

// Run calls fn with every known reading until ctx is done. The first
// checkpoint load must succeed; later refresh failures keep the previous set.
func (p *Poller) Run(ctx context.Context, fn func(*Reading)) error {
	if p.tick <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", p.tick)
	}
	if err := p.load(ctx); err != nil {
		return fmt.Errorf("load checkpoints: %w", err)
	}

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	var refresh <-chan time.Time
	if p.refresh > 0 {
		t := time.NewTicker(p.refresh)
		defer t.Stop()
		refresh = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-refresh:
			if err := p.load(ctx); err != nil {
				p.logger.Warn("refresh checkpoints failed", zap.Error(err))
			}
		case <-ticker.C:
			r, err := p.engine.Current(p.now())
			if err != nil {
				p.logger.Warn("read rewards failed", zap.Error(err))
				continue
			}
			if r != nil {
				fn(r)
			}
		}
	}
}
