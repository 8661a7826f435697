package rewards

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type State uint8

const (
	StateUninitialized State = iota
	StateSampled
	StateInterpolating
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSampled:
		return "sampled"
	case StateInterpolating:
		return "interpolating"
	default:
		return "unknown"
	}
}

// Sample is the baseline captured by the first read after a reset.
type Sample struct {
	Primary   float64
	Secondary []float64
	TimeSec   int64
}

// Reading is the claimable reward of every stream in display units.
type Reading struct {
	Primary   float64
	Secondary []float64
	TimeSec   int64
}

// Engine interpolates reward readings between whole on-chain seconds. The
// baseline sample must be reset whenever the checkpoint set is replaced;
// Refresh does both.
type Engine struct {
	mu     sync.Mutex
	set    *CheckpointSet
	sample *Sample
	state  State
	logger *zap.Logger
}

type EngineOption func(*Engine)

func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset drops the baseline so the next read re-anchors.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.sample = nil
	e.state = StateUninitialized
}

// Refresh replaces the stored checkpoint set and resets the baseline.
func (e *Engine) Refresh(set *CheckpointSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set = set
	e.reset()
	e.logger.Debug("reward checkpoints refreshed", zap.Bool("ready", set.Ready()))
}

// Current reads the set stored by Refresh.
func (e *Engine) Current(now time.Time) (*Reading, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.read(e.set, now)
}

// Read returns the rewards claimable at now, or nil when the set is missing
// a checkpoint input. Nil means unknown, not zero.
func (e *Engine) Read(set *CheckpointSet, now time.Time) (*Reading, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.read(set, now)
}

func (e *Engine) read(set *CheckpointSet, now time.Time) (*Reading, error) {
	if !set.Ready() {
		return nil, nil
	}
	ms := now.UnixMilli()
	timeSec := floorDiv(ms, 1000)

	primary, secondary, err := set.values(timeSec)
	if err != nil {
		return nil, fmt.Errorf("rewards at %d: %w", timeSec, err)
	}
	out := &Reading{Primary: primary, Secondary: secondary, TimeSec: timeSec}

	if e.sample == nil {
		e.sample = &Sample{
			Primary:   primary,
			Secondary: append([]float64(nil), secondary...),
			TimeSec:   timeSec,
		}
		e.state = StateSampled
		e.logger.Debug("reward baseline sampled", zap.Int64("time_sec", timeSec), zap.Float64("primary", primary))
		return out, nil
	}

	deltaSec := timeSec - e.sample.TimeSec
	if deltaSec <= 0 {
		return out, nil
	}
	e.state = StateInterpolating

	extraMs := float64(ms - timeSec*1000)
	out.Primary = extrapolate(primary, e.sample.Primary, deltaSec, extraMs)
	for i, v := range secondary {
		if i >= len(e.sample.Secondary) {
			continue
		}
		out.Secondary[i] = extrapolate(v, e.sample.Secondary[i], deltaSec, extraMs)
	}
	return out, nil
}

// extrapolate advances current by the per-millisecond rate observed since
// the baseline.
func extrapolate(current, baseline float64, deltaSec int64, extraMs float64) float64 {
	rate := (current - baseline) / float64(deltaSec) / 1000
	return current + rate*extraMs
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
