// Package replay records per-tick input and plays it back headlessly.
//
// A replay is the seed, the tick rate, the gameplay config and the list of
// non-empty input frames. The simulation is deterministic, so running the
// same frames against a fresh game must reproduce the recorded final hash.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// ErrCorrupt is returned when recorded frames cannot be used.
	ErrCorrupt = errors.New("corrupt replay")
	// ErrMismatch is returned when playback diverges from the recording.
	ErrMismatch = errors.New("replay mismatch")
)

// Frame is the input applied on one tick. Ticks without input are not stored.
type Frame struct {
	Tick    uint64  `msgpack:"t"`
	Actions []uint8 `msgpack:"a"`
}

// Replay is a complete recorded session.
type Replay struct {
	ID         int64
	Seed       int64
	TickRate   int
	ConfigYAML string
	Frames     []Frame
	Ticks      uint64 // Number of Step calls recorded
	FinalScore int
	FinalHash  uint64
	CreatedAt  time.Time
}

// Runtime returns the runtime config the session was recorded with.
func (rp *Replay) Runtime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.Seed = rp.Seed
	rt.TickRate = rp.TickRate
	return rt
}

// Config decodes and validates the recorded gameplay config.
func (rp *Replay) Config() (config.FlappyConfig, error) {
	cfg, err := config.Parse([]byte(rp.ConfigYAML))
	if err != nil {
		return cfg, fmt.Errorf("replay: config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("replay: %w", err)
	}
	return cfg, nil
}

// Duration returns the simulated length of the session.
func (rp *Replay) Duration() time.Duration {
	return time.Duration(rp.Ticks) * rp.Runtime().StepDuration() //#nosec G115 -- tick counts fit in int64
}

// EncodeFrames packs frames with msgpack.
func EncodeFrames(frames []Frame) ([]byte, error) {
	data, err := msgpack.Marshal(frames)
	if err != nil {
		return nil, fmt.Errorf("replay: encode frames: %w", err)
	}
	return data, nil
}

// DecodeFrames unpacks frames and checks that ticks strictly increase.
func DecodeFrames(data []byte) ([]Frame, error) {
	var frames []Frame
	if err := msgpack.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("replay: decode frames: %w: %w", ErrCorrupt, err)
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Tick <= frames[i-1].Tick {
			return nil, fmt.Errorf("replay: frame %d tick %d after %d: %w",
				i, frames[i].Tick, frames[i-1].Tick, ErrCorrupt)
		}
	}
	return frames, nil
}

// Recorder captures the input fed to each Step.
type Recorder struct {
	seed     int64
	tickRate int
	cfg      config.FlappyConfig
	frames   []Frame
	tick     uint64
}

// NewRecorder starts a recording for a game reset with rt.
func NewRecorder(cfg config.FlappyConfig, rt core.RuntimeConfig) *Recorder {
	return &Recorder{
		seed:     rt.Seed,
		tickRate: rt.TickRate,
		cfg:      cfg,
	}
}

// Record stores the input for the next tick. Call it once per Step.
func (r *Recorder) Record(in core.InputFrame) {
	if !in.Empty() {
		actions := make([]uint8, len(in.Actions))
		for i, a := range in.Actions {
			actions[i] = uint8(a)
		}
		r.frames = append(r.frames, Frame{Tick: r.tick, Actions: actions})
	}
	r.tick++
}

// Ticks returns the number of recorded steps.
func (r *Recorder) Ticks() uint64 {
	return r.tick
}

// Finish seals the recording with the final state of g.
func (r *Recorder) Finish(g *flappy.Game) (*Replay, error) {
	data, err := config.Marshal(r.cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	snap := g.Snapshot()
	frames := make([]Frame, len(r.frames))
	copy(frames, r.frames)
	return &Replay{
		Seed:       r.seed,
		TickRate:   r.tickRate,
		ConfigYAML: string(data),
		Frames:     frames,
		Ticks:      r.tick,
		FinalScore: snap.Score,
		FinalHash:  snap.Hash(),
		CreatedAt:  time.Now(),
	}, nil
}

// Player feeds recorded frames back one tick at a time.
type Player struct {
	frames []Frame
	next   int
	tick   uint64
	ticks  uint64
}

// NewPlayer creates a player for rp.
func NewPlayer(rp *Replay) *Player {
	return &Player{frames: rp.Frames, ticks: rp.Ticks}
}

// Next returns the input for the current tick and advances.
// ok is false once every recorded tick has been played.
func (p *Player) Next() (core.InputFrame, bool) {
	if p.tick >= p.ticks {
		return core.InputFrame{}, false
	}
	in := core.NewInputFrame()
	if p.next < len(p.frames) && p.frames[p.next].Tick == p.tick {
		for _, a := range p.frames[p.next].Actions {
			in.Set(core.Action(a))
		}
		p.next++
	}
	p.tick++
	return in, true
}

// Done reports whether playback has finished.
func (p *Player) Done() bool {
	return p.tick >= p.ticks
}

// Tick returns the number of ticks played so far.
func (p *Player) Tick() uint64 {
	return p.tick
}

// NewGame builds a fresh game ready to replay rp.
func NewGame(rp *Replay) (*flappy.Game, error) {
	cfg, err := rp.Config()
	if err != nil {
		return nil, err
	}
	g := flappy.New(cfg)
	g.Reset(rp.Runtime())
	return g, nil
}

// Run plays rp headlessly and returns the final game.
func Run(rp *Replay) (*flappy.Game, error) {
	g, err := NewGame(rp)
	if err != nil {
		return nil, err
	}
	p := NewPlayer(rp)
	for {
		in, ok := p.Next()
		if !ok {
			break
		}
		g.Step(in)
	}
	return g, nil
}

// Verify plays rp and checks the final score and hash.
func Verify(rp *Replay) error {
	g, err := Run(rp)
	if err != nil {
		return err
	}
	snap := g.Snapshot()
	if snap.Score != rp.FinalScore {
		return fmt.Errorf("replay: score %d, recorded %d: %w", snap.Score, rp.FinalScore, ErrMismatch)
	}
	if h := snap.Hash(); h != rp.FinalHash {
		return fmt.Errorf("replay: hash %x, recorded %x: %w", h, rp.FinalHash, ErrMismatch)
	}
	return nil
}
