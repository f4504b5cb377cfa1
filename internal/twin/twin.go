package twin

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/machinetwin/internal/machine"
	"github.com/san-kum/machinetwin/internal/noise"
)

// Degrees of visual rotation per unit of production rate per tick.
const rotationGain = 5.0

// Snapshot is the read-only view of the twin after a tick, handed to
// renderers and exporters. All fields are copies.
type Snapshot struct {
	Frame            int     `json:"frame"`
	Temperature      float64 `json:"temperature"`
	ProductionRate   float64 `json:"production_rate"`
	PowerConsumption float64 `json:"power_consumption"`
	Pressure         float64 `json:"pressure"`
	Stress           float64 `json:"stress"`
	Rotation         float64 `json:"rotation"`
}

// Twin drives a single machine: one Update per tick, history accumulation,
// and the derived rotation angle for the visual model. The machine and
// history are owned exclusively by the twin and mutated only inside Tick.
type Twin struct {
	params   machine.Params
	machine  *machine.Machine
	src      noise.Source
	history  *History
	rotation float64

	// run-wide accumulators, independent of the history window
	ticks    int
	sumTemp  float64
	sumPower float64
	peakRate float64
}

func New(p machine.Params, src noise.Source, historyCapacity int) (*Twin, error) {
	m, err := machine.New(p)
	if err != nil {
		return nil, err
	}
	return &Twin{
		params:  p,
		machine: m,
		src:     src,
		history: NewHistory(historyCapacity),
	}, nil
}

func (t *Twin) History() *History         { return t.history }
func (t *Twin) Rotation() float64         { return t.rotation }
func (t *Twin) Machine() *machine.Machine { return t.machine }

// Tick advances the machine one step, records the result under the given
// frame index, and spins the visual model proportionally to the current
// production rate. The frame index is a time-axis label only; the physics
// never consumes it.
func (t *Twin) Tick(frame int) Snapshot {
	t.machine.Update(t.src)
	t.rotation = math.Mod(t.rotation+t.machine.ProductionRate*rotationGain, 360)

	s := Snapshot{
		Frame:            frame,
		Temperature:      t.machine.Temperature,
		ProductionRate:   t.machine.ProductionRate,
		PowerConsumption: t.machine.PowerConsumption,
		Pressure:         t.machine.Pressure,
		Stress:           t.machine.Stress,
		Rotation:         t.rotation,
	}
	t.history.Append(s)

	t.ticks++
	t.sumTemp += s.Temperature
	t.sumPower += s.PowerConsumption
	if s.ProductionRate > t.peakRate {
		t.peakRate = s.ProductionRate
	}
	return s
}

// Reset restores the machine to its construction parameters and clears
// the history. Resettable noise sources are rewound to their seed, so a
// reset run replays the trajectory of the first one.
func (t *Twin) Reset() {
	m, err := machine.New(t.params)
	if err != nil {
		// params were validated at construction
		panic(err)
	}
	t.machine = m
	t.rotation = 0
	t.history.reset()
	t.ticks = 0
	t.sumTemp = 0
	t.sumPower = 0
	t.peakRate = 0
	if r, ok := t.src.(noise.Resettable); ok {
		r.Reset()
	}
}

// Result summarizes a completed headless run. Metrics cover every tick
// of the run, even when the history window is bounded.
type Result struct {
	Frames  int
	Final   Snapshot
	History *History
	Metrics map[string]float64
}

// Run ticks the twin frames times as fast as possible, honoring ctx
// between ticks.
func (t *Twin) Run(ctx context.Context, frames int) (*Result, error) {
	var last Snapshot
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		last = t.Tick(i)
	}

	return &Result{
		Frames:  frames,
		Final:   last,
		History: t.history,
		Metrics: t.summarize(),
	}, nil
}

// RunWithCallback ticks the twin at a fixed interval, handing each
// snapshot to cb. A zero interval runs unpaced. cb returning false stops
// the run early.
func (t *Twin) RunWithCallback(ctx context.Context, frames int, interval time.Duration, cb func(Snapshot) bool) error {
	var tick *time.Ticker
	if interval > 0 {
		tick = time.NewTicker(interval)
		defer tick.Stop()
	}

	for i := 0; i < frames; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick.C:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		if !cb(t.Tick(i)) {
			return nil
		}
	}
	return nil
}

func (t *Twin) summarize() map[string]float64 {
	m := map[string]float64{}
	if t.ticks == 0 {
		return m
	}
	n := float64(t.ticks)

	m["mean_temperature"] = t.sumTemp / n
	m["mean_power"] = t.sumPower / n
	m["peak_production"] = t.peakRate
	m["final_pressure"] = t.machine.Pressure
	m["final_stress"] = t.machine.Stress
	return m
}
