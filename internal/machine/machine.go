package machine

import (
	"fmt"
	"math"

	"github.com/san-kum/machinetwin/internal/noise"
)

// Per-tick noise magnitudes for each physical quantity.
const (
	TempSigma     = 2.0
	RateSigma     = 0.5
	PowerSigma    = 0.2
	PressureSigma = 0.1
	StressSigma   = 0.05
)

const (
	initialPressure = 1.0
	initialStress   = 1.0
	maxPower        = 100.0
)

type Params struct {
	InitialTemp    float64 `json:"initial_temp"`
	MaxTemp        float64 `json:"max_temp"`
	OptimalTemp    float64 `json:"optimal_temp"`
	ProductionRate float64 `json:"production_rate"`
	Power          float64 `json:"power"`
}

func (p Params) Validate() error {
	if p.MaxTemp <= 0 {
		return fmt.Errorf("max temp must be positive, got %f", p.MaxTemp)
	}
	if p.OptimalTemp <= 0 {
		return fmt.Errorf("optimal temp must be positive, got %f", p.OptimalTemp)
	}
	if p.OptimalTemp > p.MaxTemp {
		return fmt.Errorf("optimal temp %f exceeds max temp %f", p.OptimalTemp, p.MaxTemp)
	}
	if p.InitialTemp < 0 || p.InitialTemp > p.MaxTemp {
		return fmt.Errorf("initial temp %f outside [0, %f]", p.InitialTemp, p.MaxTemp)
	}
	if p.ProductionRate < 0 {
		return fmt.Errorf("production rate must be non-negative, got %f", p.ProductionRate)
	}
	if p.Power < 0 || p.Power > maxPower {
		return fmt.Errorf("power %f outside [0, %d]", p.Power, int(maxPower))
	}
	return nil
}

// Machine holds the physical state of a single manufacturing machine.
// Temperature is clamped to [0, MaxTemp], power to [0, 100], and the
// production rate is floored at zero. Pressure and stress are cumulative
// wear indicators and drift without bounds.
type Machine struct {
	Temperature      float64
	ProductionRate   float64
	PowerConsumption float64
	Pressure         float64
	Stress           float64

	maxTemp     float64
	optimalTemp float64
}

func New(p Params) (*Machine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Machine{
		Temperature:      p.InitialTemp,
		ProductionRate:   p.ProductionRate,
		PowerConsumption: p.Power,
		Pressure:         initialPressure,
		Stress:           initialStress,
		maxTemp:          p.MaxTemp,
		optimalTemp:      p.OptimalTemp,
	}, nil
}

func (m *Machine) MaxTemp() float64     { return m.maxTemp }
func (m *Machine) OptimalTemp() float64 { return m.optimalTemp }

// TempFactor is the dimensionless thermal efficiency: exactly 1 at the
// optimal temperature, falling off (possibly below zero) as the machine
// drifts away from it.
func (m *Machine) TempFactor() float64 {
	return 1 - math.Abs(m.Temperature-m.optimalTemp)/m.optimalTemp
}

// Update advances the machine by one tick. Each quantity takes an
// independent draw from src; temperature feeds into the production rate
// through TempFactor, everything else is uncoupled.
func (m *Machine) Update(src noise.Source) {
	m.Temperature = clamp(m.Temperature+src.Normal(TempSigma), 0, m.maxTemp)
	m.ProductionRate = math.Max(0, m.ProductionRate*m.TempFactor()+src.Normal(RateSigma))
	m.PowerConsumption = clamp(m.PowerConsumption+src.Normal(PowerSigma), 0, maxPower)
	m.Pressure += src.Normal(PressureSigma)
	m.Stress += src.Normal(StressSigma)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
