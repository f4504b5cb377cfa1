package twin

// History records one entry per tick for each tracked quantity, in
// chronological order. The slices are parallel: index i across all of
// them belongs to the same tick. Callers outside this package treat the
// slices as read-only.
type History struct {
	Frames           []int
	Temperature      []float64
	ProductionRate   []float64
	PowerConsumption []float64
	Pressure         []float64
	Stress           []float64

	capacity int
}

// NewHistory returns an unbounded history when capacity <= 0; otherwise
// the oldest entries are dropped once capacity is reached.
func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

func (h *History) Len() int { return len(h.Frames) }

func (h *History) Append(s Snapshot) {
	h.Frames = append(h.Frames, s.Frame)
	h.Temperature = append(h.Temperature, s.Temperature)
	h.ProductionRate = append(h.ProductionRate, s.ProductionRate)
	h.PowerConsumption = append(h.PowerConsumption, s.PowerConsumption)
	h.Pressure = append(h.Pressure, s.Pressure)
	h.Stress = append(h.Stress, s.Stress)

	if h.capacity > 0 && len(h.Frames) > h.capacity {
		h.Frames = h.Frames[1:]
		h.Temperature = h.Temperature[1:]
		h.ProductionRate = h.ProductionRate[1:]
		h.PowerConsumption = h.PowerConsumption[1:]
		h.Pressure = h.Pressure[1:]
		h.Stress = h.Stress[1:]
	}
}

func (h *History) reset() {
	h.Frames = h.Frames[:0]
	h.Temperature = h.Temperature[:0]
	h.ProductionRate = h.ProductionRate[:0]
	h.PowerConsumption = h.PowerConsumption[:0]
	h.Pressure = h.Pressure[:0]
	h.Stress = h.Stress[:0]
}
