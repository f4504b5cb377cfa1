package viz

import "math"

// Turbine geometry: a horizontal hub carrying three tiers of twelve
// blades each. Tier i sits at axial offset tierOffsets[i] with blade
// profile r(theta) = length * (1 - cos(theta)), theta in [0, pi].
const (
	numBlades    = 12
	hubRadius    = 0.2
	hubLength    = 1.0
	bladeSamples = 10
	modelScale   = 0.42
)

var (
	tierOffsets  = [3]float64{-0.75, 0, 0.75}
	bladeLengths = [3]float64{1.0, 1.5, 2.0}
	bladeWidths  = [3]float64{0.3, 0.5, 0.7}
)

// TurbineWireframe builds the rotating hub model at the given rotation
// angle in degrees. The whole model is scaled to fit the camera frustum.
func TurbineWireframe(rotationDeg float64) *Wireframe {
	wf := NewWireframe()
	offset := rotationDeg * math.Pi / 180

	addHub(wf, offset)
	for tier := range tierOffsets {
		addBladeTier(wf, tier, offset)
	}
	return wf
}

func addHub(wf *Wireframe, offset float64) {
	half := hubLength / 2
	prev := [2]Vec3{}
	for i := 0; i <= numBlades; i++ {
		a := float64(i)*2*math.Pi/numBlades + offset
		front := Vec3{hubRadius * math.Sin(a), -half, hubRadius * math.Cos(a)}.Scale(modelScale)
		back := Vec3{hubRadius * math.Sin(a), half, hubRadius * math.Cos(a)}.Scale(modelScale)
		if i > 0 {
			wf.AddEdge(prev[0], front)
			wf.AddEdge(prev[1], back)
		}
		if i%3 == 0 {
			wf.AddEdge(front, back)
		}
		prev = [2]Vec3{front, back}
	}
}

func addBladeTier(wf *Wireframe, tier int, offset float64) {
	yPos := tierOffsets[tier]
	length := bladeLengths[tier]
	width := bladeWidths[tier]

	for b := 0; b < numBlades; b++ {
		angle := float64(b)*2*math.Pi/numBlades + offset
		sin, cos := math.Sin(angle), math.Cos(angle)

		var prev Vec3
		for j := 0; j < bladeSamples; j++ {
			f := float64(j) / float64(bladeSamples-1)
			theta := f * math.Pi
			r := length*(1-math.Cos(theta)) + hubRadius
			p := Vec3{
				X: r * sin,
				Y: yPos - width/2 + width*f,
				Z: r * cos,
			}.Scale(modelScale)
			if j > 0 {
				wf.AddEdge(prev, p)
			}
			prev = p
		}
	}
}
