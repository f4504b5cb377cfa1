package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/machinetwin/internal/machine"
	"github.com/san-kum/machinetwin/internal/twin"
)

// RunData is the JSON encoding of a completed run.
type RunData struct {
	Params  machine.Params     `json:"params"`
	Seed    int64              `json:"seed"`
	Frames  int                `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`

	Time             []int     `json:"time"`
	Temperature      []float64 `json:"temperature"`
	ProductionRate   []float64 `json:"production_rate"`
	PowerConsumption []float64 `json:"power_consumption"`
	Pressure         []float64 `json:"pressure"`
	Stress           []float64 `json:"stress"`
}

func JSON(w io.Writer, p machine.Params, seed int64, result *twin.Result) error {
	h := result.History
	data := RunData{
		Params:           p,
		Seed:             seed,
		Frames:           result.Frames,
		Metrics:          result.Metrics,
		Time:             h.Frames,
		Temperature:      h.Temperature,
		ProductionRate:   h.ProductionRate,
		PowerConsumption: h.PowerConsumption,
		Pressure:         h.Pressure,
		Stress:           h.Stress,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func JSONFile(path string, p machine.Params, seed int64, result *twin.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return JSON(f, p, seed, result)
}

func CSV(w io.Writer, h *twin.History) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"frame", "temperature", "production_rate", "power_consumption", "pressure", "stress"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range h.Frames {
		row := []string{
			strconv.Itoa(h.Frames[i]),
			strconv.FormatFloat(h.Temperature[i], 'f', 6, 64),
			strconv.FormatFloat(h.ProductionRate[i], 'f', 6, 64),
			strconv.FormatFloat(h.PowerConsumption[i], 'f', 6, 64),
			strconv.FormatFloat(h.Pressure[i], 'f', 6, 64),
			strconv.FormatFloat(h.Stress[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func CSVFile(path string, h *twin.History) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return CSV(f, h)
}
