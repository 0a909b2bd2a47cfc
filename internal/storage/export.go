package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/plife/internal/sim"
)

type ExportData struct {
	Meta        RunMetadata          `json:"meta"`
	TickTimesNs []int64              `json:"tick_times_ns"`
	SampleTicks []int                `json:"sample_ticks"`
	Series      map[string][]float64 `json:"series"`
}

func newExportData(meta RunMetadata, result *sim.Result) ExportData {
	data := ExportData{
		Meta:        meta,
		TickTimesNs: make([]int64, len(result.TickTimes)),
		SampleTicks: result.SampleTicks,
		Series:      result.Series,
	}
	for i, d := range result.TickTimes {
		data.TickTimesNs[i] = d.Nanoseconds()
	}
	return data
}

func ExportJSON(path string, meta RunMetadata, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, result)
}

func WriteJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, result))
}
