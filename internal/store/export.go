package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/qsim/internal/analysis"
	"github.com/san-kum/qsim/internal/experiment"
)

// ExportData is the JSON document written for one run.
type ExportData struct {
	Results     experiment.Results   `json:"results"`
	Metrics     map[string]float64   `json:"metrics,omitempty"`
	Diagnostics analysis.Diagnostics `json:"diagnostics"`
	X           []float64            `json:"x,omitempty"`
	Re          []float64            `json:"psi_re,omitempty"`
	Im          []float64            `json:"psi_im,omitempty"`
}

// ExportJSON writes the run as indented JSON. Samples of the final state are
// included only when withState is set.
func ExportJSON(w io.Writer, out *experiment.Outcome, withState bool) error {
	data := ExportData{
		Results:     out.Results,
		Metrics:     out.Metrics,
		Diagnostics: out.Diagnostics,
	}

	if withState {
		data.X = out.X
		data.Re = make([]float64, len(out.Psi))
		data.Im = make([]float64, len(out.Psi))
		for i, v := range out.Psi {
			data.Re[i], data.Im[i] = real(v), imag(v)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportResultLine writes the results record as a single JSON line.
func ExportResultLine(w io.Writer, r experiment.Results) error {
	return json.NewEncoder(w).Encode(r)
}

// ExportCSV writes one row per grid sample: x, Re(psi), Im(psi), |psi|^2.
func ExportCSV(w io.Writer, out *experiment.Outcome) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"x", "re", "im", "density"}); err != nil {
		return err
	}

	for i, v := range out.Psi {
		re, im := real(v), imag(v)
		row := []string{
			strconv.FormatFloat(out.X[i], 'g', -1, 64),
			strconv.FormatFloat(re, 'g', -1, 64),
			strconv.FormatFloat(im, 'g', -1, 64),
			strconv.FormatFloat(re*re+im*im, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
