package report

import (
	"io"

	"github.com/giongto35/glprobe/pkg/probe"
	"github.com/goccy/go-json"
)

type jsonReport struct {
	*probe.Result
	OK            bool     `json:"ok"`
	Fatal         bool     `json:"fatal"`
	API           string   `json:"api"`
	Error         string   `json:"error,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	ReleaseErrors []string `json:"release_errors,omitempty"`
	Suggestions   []string `json:"suggestions"`
}

// JSON writes r as a single indented JSON document.
func JSON(w io.Writer, r *probe.Result) error {
	out := jsonReport{
		Result:      r,
		OK:          r.OK(),
		Fatal:       r.Fatal(),
		API:         r.Version.String(),
		Suggestions: Suggestions(r),
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	for _, warn := range r.Warnings {
		out.Warnings = append(out.Warnings, warn.Error())
	}
	for _, err := range r.ReleaseErrs {
		out.ReleaseErrors = append(out.ReleaseErrors, err.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
