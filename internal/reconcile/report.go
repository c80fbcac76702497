package reconcile

import (
	"encoding/json"
	"os"
)

// Summary is the headline tally of a reconciliation run.
type Summary struct {
	Exact          int `json:"exact"`
	ConfirmedFuzzy int `json:"confirmed_fuzzy"`
	Possible       int `json:"possible"`
	OnlyInA        int `json:"only_in_a"`
	OnlyInB        int `json:"only_in_b"`
	Merged         int `json:"merged"`
}

// Summarize tallies the report partitions.
func (r *Report) Summarize() Summary {
	return Summary{
		Exact:          len(r.Exact),
		ConfirmedFuzzy: len(r.ConfirmedFuzzy),
		Possible:       len(r.Possible),
		OnlyInA:        len(r.OnlyInA),
		OnlyInB:        len(r.OnlyInB),
		Merged:         len(r.Merged),
	}
}

// ToFile writes the full report as indented JSON.
func (r *Report) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// DumpToTmpFile writes the report to a temp file and returns its name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "reconciliation_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
