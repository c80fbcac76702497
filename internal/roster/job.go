package roster

import (
	"encoding/json"
	"fmt"
	"os"
)

// Job is one open requisition a candidate can be matched against. ID is the
// externally supplied JV number and is unique per job; rows without a valid
// ID never reach this type.
type Job struct {
	ID       int64  `json:"jv_id"`
	Title    string `json:"title"`
	Account  string `json:"account,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Vertical string `json:"vertical,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Position renders the "Title - Account" display label used in reports.
func (j *Job) Position() string {
	return fmt.Sprintf("%s - %s", orNA(j.Title), orNA(j.Account))
}

// LocationLabel renders the "City, ST" display label used in reports.
func (j *Job) LocationLabel() string {
	return fmt.Sprintf("%s, %s", orNA(j.City), orNA(j.State))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Jobs is an ordered collection of open requisitions.
type Jobs struct {
	Items []*Job
}

func (js *Jobs) Len() int {
	return len(js.Items)
}

// FindByID returns the job with the given JV ID, or nil.
func (js *Jobs) FindByID(id int64) *Job {
	for _, j := range js.Items {
		if j.ID == id {
			return j
		}
	}
	return nil
}

// DumpToTmpFile writes the collection as indented JSON to a temp file and
// returns its name.
func (js *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(js); err != nil {
		return "", err
	}
	return file.Name(), nil
}
