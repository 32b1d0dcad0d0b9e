package inventory

import (
	"bytes"
	"encoding/json"
)

// Result is the outcome of one API request. Exactly one of Body (possibly
// nil for an empty 2xx response) or Err is meaningful; check OK first.
type Result struct {
	Step   string
	Method string
	Path   string
	Status int

	// Body is the decoded JSON response, Raw the bytes it was decoded from.
	Body any
	Raw  json.RawMessage

	Err error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Err == nil }

// StepReport groups the requests issued by one step function.
type StepReport struct {
	Name    string
	Results []Result
}

// OK reports whether every request of the step succeeded.
func (s StepReport) OK() bool {
	for _, res := range s.Results {
		if !res.OK() {
			return false
		}
	}
	return true
}

// Failures returns the failed results of the step.
func (s StepReport) Failures() []Result {
	var failed []Result
	for _, res := range s.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Report is what a full run produced.
type Report struct {
	RetailerID RetailerID
	Steps      []StepReport
}

// Requests returns the number of API requests issued during the run.
func (r *Report) Requests() int {
	n := 0
	for _, step := range r.Steps {
		n += len(step.Results)
	}
	return n
}

// Failures returns every failed request of the run, in order.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, step := range r.Steps {
		failed = append(failed, step.Failures()...)
	}
	return failed
}

// RetailerID is the identifier handed out by /create-db. The API returns it
// as an opaque JSON value; strings are kept verbatim and numbers by their
// literal text.
type RetailerID string

// parseRetailerID extracts userId from a create-db response body.
// It returns "" when the field is missing, null or empty.
func parseRetailerID(raw json.RawMessage) RetailerID {
	var envelope struct {
		UserID json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}

	v := bytes.TrimSpace(envelope.UserID)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return RetailerID(s)
	}
	// Only non-zero numbers remain; objects, arrays and booleans are not identifiers.
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return ""
	}
	if f, err := n.Float64(); err != nil || f == 0 {
		return ""
	}
	return RetailerID(n.String())
}
