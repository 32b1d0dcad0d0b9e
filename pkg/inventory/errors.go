package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed matches every *RequestError via errors.Is.
	ErrRequestFailed = errors.New("request failed")

	// ErrNoRetailer is returned by Runner.Run when retailer creation yields no identifier.
	ErrNoRetailer = errors.New("retailer creation returned no identifier")
)

// RequestError describes a failed API call: either the request never got a
// response (Status is 0 and Err is set) or the server answered with a
// non-2xx status or a body that is not JSON.
type RequestError struct {
	Step   string
	Method string
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.Status, e.Err)
	case e.Status != 0:
		if e.Body == "" {
			return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
		}
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }
