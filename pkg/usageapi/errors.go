package usageapi

import "fmt"

// ErrorKind classifies a usage poll failure for display. All kinds are
// treated the same for scheduling; the dashboard only words them
// differently.
type ErrorKind int

const (
	// KindNetwork covers transport failures, timeouts and 5xx answers.
	KindNetwork ErrorKind = iota
	// KindAuth covers missing or rejected credentials.
	KindAuth
	// KindParse covers responses that do not match the API contract.
	// Retrying these is unlikely to help until the client is updated.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindParse:
		return "parse"
	default:
		return "network"
	}
}

// FetchError wraps a usage poll failure with its classification.
type FetchError struct {
	Kind ErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("usage fetch (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func networkErr(err error) *FetchError {
	return &FetchError{Kind: KindNetwork, Err: err}
}

func authErr(err error) *FetchError {
	return &FetchError{Kind: KindAuth, Err: err}
}

func parseErr(err error) *FetchError {
	return &FetchError{Kind: KindParse, Err: err}
}
