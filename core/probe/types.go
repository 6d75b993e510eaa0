package probe

import (
	"fmt"

	"manifest-validator/core/keypath"
)

// Target is one URL to probe, tagged with where it came from.
type Target struct {
	Path  keypath.KeyPath `json:"path"`
	Label string          `json:"label"`
	URL   string          `json:"url"`
}

// ViolationKind classifies a reachability failure.
type ViolationKind string

const (
	KindMalformedURL     ViolationKind = "malformed_url"
	KindUnexpectedStatus ViolationKind = "unexpected_status"
	KindTransportError   ViolationKind = "transport_error"
	KindTimeout          ViolationKind = "timeout"
	KindUnresolved       ViolationKind = "unresolved"
)

// Violation reports a URL that could not be confirmed reachable.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Target   Target        `json:"target"`
	Status   int           `json:"status,omitempty"`
	Attempts int           `json:"attempts"`
	Err      string        `json:"error,omitempty"`
}

func (v Violation) Error() string {
	switch v.Kind {
	case KindUnexpectedStatus:
		return fmt.Sprintf("%s (%s): HTTP %d for %s", v.Target.Path, v.Target.Label, v.Status, v.Target.URL)
	case KindUnresolved:
		return fmt.Sprintf("%s (%s): no result before deadline for %s", v.Target.Path, v.Target.Label, v.Target.URL)
	default:
		return fmt.Sprintf("%s (%s): %s for %s: %s", v.Target.Path, v.Target.Label, v.Kind, v.Target.URL, v.Err)
	}
}
