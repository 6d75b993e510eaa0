package manifest

import (
	"sort"

	"manifest-validator/core/probe"
	"manifest-validator/core/strictjson"
	"manifest-validator/feature/manifest/checks"
	"manifest-validator/feature/manifest/schema"
)

// Report is the outcome of validating one manifest that decoded structurally.
type Report struct {
	Source       string                          `json:"source"`
	Clean        bool                            `json:"clean"`
	Offline      bool                            `json:"offline"`
	Unconsumed   []strictjson.UnconsumedKeyError `json:"unconsumed"`
	Coverage     []checks.CoverageViolation      `json:"coverage"`
	Reachability []probe.Violation               `json:"reachability"`
	// Schema findings are advisory and do not affect Clean.
	Schema []schema.Finding `json:"schema,omitempty"`
}

// Problems counts the violations that make the report unclean.
func (r *Report) Problems() int {
	return len(r.Unconsumed) + len(r.Coverage) + len(r.Reachability)
}

func (r *Report) finalize() {
	if r.Unconsumed == nil {
		r.Unconsumed = []strictjson.UnconsumedKeyError{}
	}
	if r.Coverage == nil {
		r.Coverage = []checks.CoverageViolation{}
	}
	if r.Reachability == nil {
		r.Reachability = []probe.Violation{}
	}

	sort.SliceStable(r.Coverage, func(i, j int) bool {
		return r.Coverage[i].Path.String() < r.Coverage[j].Path.String()
	})
	sort.SliceStable(r.Reachability, func(i, j int) bool {
		return r.Reachability[i].Target.Path.String() < r.Reachability[j].Target.Path.String()
	})

	r.Clean = r.Problems() == 0
}
