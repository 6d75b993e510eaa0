package strictjson

import (
	"fmt"
	"sort"
	"strings"

	"manifest-validator/core/keypath"
)

// Cause classifies a structural failure.
type Cause string

const (
	CauseMissingKey   Cause = "missing key"
	CauseNullValue    Cause = "null value"
	CauseTypeMismatch Cause = "type mismatch"
	CauseCorrupted    Cause = "corrupted input"
)

// StructuralError aborts decoding. It carries the location and the type that was expected there.
type StructuralError struct {
	Path     keypath.KeyPath `json:"path"`
	Expected string          `json:"expected"`
	Cause    Cause           `json:"cause"`
	// Detail holds the underlying parser message for corrupted input, or the actual type found.
	Detail string `json:"detail,omitempty"`
}

func (e *StructuralError) Error() string {
	msg := fmt.Sprintf("%s at %s: expected %s", e.Cause, e.Path, e.Expected)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// UnconsumedKeyError lists every key at one object that no field claimed.
type UnconsumedKeyError struct {
	Path keypath.KeyPath `json:"path"`
	Keys []string        `json:"keys"`
}

func (e UnconsumedKeyError) Error() string {
	return fmt.Sprintf("unexpected keys at %s: %s", e.Path, strings.Join(e.Keys, ", "))
}

// UnconsumedError aggregates every UnconsumedKeyError found in one decode pass.
// The decoded value is still complete when this error is returned.
type UnconsumedError struct {
	Entries []UnconsumedKeyError `json:"entries"`
}

func (e *UnconsumedError) Error() string {
	parts := make([]string, 0, len(e.Entries))
	for _, entry := range e.Entries {
		parts = append(parts, entry.Error())
	}
	return fmt.Sprintf("%d object(s) with unexpected keys: %s", len(e.Entries), strings.Join(parts, "; "))
}

// Collector accumulates unconsumed keys across a recursive decode.
// It is not safe for concurrent use; a decode pass is single-threaded.
type Collector struct {
	entries map[string]*UnconsumedKeyError
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{entries: make(map[string]*UnconsumedKeyError)}
}

// Record adds keys found at path. Repeated paths are merged.
func (c *Collector) Record(path keypath.KeyPath, keys ...string) {
	if len(keys) == 0 {
		return
	}
	id := path.String()
	entry, ok := c.entries[id]
	if !ok {
		entry = &UnconsumedKeyError{Path: path}
		c.entries[id] = entry
	}
	for _, k := range keys {
		if !contains(entry.Keys, k) {
			entry.Keys = append(entry.Keys, k)
		}
	}
	sort.Strings(entry.Keys)
}

// Len reports how many objects carried unexpected keys.
func (c *Collector) Len() int {
	return len(c.entries)
}

// Entries returns the recorded entries ordered by path.
func (c *Collector) Entries() []UnconsumedKeyError {
	out := make([]UnconsumedKeyError, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path.String() < out[j].Path.String()
	})
	return out
}

// Err returns nil when nothing was recorded, otherwise an *UnconsumedError.
func (c *Collector) Err() error {
	if len(c.entries) == 0 {
		return nil
	}
	return &UnconsumedError{Entries: c.Entries()}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
