// Package logging gives library packages a narrow logging surface instead of
// writing to stdout directly. The default implementation keeps the teacher
// repo's bare fmt.Printf register; no logging framework appears anywhere in
// the retrieved pack.
package logging

import "fmt"

// Logger is the minimal interface search algorithms and the façade log
// through.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Std is a Logger backed by fmt.Printf, prefixed by level.
type Std struct {
	// Quiet suppresses Debugf output. Info/Warn are always printed.
	Quiet bool
}

func (s Std) Debugf(format string, args ...any) {
	if s.Quiet {
		return
	}
	fmt.Printf("[debug] "+format+"\n", args...)
}

func (s Std) Infof(format string, args ...any) {
	fmt.Printf("[info] "+format+"\n", args...)
}

func (s Std) Warnf(format string, args ...any) {
	fmt.Printf("[warn] "+format+"\n", args...)
}

// Noop discards everything. Used by tests that don't want search-loop noise.
type Noop struct{}

func (Noop) Debugf(string, ...any) {}
func (Noop) Infof(string, ...any)  {}
func (Noop) Warnf(string, ...any)  {}
