// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shardlock.
//
// go-shardlock is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package reconcile

// ThresholdResolver decides the effective threshold when a share's recorded
// threshold disagrees with the current effective value. It may keep the
// current value, supply an operator override, or return an error to abort
// the whole operation. It is never silently bypassed.
type ThresholdResolver func(effective, shareThreshold uint8, name string) (uint8, error)

// ContinueFunc is consulted after a signing mismatch has been surfaced in
// non-strict mode. Returning an error aborts the operation; returning nil
// continues with the share still admitted to the pool.
type ContinueFunc func(warning string) error

// Policy configures how the share scan resolves disagreements.
//
// The zero value is the lenient non-interactive policy: only *.ccms
// candidates, keep the file's threshold on mismatch, surface signing
// mismatches as warnings and continue.
type Policy struct {
	// Strict aborts the operation on any signing mismatch instead of
	// downgrading it to a warning.
	Strict bool

	// AllFiles treats every file in the share directory as a candidate
	// instead of only container-typed (*.ccms) files.
	AllFiles bool

	// ResolveThreshold handles threshold disagreements. Nil keeps the
	// current effective threshold.
	ResolveThreshold ThresholdResolver

	// Continue is consulted before proceeding past a surfaced signing
	// mismatch in non-strict mode. Nil continues unconditionally.
	Continue ContinueFunc
}

func (p *Policy) resolveThreshold(effective, shareThreshold uint8, name string) (uint8, error) {
	if p.ResolveThreshold == nil {
		return effective, nil
	}
	return p.ResolveThreshold(effective, shareThreshold, name)
}

func (p *Policy) confirmContinue(warning string) error {
	if p.Continue == nil {
		return nil
	}
	return p.Continue(warning)
}
