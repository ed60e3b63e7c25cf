package outline

import (
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

// minEnforcePasses is the floor on the fixed-point pass bound. The real
// bound grows with the list so long pathological chains still converge.
const minEnforcePasses = 10

// Violates reports whether the section list breaks either hierarchy
// invariant: the first section must be level 1, and no section may be more
// than one level deeper than its predecessor.
func Violates(sections []domain.Section) bool {
	prev := 0
	for i := range sections {
		if i == 0 {
			if sections[i].Level != 1 {
				return true
			}
		} else if sections[i].Level > prev+1 {
			return true
		}
		prev = sections[i].Level
	}
	return false
}

// Enforce produces a section list satisfying the hierarchy invariants with
// the minimum necessary level changes, preserving order. It iterates a
// rewrite pass to a fixed point: each pass builds a new list left to right,
// validating element i against the already-corrected element i-1 of the
// pass under construction, never the stale original — using the original
// predecessor would under-correct chains of consecutive violations.
// A level change regenerates the section's markdown fragment.
//
// The second return value reports convergence. When false, the returned
// list may still violate the invariants; callers log and apply it as-is
// rather than failing.
func Enforce(sections []domain.Section) ([]domain.Section, bool) {
	out := make([]domain.Section, len(sections))
	copy(out, sections)

	maxPasses := len(sections)
	if maxPasses < minEnforcePasses {
		maxPasses = minEnforcePasses
	}

	for pass := 0; pass < maxPasses; pass++ {
		next := make([]domain.Section, 0, len(out))
		changed := false
		prev := 0
		for i := range out {
			s := out[i]
			want := s.Level
			if i == 0 {
				if want != 1 {
					want = 1
				}
			} else if want > prev+1 {
				want = prev + 1
			}
			if want != s.Level {
				s.Level = want
				s.Fragment = domain.RewriteHeadingLevel(s.Fragment, want)
				changed = true
			}
			prev = s.Level
			next = append(next, s)
		}
		out = next
		if !changed {
			return out, true
		}
	}
	return out, false
}

// HeadingUpdates diffs a corrected section list against the original blocks
// and returns the level/fragment updates that must be persisted. Sections
// absent from the original are skipped.
func HeadingUpdates(original []domain.Block, corrected []domain.Section) []domain.HeadingUpdate {
	byID := make(map[string]*domain.Block, len(original))
	for i := range original {
		byID[original[i].ID] = &original[i]
	}

	var updates []domain.HeadingUpdate
	for i := range corrected {
		s := &corrected[i]
		b, ok := byID[s.ID]
		if !ok {
			continue
		}
		if b.HeadingLevel != s.Level || b.Fragment != s.Fragment {
			updates = append(updates, domain.HeadingUpdate{
				ID:       s.ID,
				Level:    s.Level,
				Fragment: s.Fragment,
			})
		}
	}
	return updates
}
