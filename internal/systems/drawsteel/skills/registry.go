package skills

import (
	"fmt"
	"slices"
	"sort"
)

// Registry is the skill allocation ledger for one session.
//
// A skill id appears at most once per section among granted entries and at
// most once across every selected entry. It is not safe for concurrent use.
type Registry struct {
	granted  []Source
	selected []Source
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// IsAvailable reports whether no grant or selection holds skillID.
func (r *Registry) IsAvailable(skillID string) bool {
	_, ok := r.SourceOf(skillID)
	return !ok
}

// SourceOf returns the entry holding skillID, checking grants before
// selections.
func (r *Registry) SourceOf(skillID string) (Source, bool) {
	for _, s := range r.granted {
		if s.SkillID == skillID {
			return s, true
		}
	}
	for _, s := range r.selected {
		if s.SkillID == skillID {
			return s, true
		}
	}
	return Source{}, false
}

// RegisterGranted records a grant from a non-user source. Registering the
// same skill and section twice is a no-op. It panics when kind is not a
// granting kind.
func (r *Registry) RegisterGranted(skillID string, kind SourceKind, section string) bool {
	if !kind.Granted() {
		panic(fmt.Sprintf("skills: %s cannot grant skills", kind))
	}
	for _, s := range r.granted {
		if s.SkillID == skillID && s.Section == section {
			return false
		}
	}
	r.granted = append(r.granted, Source{SkillID: skillID, Kind: kind, Section: section})
	return true
}

// RegisterSelected records a user choice. It is a no-op when skillID is
// already selected in any section.
func (r *Registry) RegisterSelected(skillID, section string) bool {
	for _, s := range r.selected {
		if s.SkillID == skillID {
			return false
		}
	}
	r.selected = append(r.selected, Source{SkillID: skillID, Kind: SourceUserSelected, Section: section})
	return true
}

// UnregisterSelected removes the selection of skillID in section.
func (r *Registry) UnregisterSelected(skillID, section string) bool {
	before := len(r.selected)
	r.selected = slices.DeleteFunc(r.selected, func(s Source) bool {
		return s.SkillID == skillID && s.Section == section
	})
	return len(r.selected) != before
}

// ClearSection removes every grant and selection tagged with section.
func (r *Registry) ClearSection(section string) int {
	return r.remove(func(s Source) bool { return s.Section == section })
}

// ClearSourceKind removes every entry of kind.
func (r *Registry) ClearSourceKind(kind SourceKind) int {
	kind.Granted() // panics on unknown kinds
	return r.remove(func(s Source) bool { return s.Kind == kind })
}

// ResetAll empties the registry.
func (r *Registry) ResetAll() {
	r.granted = nil
	r.selected = nil
}

func (r *Registry) remove(match func(Source) bool) int {
	before := len(r.granted) + len(r.selected)
	r.granted = slices.DeleteFunc(r.granted, match)
	r.selected = slices.DeleteFunc(r.selected, match)
	return before - len(r.granted) - len(r.selected)
}

// Granted returns the grants in registration order.
func (r *Registry) Granted() []Source {
	return slices.Clone(r.granted)
}

// Selected returns the selections in registration order.
func (r *Registry) Selected() []Source {
	return slices.Clone(r.selected)
}

// SelectedIn returns the selections tagged with section.
func (r *Registry) SelectedIn(section string) []Source {
	var out []Source
	for _, s := range r.selected {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// Unavailable returns every held skill id, sorted.
func (r *Registry) Unavailable() []string {
	seen := make(map[string]struct{}, len(r.granted)+len(r.selected))
	for _, s := range r.granted {
		seen[s.SkillID] = struct{}{}
	}
	for _, s := range r.selected {
		seen[s.SkillID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for skillID := range seen {
		out = append(out, skillID)
	}
	sort.Strings(out)
	return out
}
