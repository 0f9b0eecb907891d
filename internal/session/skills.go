package session

import "github.com/louisbranch/herosheet/internal/systems/drawsteel/skills"

// SkillStatus is a snapshot of the skill registry.
type SkillStatus struct {
	Granted     []skills.Source
	Selected    []skills.Source
	Unavailable []string
}

func (s *Session) skillStatus() SkillStatus {
	return SkillStatus{
		Granted:     s.registry.Granted(),
		Selected:    s.registry.Selected(),
		Unavailable: s.registry.Unavailable(),
	}
}

// Skills returns a snapshot of the skill registry.
func (s *Session) Skills() SkillStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skillStatus()
}

// SkillSource returns the entry holding skillID.
func (s *Session) SkillSource(skillID string) (skills.Source, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.SourceOf(skillID)
}

// GrantSkill records a grant from a non-user source.
func (s *Session) GrantSkill(skillID string, kind skills.SourceKind, section string) (bool, SkillStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.registry.RegisterGranted(skillID, kind, section)
	return changed, s.skillStatus()
}

// SelectSkill records a user choice.
func (s *Session) SelectSkill(skillID, section string) (bool, SkillStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.registry.RegisterSelected(skillID, section)
	return changed, s.skillStatus()
}

// ReleaseSkill removes a user choice.
func (s *Session) ReleaseSkill(skillID, section string) (bool, SkillStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.registry.UnregisterSelected(skillID, section)
	return changed, s.skillStatus()
}

// ClearSkillSection removes every entry in section.
func (s *Session) ClearSkillSection(section string) (int, SkillStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.registry.ClearSection(section)
	return removed, s.skillStatus()
}

// ClearSkillSource removes every entry of kind.
func (s *Session) ClearSkillSource(kind skills.SourceKind) (int, SkillStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.registry.ClearSourceKind(kind)
	return removed, s.skillStatus()
}

// ResetSkills empties the skill registry.
func (s *Session) ResetSkills() SkillStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.ResetAll()
	return s.skillStatus()
}
