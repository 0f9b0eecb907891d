package scenario

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel/domain"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel/skills"
)

type heroStep func(state *scenarioState, args map[string]any) (bool, error)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch step.Kind {
	case "hero":
		return r.runHeroStep(state, step.Args)
	case "damage", "heal", "set_stamina", "stamina_max", "temporary", "dying_threshold",
		"toggle", "use_recovery", "recoveries", "restore_recoveries", "respite",
		"heroic", "award_xp", "level_up":
		return r.runResourceStep(state, step)
	case "edge_bane":
		value, err := domain.ParseEdgeBane(requiredString(step.Args, "edge_bane"))
		if err != nil {
			return err
		}
		state.session.SetEdgeBane(value)
		state.changed = true
		return nil
	case "cycle_edge_bane":
		state.session.CycleEdgeBane()
		state.changed = true
		return nil
	case "power_roll":
		return r.runPowerRollStep(state, step.Args)
	case "die_roll":
		return r.runDieRollStep(state, step.Args)
	case "clear_history":
		state.session.ClearRollHistory()
		state.roll = nil
		return nil
	case "grant_skill", "select_skill", "release_skill", "clear_section", "clear_source", "reset_skills":
		return r.runSkillStep(state, step)
	case "expect":
		return r.runExpectStep(state, step.Args)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runHeroStep(state *scenarioState, args map[string]any) error {
	class, err := drawsteel.ParseClass(requiredString(args, "class"))
	if err != nil {
		return err
	}
	status, err := state.session.CreateHero(drawsteel.HeroConfig{
		Name:     requiredString(args, "name"),
		Class:    class,
		Subclass: optionalString(args, "subclass", ""),
		Level:    optionalInt(args, "level", drawsteel.MinLevel),
		XP:       optionalInt(args, "xp", 0),
	})
	if err != nil {
		return err
	}
	state.changed = true
	r.logf("hero %s: %s level %d, stamina %d", status.Name, status.Class, status.Level, status.Stamina.Max)
	return nil
}

var resourceSteps = map[string]heroStep{
	"damage":             amountMutation(func(s *session.Session, v int) (bool, session.Status) { return s.AdjustStamina(-v) }),
	"heal":               amountMutation(func(s *session.Session, v int) (bool, session.Status) { return s.AdjustStamina(v) }),
	"set_stamina":        amountMutation((*session.Session).SetStamina),
	"stamina_max":        amountMutation((*session.Session).SetStaminaMax),
	"temporary":          amountMutation((*session.Session).SetTemporaryStamina),
	"dying_threshold":    amountMutation((*session.Session).SetDyingThreshold),
	"recoveries":         amountMutation((*session.Session).AdjustRecoveries),
	"heroic":             amountMutation((*session.Session).AdjustHeroic),
	"award_xp":           amountMutation((*session.Session).AwardXP),
	"use_recovery":       bareMutation((*session.Session).UseRecovery),
	"restore_recoveries": bareMutation((*session.Session).RestoreRecoveries),
	"respite":            bareMutation((*session.Session).Respite),
	"level_up":           bareMutation((*session.Session).LevelUp),
	"toggle": func(state *scenarioState, args map[string]any) (bool, error) {
		condition, err := drawsteel.ParseCondition(requiredString(args, "condition"))
		if err != nil {
			return false, err
		}
		state.session.ToggleCondition(condition)
		return true, nil
	},
}

func amountMutation(apply func(*session.Session, int) (bool, session.Status)) heroStep {
	return func(state *scenarioState, args map[string]any) (bool, error) {
		amount, err := readAmount(args)
		if err != nil {
			return false, err
		}
		changed, _ := apply(state.session, amount)
		return changed, nil
	}
}

func bareMutation(apply func(*session.Session) (bool, session.Status)) heroStep {
	return func(state *scenarioState, _ map[string]any) (bool, error) {
		changed, _ := apply(state.session)
		return changed, nil
	}
}

func (r *Runner) runResourceStep(state *scenarioState, step Step) error {
	if !state.session.HasHero() {
		return apperrors.New(apperrors.CodeHeroNotActive, step.Kind+" requires a hero")
	}
	apply, ok := resourceSteps[step.Kind]
	if !ok {
		return r.failf("unknown resource step %q", step.Kind)
	}
	changed, err := apply(state, step.Args)
	if err != nil {
		return err
	}
	state.changed = changed
	status := state.session.Status()
	r.logf("  stamina %d/%d (%s), recoveries %d, heroic %d, xp %d",
		status.Stamina.Current, status.Stamina.Max, status.Stamina.Condition(),
		status.Recoveries.Current, status.Heroic.Current, status.XP)
	return nil
}

func (r *Runner) runPowerRollStep(state *scenarioState, args map[string]any) error {
	faces, err := readIntSlice(args, "dice")
	if err != nil {
		return err
	}
	if len(faces) != 0 && len(faces) != 2 {
		return r.failf("power roll needs two dice, got %d", len(faces))
	}

	edgeBane, err := domain.ParseEdgeBane(optionalString(args, "edge_bane", ""))
	if err != nil {
		return err
	}
	edges, hasEdges := readInt(args, "edges")
	banes, hasBanes := readInt(args, "banes")
	if edgeBane == domain.EdgeBaneUnspecified && (hasEdges || hasBanes) {
		edgeBane = domain.ComposeEdgeBane(edges, banes)
	}

	state.dice.push(faces...)
	roll := state.session.PowerRoll(domain.PowerRollRequest{
		Modifier: optionalInt(args, "modifier", 0),
		EdgeBane: edgeBane,
		Label:    optionalString(args, "label", ""),
	})
	state.roll = &roll
	state.changed = true
	r.logf("  power roll %v %+d (%s): %d tier %d", roll.Dice, roll.Modifier, roll.EdgeBane, roll.FinalTotal, roll.FinalTier)
	return nil
}

func (r *Runner) runDieRollStep(state *scenarioState, args map[string]any) error {
	faces, err := readIntSlice(args, "dice")
	if err != nil {
		return err
	}
	if len(faces) > 1 {
		return r.failf("die roll takes one face, got %d", len(faces))
	}
	sides, _ := readInt(args, "sides")
	state.dice.push(faces...)
	roll, err := state.session.RollDie(domain.DieRollRequest{
		Sides:    sides,
		Modifier: optionalInt(args, "modifier", 0),
		Label:    optionalString(args, "label", ""),
	})
	if err != nil {
		state.dice.queue = nil
		return err
	}
	state.roll = &roll
	state.changed = true
	r.logf("  d%d roll %v %+d: %d", roll.Sides, roll.Dice, roll.Modifier, roll.FinalTotal)
	return nil
}

func (r *Runner) runSkillStep(state *scenarioState, step Step) error {
	args := step.Args
	skillID := requiredString(args, "skill")
	section := requiredString(args, "section")
	needsSkill := step.Kind == "grant_skill" || step.Kind == "select_skill" || step.Kind == "release_skill"
	if needsSkill && skillID == "" {
		return apperrors.New(apperrors.CodeSkillIDEmpty, "skill id is required")
	}

	switch step.Kind {
	case "grant_skill":
		kind, err := skills.ParseSourceKind(requiredString(args, "source"))
		if err != nil {
			return err
		}
		if !kind.Granted() {
			return apperrors.WithMetadata(
				apperrors.CodeSkillUnknownSource,
				fmt.Sprintf("%s is not a granting source", kind),
				map[string]string{"Source": kind.String()},
			)
		}
		state.changed, _ = state.session.GrantSkill(skillID, kind, section)
	case "select_skill":
		state.changed, _ = state.session.SelectSkill(skillID, section)
	case "release_skill":
		state.changed, _ = state.session.ReleaseSkill(skillID, section)
	case "clear_section":
		state.removed, _ = state.session.ClearSkillSection(section)
		state.changed = state.removed > 0
	case "clear_source":
		kind, err := skills.ParseSourceKind(requiredString(args, "source"))
		if err != nil {
			return err
		}
		state.removed, _ = state.session.ClearSkillSource(kind)
		state.changed = state.removed > 0
	case "reset_skills":
		state.session.ResetSkills()
		state.changed = true
	}
	r.logf("  unavailable skills: %s", strings.Join(state.session.Skills().Unavailable, ", "))
	return nil
}
