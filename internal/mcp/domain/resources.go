package domain

import (
	"context"

	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// heroMutation builds a handler that requires an active hero and reports the
// snapshot after apply runs.
func heroMutation[I any](env Env, tool string, apply func(I) (bool, session.Status, error)) mcp.ToolHandlerFor[I, HeroResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input I) (*mcp.CallToolResult, HeroResult, error) {
		_, span := env.start(ctx, tool)
		defer span.End()

		if err := env.requireHero(); err != nil {
			return nil, HeroResult{}, env.fail(span, tool, err)
		}
		changed, status, err := apply(input)
		if err != nil {
			return nil, HeroResult{}, env.fail(span, tool, err)
		}
		return nil, env.heroResult(changed, status), nil
	}
}

// AmountInput is the input of tools that take one signed amount.
type AmountInput struct {
	Amount int `json:"amount" jsonschema:"signed amount; negative values reduce, positive values increase"`
}

// ValueInput is the input of tools that replace one value.
type ValueInput struct {
	Value int `json:"value" jsonschema:"new value"`
}

// EmptyInput is the input of tools without arguments.
type EmptyInput struct{}

// StaminaAdjustTool defines the MCP tool schema for damage and healing.
func StaminaAdjustTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stamina_adjust",
		Description: "Applies damage (negative amount) or healing (positive amount). Healing never exceeds max stamina; damage stops at the death threshold.",
	}
}

// StaminaAdjustHandler executes a stamina adjust request.
func StaminaAdjustHandler(env Env) mcp.ToolHandlerFor[AmountInput, HeroResult] {
	return heroMutation(env, "stamina_adjust", func(in AmountInput) (bool, session.Status, error) {
		changed, status := env.Session.AdjustStamina(in.Amount)
		return changed, status, nil
	})
}

// StaminaSetTool defines the MCP tool schema for replacing current stamina.
func StaminaSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stamina_set",
		Description: "Sets current stamina, clamped between the death threshold and max plus temporary stamina.",
	}
}

// StaminaSetHandler executes a stamina set request.
func StaminaSetHandler(env Env) mcp.ToolHandlerFor[ValueInput, HeroResult] {
	return heroMutation(env, "stamina_set", func(in ValueInput) (bool, session.Status, error) {
		changed, status := env.Session.SetStamina(in.Value)
		return changed, status, nil
	})
}

// StaminaMaxTool defines the MCP tool schema for replacing max stamina.
func StaminaMaxTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stamina_max_set",
		Description: "Sets max stamina. Values below 1 are ignored.",
	}
}

// StaminaMaxHandler executes a max stamina request.
func StaminaMaxHandler(env Env) mcp.ToolHandlerFor[ValueInput, HeroResult] {
	return heroMutation(env, "stamina_max_set", func(in ValueInput) (bool, session.Status, error) {
		changed, status := env.Session.SetStaminaMax(in.Value)
		return changed, status, nil
	})
}

// StaminaTemporaryTool defines the MCP tool schema for temporary stamina.
func StaminaTemporaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stamina_temporary",
		Description: "Sets temporary stamina. Negative values are ignored.",
	}
}

// StaminaTemporaryHandler executes a temporary stamina request.
func StaminaTemporaryHandler(env Env) mcp.ToolHandlerFor[ValueInput, HeroResult] {
	return heroMutation(env, "stamina_temporary", func(in ValueInput) (bool, session.Status, error) {
		changed, status := env.Session.SetTemporaryStamina(in.Value)
		return changed, status, nil
	})
}

// DyingThresholdTool defines the MCP tool schema for the dying threshold.
func DyingThresholdTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dying_threshold_set",
		Description: "Sets the stamina at or below which the hero is dying.",
	}
}

// DyingThresholdHandler executes a dying threshold request.
func DyingThresholdHandler(env Env) mcp.ToolHandlerFor[ValueInput, HeroResult] {
	return heroMutation(env, "dying_threshold_set", func(in ValueInput) (bool, session.Status, error) {
		changed, status := env.Session.SetDyingThreshold(in.Value)
		return changed, status, nil
	})
}

// ConditionToggleInput represents the MCP tool input for toggling a condition.
type ConditionToggleInput struct {
	Condition string `json:"condition" jsonschema:"condition to toggle (winded or dying)"`
}

// ConditionToggleTool defines the MCP tool schema for manual conditions.
func ConditionToggleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "condition_toggle",
		Description: "Flips the manual winded or dying flag. A manual flag adds to the derived condition and never hides it.",
	}
}

// ConditionToggleHandler executes a condition toggle request.
func ConditionToggleHandler(env Env) mcp.ToolHandlerFor[ConditionToggleInput, HeroResult] {
	return heroMutation(env, "condition_toggle", func(in ConditionToggleInput) (bool, session.Status, error) {
		condition, err := drawsteel.ParseCondition(in.Condition)
		if err != nil {
			return false, session.Status{}, err
		}
		return true, env.Session.ToggleCondition(condition), nil
	})
}

// RecoveryUseTool defines the MCP tool schema for spending a recovery.
func RecoveryUseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "recovery_use",
		Description: "Spends one recovery to regain its value in stamina, capped at max stamina. Does nothing without recoveries.",
	}
}

// RecoveryUseHandler executes a recovery use request.
func RecoveryUseHandler(env Env) mcp.ToolHandlerFor[EmptyInput, HeroResult] {
	return heroMutation(env, "recovery_use", func(EmptyInput) (bool, session.Status, error) {
		changed, status := env.Session.UseRecovery()
		return changed, status, nil
	})
}

// RecoveriesAdjustTool defines the MCP tool schema for adjusting recoveries.
func RecoveriesAdjustTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "recoveries_adjust",
		Description: "Changes remaining recoveries, clamped between zero and max.",
	}
}

// RecoveriesAdjustHandler executes a recoveries adjust request.
func RecoveriesAdjustHandler(env Env) mcp.ToolHandlerFor[AmountInput, HeroResult] {
	return heroMutation(env, "recoveries_adjust", func(in AmountInput) (bool, session.Status, error) {
		changed, status := env.Session.AdjustRecoveries(in.Amount)
		return changed, status, nil
	})
}

// RecoveriesRestoreTool defines the MCP tool schema for refilling recoveries.
func RecoveriesRestoreTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "recoveries_restore",
		Description: "Refills recoveries to max.",
	}
}

// RecoveriesRestoreHandler executes a recoveries restore request.
func RecoveriesRestoreHandler(env Env) mcp.ToolHandlerFor[EmptyInput, HeroResult] {
	return heroMutation(env, "recoveries_restore", func(EmptyInput) (bool, session.Status, error) {
		changed, status := env.Session.RestoreRecoveries()
		return changed, status, nil
	})
}

// RespiteTool defines the MCP tool schema for a respite.
func RespiteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "respite",
		Description: "Restores every recovery and resets the heroic resource to zero.",
	}
}

// RespiteHandler executes a respite request.
func RespiteHandler(env Env) mcp.ToolHandlerFor[EmptyInput, HeroResult] {
	return heroMutation(env, "respite", func(EmptyInput) (bool, session.Status, error) {
		changed, status := env.Session.Respite()
		return changed, status, nil
	})
}

// HeroicAdjustTool defines the MCP tool schema for the heroic resource.
func HeroicAdjustTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "heroic_adjust",
		Description: "Changes the class heroic resource, clamped between the class floor and the ceiling.",
	}
}

// HeroicAdjustHandler executes a heroic resource adjust request.
func HeroicAdjustHandler(env Env) mcp.ToolHandlerFor[AmountInput, HeroResult] {
	return heroMutation(env, "heroic_adjust", func(in AmountInput) (bool, session.Status, error) {
		changed, status := env.Session.AdjustHeroic(in.Amount)
		return changed, status, nil
	})
}

// XPAwardTool defines the MCP tool schema for awarding experience.
func XPAwardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "xp_award",
		Description: "Adds experience. Non-positive amounts are ignored.",
	}
}

// XPAwardHandler executes an XP award request.
func XPAwardHandler(env Env) mcp.ToolHandlerFor[AmountInput, HeroResult] {
	return heroMutation(env, "xp_award", func(in AmountInput) (bool, session.Status, error) {
		changed, status := env.Session.AwardXP(in.Amount)
		return changed, status, nil
	})
}

// LevelUpTool defines the MCP tool schema for advancing a level.
func LevelUpTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "level_up",
		Description: "Advances the hero one level, recomputes stamina and recoveries, and fully restores both. Does nothing at level 10.",
	}
}

// LevelUpHandler executes a level up request.
func LevelUpHandler(env Env) mcp.ToolHandlerFor[EmptyInput, HeroResult] {
	return heroMutation(env, "level_up", func(EmptyInput) (bool, session.Status, error) {
		changed, status := env.Session.LevelUp()
		return changed, status, nil
	})
}
