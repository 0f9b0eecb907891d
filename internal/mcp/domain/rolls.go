package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	rollsdomain "github.com/louisbranch/herosheet/internal/systems/drawsteel/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

// RollResult represents one resolved roll.
type RollResult struct {
	ID             string `json:"id" jsonschema:"roll identifier"`
	Kind           string `json:"kind" jsonschema:"roll kind (power or die)"`
	Sides          int    `json:"sides" jsonschema:"die size"`
	Dice           []int  `json:"dice" jsonschema:"individual die faces"`
	RawTotal       int    `json:"raw_total" jsonschema:"sum of the dice"`
	Modifier       int    `json:"modifier" jsonschema:"modifier applied to the total"`
	FinalTotal     int    `json:"final_total" jsonschema:"raw total plus modifier and edge/bane bonus"`
	BaseTier       int    `json:"base_tier,omitempty" jsonschema:"tier of the final total before shifting"`
	TierAdjustment int    `json:"tier_adjustment,omitempty" jsonschema:"tier shift from a double edge or double bane"`
	FinalTier      int    `json:"final_tier,omitempty" jsonschema:"tier after shifting (1-3)"`
	EdgeBane       string `json:"edge_bane" jsonschema:"edge/bane state applied"`
	Critical       bool   `json:"critical" jsonschema:"whether the dice show a natural 19 or 20"`
	Label          string `json:"label,omitempty" jsonschema:"optional roll label"`
	Timestamp      string `json:"timestamp" jsonschema:"RFC3339 timestamp of the roll"`
	Summary        string `json:"summary" jsonschema:"localized one-line summary"`
}

func (e Env) rollResult(roll rollsdomain.DiceRoll) RollResult {
	return RollResult{
		ID:             roll.ID,
		Kind:           roll.Kind.String(),
		Sides:          roll.Sides,
		Dice:           roll.Dice,
		RawTotal:       roll.RawTotal,
		Modifier:       roll.Modifier,
		FinalTotal:     roll.FinalTotal,
		BaseTier:       roll.BaseTier,
		TierAdjustment: roll.TierAdjustment,
		FinalTier:      roll.FinalTier,
		EdgeBane:       roll.EdgeBane.String(),
		Critical:       roll.Critical,
		Label:          roll.Label,
		Timestamp:      roll.Timestamp.UTC().Format(time.RFC3339),
		Summary:        e.rollSummary(roll),
	}
}

func (e Env) rollSummary(roll rollsdomain.DiceRoll) string {
	p := e.printer()
	label := roll.Label
	if roll.Kind == rollsdomain.RollKindDie {
		if label == "" {
			label = p.Sprintf("roll.kind.die", roll.Sides)
		}
		return p.Sprintf("roll.summary.die", label, roll.FinalTotal)
	}
	if label == "" {
		label = p.Sprintf("roll.kind.power")
	}
	summary := p.Sprintf("roll.summary.power", label, roll.FinalTotal,
		p.Sprintf("edge_bane."+roll.EdgeBane.String()), p.Sprintf("roll.tier", roll.FinalTier))
	if roll.Critical {
		summary += fmt.Sprintf(" (%s)", p.Sprintf("roll.critical"))
	}
	return summary
}

// PowerRollInput represents the MCP tool input for a power roll.
type PowerRollInput struct {
	Modifier int    `json:"modifier,omitempty" jsonschema:"characteristic or other modifier added to the total"`
	EdgeBane string `json:"edge_bane,omitempty" jsonschema:"edge/bane state (normal, edge, bane, double_edge, double_bane); defaults to the session state"`
	Edges    *int   `json:"edges,omitempty" jsonschema:"number of edges; combined with banes when edge_bane is omitted"`
	Banes    *int   `json:"banes,omitempty" jsonschema:"number of banes; combined with edges when edge_bane is omitted"`
	Label    string `json:"label,omitempty" jsonschema:"optional roll label"`
}

// PowerRollTool defines the MCP tool schema for a power roll.
func PowerRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "power_roll",
		Description: "Rolls 2d10 plus modifier, applies edge or bane, resolves the tier (1: 11 or less, 2: 12-16, 3: 17+) and records the roll.",
	}
}

// PowerRollHandler executes a power roll request.
func PowerRollHandler(env Env) mcp.ToolHandlerFor[PowerRollInput, RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PowerRollInput) (*mcp.CallToolResult, RollResult, error) {
		_, span := env.start(ctx, "power_roll")
		defer span.End()

		state, err := rollsdomain.ParseEdgeBane(input.EdgeBane)
		if err != nil {
			return nil, RollResult{}, env.fail(span, "power_roll", err)
		}
		if state == rollsdomain.EdgeBaneUnspecified && (input.Edges != nil || input.Banes != nil) {
			state = rollsdomain.ComposeEdgeBane(intOrZero(input.Edges), intOrZero(input.Banes))
		}
		roll := env.Session.PowerRoll(rollsdomain.PowerRollRequest{
			Modifier: input.Modifier,
			EdgeBane: state,
			Label:    strings.TrimSpace(input.Label),
		})
		span.SetAttributes(attribute.Int("roll.final_tier", roll.FinalTier))
		return nil, env.rollResult(roll), nil
	}
}

func intOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

// DieRollInput represents the MCP tool input for a single-die roll.
type DieRollInput struct {
	Sides    int    `json:"sides" jsonschema:"die size, at least 2"`
	Modifier int    `json:"modifier,omitempty" jsonschema:"modifier added to the face"`
	Label    string `json:"label,omitempty" jsonschema:"optional roll label"`
}

// DieRollTool defines the MCP tool schema for a single-die roll.
func DieRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "die_roll",
		Description: "Rolls one die with no tiering and records the roll. Edge and bane do not apply.",
	}
}

// DieRollHandler executes a single-die roll request.
func DieRollHandler(env Env) mcp.ToolHandlerFor[DieRollInput, RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DieRollInput) (*mcp.CallToolResult, RollResult, error) {
		_, span := env.start(ctx, "die_roll")
		defer span.End()

		roll, err := env.Session.RollDie(rollsdomain.DieRollRequest{
			Sides:    input.Sides,
			Modifier: input.Modifier,
			Label:    strings.TrimSpace(input.Label),
		})
		if err != nil {
			return nil, RollResult{}, env.fail(span, "die_roll", err)
		}
		return nil, env.rollResult(roll), nil
	}
}

// EdgeBaneResult represents the session edge/bane state.
type EdgeBaneResult struct {
	EdgeBane string `json:"edge_bane" jsonschema:"edge/bane state applied to power rolls by default"`
	Label    string `json:"label" jsonschema:"localized label"`
}

func (e Env) edgeBaneResult(state rollsdomain.EdgeBane) EdgeBaneResult {
	return EdgeBaneResult{
		EdgeBane: state.String(),
		Label:    e.printer().Sprintf("edge_bane." + state.String()),
	}
}

// EdgeBaneSetInput represents the MCP tool input for setting edge/bane.
type EdgeBaneSetInput struct {
	EdgeBane string `json:"edge_bane" jsonschema:"edge/bane state (normal, edge, bane, double_edge, double_bane)"`
}

// EdgeBaneSetTool defines the MCP tool schema for setting edge/bane.
func EdgeBaneSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "edge_bane_set",
		Description: "Sets the edge/bane state applied to power rolls that do not name one.",
	}
}

// EdgeBaneSetHandler executes an edge/bane set request.
func EdgeBaneSetHandler(env Env) mcp.ToolHandlerFor[EdgeBaneSetInput, EdgeBaneResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EdgeBaneSetInput) (*mcp.CallToolResult, EdgeBaneResult, error) {
		_, span := env.start(ctx, "edge_bane_set")
		defer span.End()

		state, err := rollsdomain.ParseEdgeBane(input.EdgeBane)
		if err != nil {
			return nil, EdgeBaneResult{}, env.fail(span, "edge_bane_set", err)
		}
		env.Session.SetEdgeBane(state)
		return nil, env.edgeBaneResult(env.Session.EdgeBane()), nil
	}
}

// EdgeBaneCycleTool defines the MCP tool schema for cycling edge/bane.
func EdgeBaneCycleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "edge_bane_cycle",
		Description: "Advances the session edge/bane state: normal, edge, bane, double edge, double bane, normal.",
	}
}

// EdgeBaneCycleHandler executes an edge/bane cycle request.
func EdgeBaneCycleHandler(env Env) mcp.ToolHandlerFor[EmptyInput, EdgeBaneResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, EdgeBaneResult, error) {
		_, span := env.start(ctx, "edge_bane_cycle")
		defer span.End()

		return nil, env.edgeBaneResult(env.Session.CycleEdgeBane()), nil
	}
}

// RollHistoryResult represents the retained rolls.
type RollHistoryResult struct {
	Rolls []RollResult `json:"rolls" jsonschema:"retained rolls, newest first"`
}

// RollHistoryTool defines the MCP tool schema for reading roll history.
func RollHistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_history",
		Description: "Returns up to the last 50 rolls, newest first.",
	}
}

// RollHistoryHandler executes a roll history request.
func RollHistoryHandler(env Env) mcp.ToolHandlerFor[EmptyInput, RollHistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, RollHistoryResult, error) {
		_, span := env.start(ctx, "roll_history")
		defer span.End()

		history := env.Session.RollHistory()
		result := RollHistoryResult{Rolls: make([]RollResult, 0, len(history))}
		for _, roll := range history {
			result.Rolls = append(result.Rolls, env.rollResult(roll))
		}
		return nil, result, nil
	}
}

// RollHistoryClearTool defines the MCP tool schema for clearing roll history.
func RollHistoryClearTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_history_clear",
		Description: "Discards every retained roll.",
	}
}

// RollHistoryClearHandler executes a roll history clear request.
func RollHistoryClearHandler(env Env) mcp.ToolHandlerFor[EmptyInput, RollHistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, RollHistoryResult, error) {
		_, span := env.start(ctx, "roll_history_clear")
		defer span.End()

		env.Session.ClearRollHistory()
		return nil, RollHistoryResult{Rolls: []RollResult{}}, nil
	}
}
