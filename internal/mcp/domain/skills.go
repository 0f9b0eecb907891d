package domain

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SkillEntry is one registry entry.
type SkillEntry struct {
	SkillID string `json:"skill_id" jsonschema:"skill identifier"`
	Source  string `json:"source" jsonschema:"source kind"`
	Section string `json:"section" jsonschema:"section that owns the entry"`
}

// SkillStatusResult is a snapshot of the skill registry.
type SkillStatusResult struct {
	Changed     bool         `json:"changed" jsonschema:"whether the operation changed the registry"`
	Removed     int          `json:"removed,omitempty" jsonschema:"entries removed by a clear"`
	Granted     []SkillEntry `json:"granted" jsonschema:"skills granted by ancestry, culture, career, class, kit or complication"`
	Selected    []SkillEntry `json:"selected" jsonschema:"skills chosen by the user"`
	Unavailable []string     `json:"unavailable" jsonschema:"sorted skill ids that cannot be chosen again"`
}

func skillEntries(sources []skills.Source) []SkillEntry {
	entries := make([]SkillEntry, 0, len(sources))
	for _, source := range sources {
		entries = append(entries, SkillEntry{
			SkillID: source.SkillID,
			Source:  source.Kind.String(),
			Section: source.Section,
		})
	}
	return entries
}

func skillStatusResult(changed bool, removed int, status session.SkillStatus) SkillStatusResult {
	unavailable := status.Unavailable
	if unavailable == nil {
		unavailable = []string{}
	}
	return SkillStatusResult{
		Changed:     changed,
		Removed:     removed,
		Granted:     skillEntries(status.Granted),
		Selected:    skillEntries(status.Selected),
		Unavailable: unavailable,
	}
}

func parseGrantingKind(value string) (skills.SourceKind, error) {
	kind, err := skills.ParseSourceKind(value)
	if err != nil {
		return 0, err
	}
	if !kind.Granted() {
		return 0, apperrors.WithMetadata(
			apperrors.CodeSkillUnknownSource,
			fmt.Sprintf("source %q does not grant skills", value),
			map[string]string{"Source": value},
		)
	}
	return kind, nil
}

// SkillGrantInput represents the MCP tool input for granting a skill.
type SkillGrantInput struct {
	SkillID string `json:"skill_id" jsonschema:"skill identifier"`
	Source  string `json:"source" jsonschema:"granting source (ancestry, culture, career, class, kit, complication)"`
	Section string `json:"section" jsonschema:"section that grants the skill"`
}

// SkillGrantTool defines the MCP tool schema for granting a skill.
func SkillGrantTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_grant",
		Description: "Records a skill granted by a section. Granting the same skill from the same section twice is a no-op.",
	}
}

// SkillGrantHandler executes a skill grant request.
func SkillGrantHandler(env Env) mcp.ToolHandlerFor[SkillGrantInput, SkillStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SkillGrantInput) (*mcp.CallToolResult, SkillStatusResult, error) {
		_, span := env.start(ctx, "skill_grant")
		defer span.End()

		skillID, err := requireSkillID(input.SkillID)
		if err != nil {
			return nil, SkillStatusResult{}, env.fail(span, "skill_grant", err)
		}
		kind, err := parseGrantingKind(input.Source)
		if err != nil {
			return nil, SkillStatusResult{}, env.fail(span, "skill_grant", err)
		}
		changed, status := env.Session.GrantSkill(skillID, kind, strings.TrimSpace(input.Section))
		return nil, skillStatusResult(changed, 0, status), nil
	}
}

// SkillChoiceInput represents the MCP tool input for selecting or releasing
// a skill.
type SkillChoiceInput struct {
	SkillID string `json:"skill_id" jsonschema:"skill identifier"`
	Section string `json:"section" jsonschema:"section where the choice is made"`
}

// SkillSelectTool defines the MCP tool schema for choosing a skill.
func SkillSelectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_select",
		Description: "Records a user skill choice. Rejected (changed=false) when the skill is already chosen in any section.",
	}
}

// SkillSelectHandler executes a skill select request.
func SkillSelectHandler(env Env) mcp.ToolHandlerFor[SkillChoiceInput, SkillStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SkillChoiceInput) (*mcp.CallToolResult, SkillStatusResult, error) {
		_, span := env.start(ctx, "skill_select")
		defer span.End()

		skillID, err := requireSkillID(input.SkillID)
		if err != nil {
			return nil, SkillStatusResult{}, env.fail(span, "skill_select", err)
		}
		changed, status := env.Session.SelectSkill(skillID, strings.TrimSpace(input.Section))
		return nil, skillStatusResult(changed, 0, status), nil
	}
}

// SkillReleaseTool defines the MCP tool schema for releasing a choice.
func SkillReleaseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_release",
		Description: "Removes a user skill choice made in the given section.",
	}
}

// SkillReleaseHandler executes a skill release request.
func SkillReleaseHandler(env Env) mcp.ToolHandlerFor[SkillChoiceInput, SkillStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SkillChoiceInput) (*mcp.CallToolResult, SkillStatusResult, error) {
		_, span := env.start(ctx, "skill_release")
		defer span.End()

		skillID, err := requireSkillID(input.SkillID)
		if err != nil {
			return nil, SkillStatusResult{}, env.fail(span, "skill_release", err)
		}
		changed, status := env.Session.ReleaseSkill(skillID, strings.TrimSpace(input.Section))
		return nil, skillStatusResult(changed, 0, status), nil
	}
}

// SkillClearSectionInput represents the MCP tool input for clearing a section.
type SkillClearSectionInput struct {
	Section string `json:"section" jsonschema:"section to clear"`
}

// SkillClearSectionTool defines the MCP tool schema for clearing a section.
func SkillClearSectionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_clear_section",
		Description: "Removes every granted and selected entry owned by a section.",
	}
}

// SkillClearSectionHandler executes a section clear request.
func SkillClearSectionHandler(env Env) mcp.ToolHandlerFor[SkillClearSectionInput, SkillStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SkillClearSectionInput) (*mcp.CallToolResult, SkillStatusResult, error) {
		_, span := env.start(ctx, "skill_clear_section")
		defer span.End()

		removed, status := env.Session.ClearSkillSection(strings.TrimSpace(input.Section))
		return nil, skillStatusResult(removed > 0, removed, status), nil
	}
}

// SkillClearSourceInput represents the MCP tool input for clearing a source.
type SkillClearSourceInput struct {
	Source string `json:"source" jsonschema:"source kind to clear (ancestry, culture, career, class, kit, complication, user_selected)"`
}

// SkillClearSourceTool defines the MCP tool schema for clearing a source.
func SkillClearSourceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_clear_source",
		Description: "Removes every entry of a source kind across all sections.",
	}
}

// SkillClearSourceHandler executes a source clear request.
func SkillClearSourceHandler(env Env) mcp.ToolHandlerFor[SkillClearSourceInput, SkillStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SkillClearSourceInput) (*mcp.CallToolResult, SkillStatusResult, error) {
		_, span := env.start(ctx, "skill_clear_source")
		defer span.End()

		kind, err := skills.ParseSourceKind(input.Source)
		if err != nil {
			return nil, SkillStatusResult{}, env.fail(span, "skill_clear_source", err)
		}
		removed, status := env.Session.ClearSkillSource(kind)
		return nil, skillStatusResult(removed > 0, removed, status), nil
	}
}

// SkillResetTool defines the MCP tool schema for emptying the registry.
func SkillResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_reset",
		Description: "Empties the skill registry.",
	}
}

// SkillResetHandler executes a skill reset request.
func SkillResetHandler(env Env) mcp.ToolHandlerFor[EmptyInput, SkillStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, SkillStatusResult, error) {
		_, span := env.start(ctx, "skill_reset")
		defer span.End()

		return nil, skillStatusResult(true, 0, env.Session.ResetSkills()), nil
	}
}

// SkillStatusTool defines the MCP tool schema for reading the registry.
func SkillStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_status",
		Description: "Returns granted and selected skills and the sorted unavailable set.",
	}
}

// SkillStatusHandler executes a skill status request.
func SkillStatusHandler(env Env) mcp.ToolHandlerFor[EmptyInput, SkillStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, SkillStatusResult, error) {
		_, span := env.start(ctx, "skill_status")
		defer span.End()

		return nil, skillStatusResult(false, 0, env.Session.Skills()), nil
	}
}

// SkillSourceInput represents the MCP tool input for looking up a skill.
type SkillSourceInput struct {
	SkillID string `json:"skill_id" jsonschema:"skill identifier"`
}

// SkillSourceResult represents the entry that holds a skill.
type SkillSourceResult struct {
	Available bool        `json:"available" jsonschema:"whether the skill can still be chosen"`
	Entry     *SkillEntry `json:"entry,omitempty" jsonschema:"entry holding the skill, granted entries first"`
}

// SkillSourceTool defines the MCP tool schema for looking up a skill.
func SkillSourceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "skill_source",
		Description: "Reports whether a skill is available and, when it is not, which entry holds it.",
	}
}

// SkillSourceHandler executes a skill source request.
func SkillSourceHandler(env Env) mcp.ToolHandlerFor[SkillSourceInput, SkillSourceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SkillSourceInput) (*mcp.CallToolResult, SkillSourceResult, error) {
		_, span := env.start(ctx, "skill_source")
		defer span.End()

		skillID, err := requireSkillID(input.SkillID)
		if err != nil {
			return nil, SkillSourceResult{}, env.fail(span, "skill_source", err)
		}
		source, ok := env.Session.SkillSource(skillID)
		if !ok {
			return nil, SkillSourceResult{Available: true}, nil
		}
		entries := skillEntries([]skills.Source{source})
		return nil, SkillSourceResult{Entry: &entries[0]}, nil
	}
}
