package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StaminaResult is the stamina part of a hero snapshot.
type StaminaResult struct {
	Current         int  `json:"current" jsonschema:"current stamina, may be negative"`
	Max             int  `json:"max" jsonschema:"maximum stamina"`
	Temporary       int  `json:"temporary" jsonschema:"temporary stamina above max"`
	WindedThreshold int  `json:"winded_threshold" jsonschema:"stamina at or below which the hero is winded"`
	DyingThreshold  int  `json:"dying_threshold" jsonschema:"stamina at or below which the hero is dying"`
	DeathThreshold  int  `json:"death_threshold" jsonschema:"stamina at or below which the hero is dead"`
	WindedOverride  bool `json:"winded_override" jsonschema:"manual winded flag"`
	DyingOverride   bool `json:"dying_override" jsonschema:"manual dying flag"`
	Winded          bool `json:"winded" jsonschema:"whether the hero is winded"`
	Dying           bool `json:"dying" jsonschema:"whether the hero is dying"`
	Dead            bool `json:"dead" jsonschema:"whether the hero is dead"`
}

// RecoveriesResult is the recoveries part of a hero snapshot.
type RecoveriesResult struct {
	Current int `json:"current" jsonschema:"remaining recoveries"`
	Max     int `json:"max" jsonschema:"maximum recoveries"`
	Value   int `json:"value" jsonschema:"stamina regained per recovery"`
}

// HeroicResult is the heroic resource part of a hero snapshot.
type HeroicResult struct {
	Name           string `json:"name" jsonschema:"class resource name"`
	Abbreviation   string `json:"abbreviation" jsonschema:"three letter abbreviation"`
	ColorToken     string `json:"color_token" jsonschema:"display color token"`
	Characteristic string `json:"characteristic" jsonschema:"class primary characteristic"`
	Current        int    `json:"current" jsonschema:"current amount"`
	Min            int    `json:"min" jsonschema:"class floor"`
	Max            int    `json:"max" jsonschema:"ceiling"`
}

// HeroStatusResult is a full hero snapshot.
type HeroStatusResult struct {
	ID              string           `json:"id" jsonschema:"hero identifier"`
	Name            string           `json:"name" jsonschema:"hero name"`
	Class           string           `json:"class" jsonschema:"hero class"`
	Subclass        string           `json:"subclass,omitempty" jsonschema:"hero subclass"`
	Level           int              `json:"level" jsonschema:"hero level (1-10)"`
	XP              int              `json:"xp" jsonschema:"total experience"`
	XPToNextLevel   int              `json:"xp_to_next_level" jsonschema:"experience needed for the next level"`
	ProgressPercent int              `json:"progress_percent" jsonschema:"progress toward the next level (0-100)"`
	CanLevelUp      bool             `json:"can_level_up" jsonschema:"whether experience allows a level up"`
	Condition       string           `json:"condition" jsonschema:"most severe stamina condition (healthy, winded, dying, dead)"`
	Stamina         StaminaResult    `json:"stamina" jsonschema:"stamina state"`
	Recoveries      RecoveriesResult `json:"recoveries" jsonschema:"recoveries state"`
	Heroic          HeroicResult     `json:"heroic" jsonschema:"heroic resource state"`
}

// HeroResult is the output of every hero read or mutation tool.
type HeroResult struct {
	Changed bool             `json:"changed" jsonschema:"whether the operation changed hero state"`
	Summary string           `json:"summary" jsonschema:"localized one-line summary"`
	Hero    HeroStatusResult `json:"hero" jsonschema:"hero snapshot after the operation"`
}

func (e Env) heroResult(changed bool, status session.Status) HeroResult {
	p := e.printer()
	condition := status.Stamina.Condition()
	summary := strings.Join([]string{
		status.Name,
		p.Sprintf("stamina.summary", status.Stamina.Current, status.Stamina.Max, p.Sprintf("stamina.status."+condition)),
		p.Sprintf("level.summary", status.Level, status.XP, status.ProgressPercent),
	}, " | ")
	return HeroResult{
		Changed: changed,
		Summary: summary,
		Hero: HeroStatusResult{
			ID:              status.ID,
			Name:            status.Name,
			Class:           string(status.Class),
			Subclass:        status.Subclass,
			Level:           status.Level,
			XP:              status.XP,
			XPToNextLevel:   status.XPToNextLevel,
			ProgressPercent: status.ProgressPercent,
			CanLevelUp:      status.CanLevelUp,
			Condition:       condition,
			Stamina: StaminaResult{
				Current:         status.Stamina.Current,
				Max:             status.Stamina.Max,
				Temporary:       status.Stamina.Temporary,
				WindedThreshold: status.Stamina.WindedThreshold,
				DyingThreshold:  status.Stamina.DyingThreshold,
				DeathThreshold:  status.Stamina.DeathThreshold,
				WindedOverride:  status.Stamina.WindedOverride,
				DyingOverride:   status.Stamina.DyingOverride,
				Winded:          status.Stamina.Winded,
				Dying:           status.Stamina.Dying,
				Dead:            status.Stamina.Dead,
			},
			Recoveries: RecoveriesResult{
				Current: status.Recoveries.Current,
				Max:     status.Recoveries.Max,
				Value:   status.Recoveries.Value,
			},
			Heroic: HeroicResult{
				Name:           status.Heroic.Name,
				Abbreviation:   status.Heroic.Abbreviation,
				ColorToken:     status.Heroic.ColorToken,
				Characteristic: string(status.Heroic.Characteristic),
				Current:        status.Heroic.Current,
				Min:            status.Heroic.Min,
				Max:            status.Heroic.Max,
			},
		},
	}
}

// HeroCreateInput represents the MCP tool input for creating a hero.
type HeroCreateInput struct {
	Name     string `json:"name" jsonschema:"hero name"`
	Class    string `json:"class" jsonschema:"hero class (censor, conduit, elementalist, fury, null, shadow, tactician, talent, troubadour, summoner)"`
	Subclass string `json:"subclass,omitempty" jsonschema:"optional subclass"`
	Level    int    `json:"level,omitempty" jsonschema:"starting level, defaults to 1"`
	XP       int    `json:"xp,omitempty" jsonschema:"starting experience"`
}

// HeroCreateTool defines the MCP tool schema for creating a hero.
func HeroCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hero_create",
		Description: "Creates a hero at full stamina and recoveries and makes it the active hero. Resets the skill registry.",
	}
}

// HeroCreateHandler executes a hero create request.
func HeroCreateHandler(env Env) mcp.ToolHandlerFor[HeroCreateInput, HeroResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HeroCreateInput) (*mcp.CallToolResult, HeroResult, error) {
		_, span := env.start(ctx, "hero_create")
		defer span.End()

		class, err := drawsteel.ParseClass(input.Class)
		if err != nil {
			return nil, HeroResult{}, env.fail(span, "hero_create", err)
		}
		status, err := env.Session.CreateHero(drawsteel.HeroConfig{
			Name:     input.Name,
			Class:    class,
			Subclass: input.Subclass,
			Level:    input.Level,
			XP:       input.XP,
		})
		if err != nil {
			return nil, HeroResult{}, env.fail(span, "hero_create", err)
		}
		return nil, env.heroResult(true, status), nil
	}
}

// HeroStatusInput represents the MCP tool input for reading the hero.
type HeroStatusInput struct{}

// HeroStatusTool defines the MCP tool schema for reading the active hero.
func HeroStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hero_status",
		Description: "Returns the active hero with derived stamina conditions and level progress.",
	}
}

// HeroStatusHandler executes a hero status request.
func HeroStatusHandler(env Env) mcp.ToolHandlerFor[HeroStatusInput, HeroResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HeroStatusInput) (*mcp.CallToolResult, HeroResult, error) {
		_, span := env.start(ctx, "hero_status")
		defer span.End()

		if err := env.requireHero(); err != nil {
			return nil, HeroResult{}, env.fail(span, "hero_status", err)
		}
		return nil, env.heroResult(false, env.Session.Status()), nil
	}
}

// HeroSaveInput represents the MCP tool input for saving the hero.
type HeroSaveInput struct{}

// HeroSaveResult represents the MCP tool output for saving the hero.
type HeroSaveResult struct {
	ID   string `json:"id" jsonschema:"saved hero identifier"`
	Name string `json:"name" jsonschema:"saved hero name"`
}

// HeroSaveTool defines the MCP tool schema for persisting the active hero.
func HeroSaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hero_save",
		Description: "Persists the active hero's resources and progression. Roll history and skills are not saved.",
	}
}

// HeroSaveHandler executes a hero save request.
func HeroSaveHandler(env Env) mcp.ToolHandlerFor[HeroSaveInput, HeroSaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HeroSaveInput) (*mcp.CallToolResult, HeroSaveResult, error) {
		ctx, span := env.start(ctx, "hero_save")
		defer span.End()

		if err := env.requireStore(); err != nil {
			return nil, HeroSaveResult{}, env.fail(span, "hero_save", err)
		}
		if err := env.requireHero(); err != nil {
			return nil, HeroSaveResult{}, env.fail(span, "hero_save", err)
		}
		record := env.Session.Record()
		if err := env.Store.PutHero(ctx, record); err != nil {
			return nil, HeroSaveResult{}, env.fail(span, "hero_save", fmt.Errorf("save hero: %w", err))
		}
		return nil, HeroSaveResult{ID: record.ID, Name: record.Name}, nil
	}
}

// HeroLoadInput represents the MCP tool input for loading a hero.
type HeroLoadInput struct {
	ID string `json:"id" jsonschema:"hero identifier"`
}

// HeroLoadTool defines the MCP tool schema for loading a stored hero.
func HeroLoadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hero_load",
		Description: "Loads a stored hero and makes it the active hero. Resets the skill registry.",
	}
}

// HeroLoadHandler executes a hero load request.
func HeroLoadHandler(env Env) mcp.ToolHandlerFor[HeroLoadInput, HeroResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HeroLoadInput) (*mcp.CallToolResult, HeroResult, error) {
		ctx, span := env.start(ctx, "hero_load")
		defer span.End()

		if err := env.requireStore(); err != nil {
			return nil, HeroResult{}, env.fail(span, "hero_load", err)
		}
		record, err := env.Store.GetHero(ctx, strings.TrimSpace(input.ID))
		if err != nil {
			return nil, HeroResult{}, env.fail(span, "hero_load", fmt.Errorf("load hero: %w", err))
		}
		status, err := env.Session.LoadHero(record)
		if err != nil {
			return nil, HeroResult{}, env.fail(span, "hero_load", err)
		}
		return nil, env.heroResult(true, status), nil
	}
}

// HeroListInput represents the MCP tool input for listing stored heroes.
type HeroListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum heroes to return, defaults to 20"`
}

// HeroListEntry is one stored hero.
type HeroListEntry struct {
	ID        string `json:"id" jsonschema:"hero identifier"`
	Name      string `json:"name" jsonschema:"hero name"`
	Class     string `json:"class" jsonschema:"hero class"`
	Level     int    `json:"level" jsonschema:"hero level"`
	UpdatedAt string `json:"updated_at" jsonschema:"RFC3339 timestamp of the last save"`
}

// HeroListResult represents the MCP tool output for listing stored heroes.
type HeroListResult struct {
	Heroes []HeroListEntry `json:"heroes" jsonschema:"stored heroes, most recently saved first"`
}

// HeroListTool defines the MCP tool schema for listing stored heroes.
func HeroListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hero_list",
		Description: "Lists stored heroes, most recently saved first.",
	}
}

// HeroListHandler executes a hero list request.
func HeroListHandler(env Env) mcp.ToolHandlerFor[HeroListInput, HeroListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HeroListInput) (*mcp.CallToolResult, HeroListResult, error) {
		ctx, span := env.start(ctx, "hero_list")
		defer span.End()

		if err := env.requireStore(); err != nil {
			return nil, HeroListResult{}, env.fail(span, "hero_list", err)
		}
		limit := input.Limit
		if limit <= 0 {
			limit = 20
		}
		summaries, err := env.Store.ListHeroes(ctx, limit)
		if err != nil {
			return nil, HeroListResult{}, env.fail(span, "hero_list", fmt.Errorf("list heroes: %w", err))
		}
		result := HeroListResult{Heroes: make([]HeroListEntry, 0, len(summaries))}
		for _, summary := range summaries {
			result.Heroes = append(result.Heroes, HeroListEntry{
				ID:        summary.ID,
				Name:      summary.Name,
				Class:     summary.Class,
				Level:     summary.Level,
				UpdatedAt: summary.UpdatedAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, result, nil
	}
}

// HeroDeleteInput represents the MCP tool input for deleting a stored hero.
type HeroDeleteInput struct {
	ID string `json:"id" jsonschema:"hero identifier"`
}

// HeroDeleteResult represents the MCP tool output for deleting a stored hero.
type HeroDeleteResult struct {
	ID string `json:"id" jsonschema:"deleted hero identifier"`
}

// HeroDeleteTool defines the MCP tool schema for deleting a stored hero.
func HeroDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hero_delete",
		Description: "Deletes a stored hero. The active hero, if any, is unaffected.",
	}
}

// HeroDeleteHandler executes a hero delete request.
func HeroDeleteHandler(env Env) mcp.ToolHandlerFor[HeroDeleteInput, HeroDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HeroDeleteInput) (*mcp.CallToolResult, HeroDeleteResult, error) {
		ctx, span := env.start(ctx, "hero_delete")
		defer span.End()

		if err := env.requireStore(); err != nil {
			return nil, HeroDeleteResult{}, env.fail(span, "hero_delete", err)
		}
		id := strings.TrimSpace(input.ID)
		if err := env.Store.DeleteHero(ctx, id); err != nil {
			return nil, HeroDeleteResult{}, env.fail(span, "hero_delete", fmt.Errorf("delete hero: %w", err))
		}
		return nil, HeroDeleteResult{ID: id}, nil
	}
}
