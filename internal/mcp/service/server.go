package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/herosheet/internal/mcp/domain"
	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Herosheet MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	Session *session.Session
	// Store is optional. Without it the save, load, list and delete tools
	// report that storage is not configured.
	Store  storage.HeroStore
	Locale string
	Logger *log.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	tools     []string
}

type toolRegistration struct {
	name string
	add  func(*mcp.Server)
}

func registerTool[I any, O any](tool *mcp.Tool, handler mcp.ToolHandlerFor[I, O]) toolRegistration {
	return toolRegistration{
		name: tool.Name,
		add: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func toolRegistrations(env domain.Env) []toolRegistration {
	return []toolRegistration{
		registerTool(domain.HeroCreateTool(), domain.HeroCreateHandler(env)),
		registerTool(domain.HeroStatusTool(), domain.HeroStatusHandler(env)),
		registerTool(domain.HeroSaveTool(), domain.HeroSaveHandler(env)),
		registerTool(domain.HeroLoadTool(), domain.HeroLoadHandler(env)),
		registerTool(domain.HeroListTool(), domain.HeroListHandler(env)),
		registerTool(domain.HeroDeleteTool(), domain.HeroDeleteHandler(env)),
		registerTool(domain.StaminaAdjustTool(), domain.StaminaAdjustHandler(env)),
		registerTool(domain.StaminaSetTool(), domain.StaminaSetHandler(env)),
		registerTool(domain.StaminaMaxTool(), domain.StaminaMaxHandler(env)),
		registerTool(domain.StaminaTemporaryTool(), domain.StaminaTemporaryHandler(env)),
		registerTool(domain.DyingThresholdTool(), domain.DyingThresholdHandler(env)),
		registerTool(domain.ConditionToggleTool(), domain.ConditionToggleHandler(env)),
		registerTool(domain.RecoveryUseTool(), domain.RecoveryUseHandler(env)),
		registerTool(domain.RecoveriesAdjustTool(), domain.RecoveriesAdjustHandler(env)),
		registerTool(domain.RecoveriesRestoreTool(), domain.RecoveriesRestoreHandler(env)),
		registerTool(domain.RespiteTool(), domain.RespiteHandler(env)),
		registerTool(domain.HeroicAdjustTool(), domain.HeroicAdjustHandler(env)),
		registerTool(domain.XPAwardTool(), domain.XPAwardHandler(env)),
		registerTool(domain.LevelUpTool(), domain.LevelUpHandler(env)),
		registerTool(domain.PowerRollTool(), domain.PowerRollHandler(env)),
		registerTool(domain.DieRollTool(), domain.DieRollHandler(env)),
		registerTool(domain.EdgeBaneSetTool(), domain.EdgeBaneSetHandler(env)),
		registerTool(domain.EdgeBaneCycleTool(), domain.EdgeBaneCycleHandler(env)),
		registerTool(domain.RollHistoryTool(), domain.RollHistoryHandler(env)),
		registerTool(domain.RollHistoryClearTool(), domain.RollHistoryClearHandler(env)),
		registerTool(domain.SkillGrantTool(), domain.SkillGrantHandler(env)),
		registerTool(domain.SkillSelectTool(), domain.SkillSelectHandler(env)),
		registerTool(domain.SkillReleaseTool(), domain.SkillReleaseHandler(env)),
		registerTool(domain.SkillClearSectionTool(), domain.SkillClearSectionHandler(env)),
		registerTool(domain.SkillClearSourceTool(), domain.SkillClearSourceHandler(env)),
		registerTool(domain.SkillResetTool(), domain.SkillResetHandler(env)),
		registerTool(domain.SkillStatusTool(), domain.SkillStatusHandler(env)),
		registerTool(domain.SkillSourceTool(), domain.SkillSourceHandler(env)),
	}
}

// New creates a configured MCP server bound to one hero session.
func New(cfg Config) (*Server, error) {
	if cfg.Session == nil {
		return nil, errors.New("session is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	env := domain.Env{
		Session: cfg.Session,
		Store:   cfg.Store,
		Locale:  cfg.Locale,
		Logger:  cfg.Logger,
	}
	seen := make(map[string]struct{})
	server := &Server{mcpServer: mcpServer}
	for _, registration := range toolRegistrations(env) {
		if _, ok := seen[registration.name]; ok {
			return nil, fmt.Errorf("duplicate MCP tool %q", registration.name)
		}
		seen[registration.name] = struct{}{}
		registration.add(mcpServer)
		server.tools = append(server.tools, registration.name)
	}
	return server, nil
}

// Tools returns the registered tool names in registration order.
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}

// Serve runs the server on transport until the context ends or the client
// disconnects.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Run creates a server from cfg and serves it over stdio.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx, transport)
}
