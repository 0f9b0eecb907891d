package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
	"github.com/louisbranch/herosheet/internal/platform/i18n/catalog"
	"github.com/louisbranch/herosheet/internal/platform/otel"
	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"
)

const tracerName = "github.com/louisbranch/herosheet/internal/mcp"

// Env carries the collaborators every tool handler shares.
type Env struct {
	Session *session.Session
	// Store is optional; save and load tools fail without it.
	Store  storage.HeroStore
	Locale string
	Logger *log.Logger
}

// ToolError is the error returned to MCP clients. Message is localized.
type ToolError struct {
	Code    apperrors.Code
	Message string
	cause   error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.cause
}

func (e Env) start(ctx context.Context, tool string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "mcp.tool."+tool,
		trace.WithAttributes(attribute.String("mcp.tool", tool)))
}

// fail records err on span and converts it to a localized ToolError.
func (e Env) fail(span trace.Span, tool string, err error) error {
	code := apperrors.GetCode(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, string(code))
	if e.Logger != nil {
		e.Logger.Printf("tool %s: %v", tool, err)
	}
	return &ToolError{Code: code, Message: apperrors.Localize(err, e.Locale), cause: err}
}

func (e Env) requireHero() error {
	if e.Session == nil || !e.Session.HasHero() {
		return apperrors.New(apperrors.CodeHeroNotActive, "no active hero")
	}
	return nil
}

func (e Env) requireStore() error {
	if e.Store == nil {
		return apperrors.New(apperrors.CodeStorageNotConfigured, "hero store not configured")
	}
	return nil
}

func (e Env) printer() *message.Printer {
	return catalog.Default().Printer(e.Locale)
}

// IsToolError reports whether err carries code.
func IsToolError(err error, code apperrors.Code) bool {
	var toolErr *ToolError
	return errors.As(err, &toolErr) && toolErr.Code == code
}

func requireSkillID(skillID string) (string, error) {
	skillID = strings.TrimSpace(skillID)
	if skillID == "" {
		return "", apperrors.New(apperrors.CodeSkillIDEmpty, "skill id is required")
	}
	return skillID, nil
}
