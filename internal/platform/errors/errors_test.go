package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeHeroNameEmpty, "hero name is required")
	if !stderrors.Is(err, &Error{Code: CodeHeroNameEmpty}) {
		t.Fatal("expected code match")
	}
	if stderrors.Is(err, &Error{Code: CodeHeroUnknownClass}) {
		t.Fatal("expected code mismatch")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "save hero", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause")
	}
	if err.Error() != "save hero" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "save hero")
	}
}

func TestGetCodeAndIsCode(t *testing.T) {
	inner := WithMetadata(CodeHeroUnknownClass, "unknown class", map[string]string{"Class": "Bard"})
	wrapped := fmt.Errorf("create hero: %w", inner)

	if got := GetCode(wrapped); got != CodeHeroUnknownClass {
		t.Fatalf("GetCode = %s, want %s", got, CodeHeroUnknownClass)
	}
	if !IsCode(wrapped, CodeHeroUnknownClass) {
		t.Fatal("expected IsCode to match through wrapping")
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("GetCode(plain) = %s, want %s", got, CodeUnknown)
	}
}

func TestLocalize(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		locale string
		want   string
	}{
		{name: "nil", err: nil, locale: "en-US", want: ""},
		{name: "plain error hides details", err: stderrors.New("sql: connection reset"), locale: "en-US", want: "An unexpected error occurred."},
		{
			name:   "metadata",
			err:    WithMetadata(CodeRollInvalidDie, "invalid die", map[string]string{"Sides": "1"}),
			locale: "en-US",
			want:   "A die needs at least two sides, got 1.",
		},
		{
			name:   "wrapped and translated",
			err:    fmt.Errorf("load: %w", New(CodeHeroNotActive, "no hero")),
			locale: "pt-BR",
			want:   "Nenhum herói está ativo nesta sessão.",
		},
		{
			name:   "unknown locale falls back",
			err:    New(CodeStorageNotConfigured, "no store"),
			locale: "ja-JP",
			want:   "Hero storage is not configured.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Localize(tt.err, tt.locale); got != tt.want {
				t.Fatalf("Localize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeKind(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{code: CodeHeroNameEmpty, want: KindInvalidArgument},
		{code: CodeSkillUnknownSource, want: KindInvalidArgument},
		{code: CodeHeroNotActive, want: KindFailedPrecondition},
		{code: CodeNotFound, want: KindNotFound},
		{code: CodeHeroInvalidRecord, want: KindInternal},
		{code: CodeUnknown, want: KindInternal},
	}
	for _, tt := range tests {
		if got := tt.code.Kind(); got != tt.want {
			t.Fatalf("%s.Kind() = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestEveryCodeHasBaseMessage(t *testing.T) {
	codes := []Code{
		CodeUnknown, CodeNotFound, CodeDiceMissing, CodeDiceInvalidSpec,
		CodeHeroUnknownClass, CodeHeroNameEmpty, CodeHeroNotActive, CodeHeroInvalidRecord,
		CodeRollUnknownEdgeBane, CodeRollInvalidDie, CodeSkillIDEmpty, CodeSkillUnknownSource,
		CodeStatusUnknownCondition, CodeStorageNotConfigured,
	}
	for _, code := range codes {
		msg := New(code, "internal").LocalizedMessage("en-US")
		if msg == string(code) {
			t.Errorf("code %s has no en-US message", code)
		}
	}
}
