package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if fallback := GetCatalog("missing-locale"); fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
	if blank := GetCatalog("  "); blank != base {
		t.Fatal("expected blank locale to resolve to en-US catalog")
	}
}

func TestGetCatalogLoadsEmbeddedLocales(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "en-US", want: "A hero needs a name."},
		{locale: "pt-BR", want: "Um herói precisa de um nome."},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			cat := GetCatalog(tt.locale)
			if cat.Locale() != tt.locale {
				t.Fatalf("Locale() = %q, want %q", cat.Locale(), tt.locale)
			}
			if got := cat.Format("HERO_NAME_EMPTY", nil); got != tt.want {
				t.Fatalf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	got := GetCatalog("en-US").Format("HERO_UNKNOWN_CLASS", map[string]string{"Class": "Bard"})
	if want := `Unknown hero class "Bard".`; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if got := cat.Format("unknown", nil); got != "unknown" {
		t.Fatalf("Format(unknown) = %q, want code fallback", got)
	}
	if got := cat.Format("code", nil); got != "hello <no value>" {
		t.Fatalf("Format(code) = %q, want missing metadata rendering", got)
	}
	if !cat.Has("code") || cat.Has("unknown") {
		t.Fatal("Has reported wrong membership")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"parse": "{{ if .Name }}",
		"exec":  "{{ call .Name }}",
	})
	if got := cat.Format("parse", map[string]string{"Name": "X"}); got != "{{ if .Name }}" {
		t.Fatalf("parse fallback = %q", got)
	}
	if got := cat.Format("exec", map[string]string{"Name": "X"}); got != "{{ call .Name }}" {
		t.Fatalf("exec fallback = %q", got)
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}
