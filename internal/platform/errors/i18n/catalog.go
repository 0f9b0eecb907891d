// Package i18n renders localized user-facing error messages.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/herosheet/internal/platform/i18n/catalog"
)

// Code mirrors errors.Code so this package stays free of an import cycle.
type Code = string

// errorsNamespace is the catalog namespace holding error templates.
const errorsNamespace = "errors"

// Catalog holds the error message templates for one locale.
type Catalog struct {
	locale    string
	messages  map[Code]string
	templates sync.Map // Code -> *template.Template
}

var catalogs sync.Map // locale -> *Catalog

// GetCatalog returns the catalog for a locale, falling back to the base
// locale when the locale has no error messages.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if cached, ok := catalogs.Load(requested); ok {
		return cached.(*Catalog)
	}

	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, errorsNamespace)
	if cached, ok := catalogs.Load(resolved); ok {
		return cached.(*Catalog)
	}
	actual, _ := catalogs.LoadOrStore(resolved, NewCatalog(resolved, messages))
	return actual.(*Catalog)
}

// RegisterCatalog installs a catalog for a locale, replacing any cached one.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogs.Store(locale, cat)
}

// NewCatalog builds a catalog from code-to-template pairs.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{locale: locale, messages: cloned}
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Has reports whether the catalog carries a template for code.
func (c *Catalog) Has(code Code) bool {
	_, ok := c.messages[code]
	return ok
}

// Format renders the template for code with metadata. Unknown codes render as
// the code itself; templates that fail to parse or execute render raw.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	raw, ok := c.messages[code]
	if !ok {
		return code
	}
	tmpl, err := c.template(code, raw)
	if err != nil {
		return raw
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, metadata); err != nil {
		return raw
	}
	return out.String()
}

func (c *Catalog) template(code Code, raw string) (*template.Template, error) {
	if cached, ok := c.templates.Load(code); ok {
		return cached.(*template.Template), nil
	}
	tmpl, err := template.New(code).Parse(raw)
	if err != nil {
		return nil, err
	}
	actual, _ := c.templates.LoadOrStore(code, tmpl)
	return actual.(*template.Template), nil
}
