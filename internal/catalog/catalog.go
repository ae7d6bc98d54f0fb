// Package catalog holds the localised strings shown by the console and
// terminal front ends. Catalogs are YAML files embedded at build time, one
// directory per locale and one file per namespace.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale. Every other locale falls back
// to it for keys it does not translate.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle contains every locale loaded from a catalog filesystem
type Bundle struct {
	locales map[string]map[string]string
	builder *catalog.Builder
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

// LoadEmbedded loads the catalogs compiled into the binary
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from fsys
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.addFile(p, file); err != nil {
			return nil, err
		}
	}

	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for locale, messages := range b.locales {
		for key := range messages {
			if _, ok := base[key]; !ok {
				return nil, fmt.Errorf("locale %s: key %q is not defined in %s", locale, key, BaseLocale)
			}
		}
	}

	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	if file.Locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, file.Locale, localeFromPath)
	}
	if _, err := language.Parse(file.Locale); err != nil {
		return fmt.Errorf("catalog %s: %w", p, err)
	}
	if file.Namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", p, file.Namespace, namespaceFromPath)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages are required", p)
	}

	messages, ok := b.locales[file.Locale]
	if !ok {
		messages = map[string]string{}
		b.locales[file.Locale] = messages
	}
	for key, value := range file.Messages {
		if !strings.HasPrefix(key, file.Namespace+".") {
			return fmt.Errorf("catalog %s: key %q must start with %q", p, key, file.Namespace+".")
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, file.Locale)
		}
		messages[key] = strings.TrimRight(value, "\n")
	}
	return nil
}

// build fills every locale from the base and loads the result into a
// private x/text catalog, leaving the process-wide one untouched.
func (b *Bundle) build() error {
	base := b.locales[BaseLocale]
	b.builder = catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))

	for _, locale := range b.Locales() {
		tag := language.MustParse(locale)
		for key, value := range base {
			if translated, ok := b.locales[locale][key]; ok {
				value = translated
			}
			if err := b.builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s %s: %w", locale, key, err)
			}
		}
	}
	return nil
}

// Locales returns the loaded locales, base locale first
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		if locale != BaseLocale {
			out = append(out, locale)
		}
	}
	sort.Strings(out)
	return append([]string{BaseLocale}, out...)
}

// HasLocale reports whether locale was loaded exactly
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[locale]
	return ok
}

// Keys returns the sorted message keys of the base locale
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.locales[BaseLocale]))
	for key := range b.locales[BaseLocale] {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Match returns the loaded locale closest to the requested one. Unknown or
// malformed requests get the base locale.
func (b *Bundle) Match(locale string) string {
	if b.HasLocale(locale) {
		return locale
	}
	want, err := language.Parse(locale)
	if err != nil {
		return BaseLocale
	}

	locales := b.Locales()
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = language.MustParse(l)
	}
	_, index, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		return BaseLocale
	}
	return locales[index]
}

// Printer returns a Printer for the locale closest to the requested one
func (b *Bundle) Printer(locale string) *Printer {
	matched := b.Match(locale)
	tag := language.MustParse(matched)
	return &Printer{
		locale: matched,
		p:      message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

// Printer formats catalog messages for one locale
type Printer struct {
	locale string
	p      *message.Printer
}

// Locale returns the locale this printer formats for
func (p *Printer) Locale() string {
	return p.locale
}

// T formats the message stored under key with args. A key missing from the
// catalog is formatted as-is.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
