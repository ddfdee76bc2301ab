// Package narration turns game events into the words the player sees and
// hears, in the configured language.
package narration

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale defines the full key set every other locale must cover.
const BaseLocale = "ro"

//go:embed locales/*.yaml
var embedded embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the phrase books of all locales.
type Catalog struct {
	builder *catalog.Builder
	tags    []language.Tag
	keys    map[string][]string
}

// Embedded loads the phrase books shipped with the binary.
func Embedded() (*Catalog, error) {
	return LoadFS(embedded)
}

// LoadFS reads locales/*.yaml from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		keys:    map[string][]string{},
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", p, err)
		}
		if err := c.add(p, data); err != nil {
			return nil, err
		}
	}

	base, ok := c.keys[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}
	// The matcher falls back to the first tag.
	sort.SliceStable(c.tags, func(i, j int) bool {
		return c.tags[i].String() == BaseLocale && c.tags[j].String() != BaseLocale
	})
	for loc, keys := range c.keys {
		if missing := diff(base, keys); len(missing) > 0 {
			return nil, fmt.Errorf("locale %s: missing keys %s", loc, strings.Join(missing, ", "))
		}
	}
	return c, nil
}

func (c *Catalog) add(p string, data []byte) error {
	var f localeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse locale %s: %w", p, err)
	}
	want := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if f.Locale != want {
		return fmt.Errorf("locale %s: locale %q must match file name %q", p, f.Locale, want)
	}
	tag, err := language.Parse(f.Locale)
	if err != nil {
		return fmt.Errorf("locale %s: %w", p, err)
	}
	if len(f.Messages) == 0 {
		return fmt.Errorf("locale %s: no messages", p)
	}

	keys := make([]string, 0, len(f.Messages))
	for key, msg := range f.Messages {
		if err := c.builder.SetString(tag, key, msg); err != nil {
			return fmt.Errorf("locale %s: key %q: %w", p, key, err)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	c.keys[f.Locale] = keys
	c.tags = append(c.tags, tag)
	return nil
}

// Locales lists the available locale names.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.keys))
	for loc := range c.keys {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// Printer returns a printer for the closest supported locale.
func (c *Catalog) Printer(locale string) *message.Printer {
	_, idx, _ := language.NewMatcher(c.tags).Match(language.Make(locale))
	return message.NewPrinter(c.tags[idx], message.Catalog(c.builder))
}

func diff(want, have []string) []string {
	set := make(map[string]bool, len(have))
	for _, k := range have {
		set[k] = true
	}
	var missing []string
	for _, k := range want {
		if !set[k] {
			missing = append(missing, k)
		}
	}
	return missing
}
