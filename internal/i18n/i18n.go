// Package i18n translates message keys using catalogs embedded from locales/*.yaml.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator maps message keys to localized strings.
type Translator interface {
	Translate(locale, key string) string
}

// Catalog holds one message table per supported locale.
type Catalog struct {
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// Load parses the embedded catalogs. defaultLocale must be one of them and is preferred when no
// requested locale matches.
func Load(defaultLocale string) (*Catalog, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	c := &Catalog{messages: make(map[language.Tag]map[string]string)}
	var others []language.Tag
	found := false
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("locale file %s: %w", name, err)
		}
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		msgs := make(map[string]string)
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		c.messages[tag] = msgs
		if tag == def {
			found = true
			continue
		}
		others = append(others, tag)
	}
	if !found {
		return nil, fmt.Errorf("default locale %q has no catalog", defaultLocale)
	}
	// The first tag is the matcher's fallback.
	c.tags = append([]language.Tag{def}, others...)
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Match returns the supported locale that best fits an Accept-Language style list.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return c.tags[0]
	}
	_, idx, _ := c.matcher.Match(desired...)
	return c.tags[idx]
}

// Translate returns the message for key in the locale best matching locale, falling back to the
// default locale and then to key itself.
func (c *Catalog) Translate(locale, key string) string {
	if msg, ok := c.messages[c.Match(locale)][key]; ok {
		return msg
	}
	if msg, ok := c.messages[c.tags[0]][key]; ok {
		return msg
	}
	return key
}
