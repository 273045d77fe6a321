// File: i18n.go
// Title: Internationalization Manager
// Description: Implements the translation manager used for user-facing
//              message text. Locale catalogues are YAML documents with
//              nested keys addressed in dot notation; message templates are
//              rendered with text/template. The catalogues for "en" and
//              "de" are embedded; additional locales can be loaded from a
//              directory.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package i18n

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"

	mcerror "github.com/msto63/mChat/core/error"
	mclog "github.com/msto63/mChat/core/log"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Manager provides translated, parameterized message text
type Manager struct {
	mu            sync.RWMutex
	translations  map[string]map[string]interface{} // locale -> nested catalogue
	currentLocale string
	defaultLocale string
	logger        *mclog.Logger
	templateCache map[string]*template.Template
}

// Options configures the translation manager
type Options struct {
	// DefaultLocale is used when a key is missing in the current locale
	// (default: "en")
	DefaultLocale string

	// Locale is the initially active locale (default: DefaultLocale)
	Locale string

	// LocaleDir optionally points at a directory of additional
	// <locale>.yaml catalogues, overlaid over the embedded ones
	LocaleDir string

	// Logger for i18n operations (optional)
	Logger *mclog.Logger
}

// New creates a translation manager with the embedded catalogues
func New(options Options) (*Manager, error) {
	if options.DefaultLocale == "" {
		options.DefaultLocale = "en"
	}
	if options.Locale == "" {
		options.Locale = options.DefaultLocale
	}
	if options.Logger == nil {
		options.Logger = mclog.GetDefault()
	}

	m := &Manager{
		translations:  make(map[string]map[string]interface{}),
		currentLocale: options.Locale,
		defaultLocale: options.DefaultLocale,
		logger:        options.Logger.WithField("component", "i18n"),
		templateCache: make(map[string]*template.Template),
	}

	if err := m.loadEmbedded(); err != nil {
		return nil, err
	}
	if options.LocaleDir != "" {
		if err := m.loadDir(options.LocaleDir); err != nil {
			return nil, err
		}
	}

	if _, ok := m.translations[m.defaultLocale]; !ok {
		return nil, mcerror.Newf("default locale %q has no catalogue", m.defaultLocale).
			WithCode(mcerror.CodeInvalidConfig)
	}

	m.logger.Debug("i18n manager initialized", mclog.Fields{
		"locales":       m.GetAvailableLocales(),
		"currentLocale": m.currentLocale,
	})

	return m, nil
}

func (m *Manager) loadEmbedded() error {
	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return mcerror.Wrap(err, "failed to read embedded locales")
	}
	for _, entry := range entries {
		data, err := embeddedLocales.ReadFile("locales/" + entry.Name())
		if err != nil {
			return mcerror.Wrap(err, "failed to read embedded locale "+entry.Name())
		}
		if err := m.loadCatalogue(localeName(entry.Name()), data); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return mcerror.Wrap(err, "failed to read locale directory").
			WithCode(mcerror.CodeConfigError).
			WithDetail("dir", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return mcerror.Wrap(err, "failed to read locale file "+entry.Name())
		}
		if err := m.loadCatalogue(localeName(entry.Name()), data); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) loadCatalogue(locale string, data []byte) error {
	var catalogue map[string]interface{}
	if err := yaml.Unmarshal(data, &catalogue); err != nil {
		return mcerror.Wrap(err, "failed to parse locale catalogue").
			WithCode(mcerror.CodeConfigError).
			WithDetail("locale", locale)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.translations[locale]
	if !ok {
		m.translations[locale] = catalogue
		return nil
	}
	// Later catalogues overlay earlier ones key by key.
	for k, v := range catalogue {
		existing[k] = v
	}
	return nil
}

func localeName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// T returns the translated text for key, rendering template arguments.
// Missing keys fall back to the default locale and finally to the key
// itself, so T never fails.
func (m *Manager) T(key string, data ...map[string]interface{}) string {
	text, err := m.TryT(key, data...)
	if err != nil {
		return key
	}
	return text
}

// TryT returns the translated text for key or an error if the key is
// unknown in both the current and the default locale
func (m *Manager) TryT(key string, data ...map[string]interface{}) (string, error) {
	m.mu.RLock()
	raw := m.lookup(key, m.currentLocale)
	if raw == "" && m.currentLocale != m.defaultLocale {
		raw = m.lookup(key, m.defaultLocale)
	}
	m.mu.RUnlock()

	if raw == "" {
		return "", mcerror.Newf("no translation for key %q", key).
			WithCode(mcerror.CodeNotFound).
			WithDetail("key", key)
	}

	if len(data) == 0 || !strings.Contains(raw, "{{") {
		return raw, nil
	}
	return m.render(key, raw, data[0])
}

// TWithFallback returns the translation for key, or fallback when the
// key is unknown
func (m *Manager) TWithFallback(key, fallback string, data ...map[string]interface{}) string {
	text, err := m.TryT(key, data...)
	if err != nil {
		return fallback
	}
	return text
}

// LocalizeError renders the user-facing text of a structured error. If
// the error carries a message key it is translated; otherwise the plain
// error text is returned.
func (m *Manager) LocalizeError(err error) string {
	if err == nil {
		return ""
	}
	structured, ok := err.(*mcerror.Error)
	if !ok || structured.MessageKey() == "" {
		return err.Error()
	}
	return m.TWithFallback(structured.MessageKey(), structured.Error(), structured.MessageArgs())
}

func (m *Manager) lookup(key, locale string) string {
	catalogue, ok := m.translations[locale]
	if !ok {
		return ""
	}
	value := nestedValue(catalogue, strings.Split(key, "."))
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return text
}

func nestedValue(data map[string]interface{}, path []string) interface{} {
	var current interface{} = data
	for _, segment := range path {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = node[segment]
		if !ok {
			return nil
		}
	}
	return current
}

func (m *Manager) render(key, raw string, data map[string]interface{}) (string, error) {
	m.mu.Lock()
	tmpl, ok := m.templateCache[m.currentLocale+":"+key]
	if !ok {
		var err error
		tmpl, err = template.New(key).Parse(raw)
		if err != nil {
			m.mu.Unlock()
			return "", mcerror.Wrap(err, "invalid message template").WithDetail("key", key)
		}
		m.templateCache[m.currentLocale+":"+key] = tmpl
	}
	m.mu.Unlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", mcerror.Wrap(err, "failed to render message template").WithDetail("key", key)
	}
	return buf.String(), nil
}

// SetLocale switches the active locale
func (m *Manager) SetLocale(locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.translations[locale]; !ok {
		return mcerror.Newf("locale %q has no catalogue", locale).
			WithCode(mcerror.CodeNotFound)
	}
	m.currentLocale = locale
	return nil
}

// GetCurrentLocale returns the active locale
func (m *Manager) GetCurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocale
}

// HasTranslation reports whether key resolves in the active locale
func (m *Manager) HasTranslation(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(key, m.currentLocale) != ""
}

// GetAvailableLocales returns the sorted list of loaded locales
func (m *Manager) GetAvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}
