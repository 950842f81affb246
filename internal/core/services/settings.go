package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyArchiveDir      = "archive.dir"
	keyArchiveOutput   = "archive.output"
	keyImportIDMap     = "import.id_map"
	keyMarkIncomplete  = "import.mark_incomplete"
	keyImportOverwrite = "import.overwrite"
	keyDedupeArbiter   = "dedupe.arbiter"
	keyDedupeJournal   = "dedupe.journal"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Archive: domain.ArchiveSettings{
			Dir:    s.getString(keyArchiveDir, defaults.Archive.Dir),
			Output: s.getString(keyArchiveOutput, defaults.Archive.Output),
		},
		Import: domain.ImportSettings{
			IDMapPath:      s.getString(keyImportIDMap, defaults.Import.IDMapPath),
			MarkIncomplete: s.getBool(keyMarkIncomplete, defaults.Import.MarkIncomplete),
			Overwrite:      s.getBool(keyImportOverwrite, defaults.Import.Overwrite),
		},
		Dedupe: domain.DedupeSettings{
			Arbiter: s.getArbiter(defaults.Dedupe.Arbiter),
			Journal: s.getBool(keyDedupeJournal, defaults.Dedupe.Journal),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Dedupe.Arbiter.IsValid() {
		return fmt.Errorf("%w: arbiter %q", domain.ErrUnsupportedType, settings.Dedupe.Arbiter)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyArchiveDir, settings.Archive.Dir},
		{keyArchiveOutput, settings.Archive.Output},
		{keyImportIDMap, settings.Import.IDMapPath},
		{keyMarkIncomplete, settings.Import.MarkIncomplete},
		{keyImportOverwrite, settings.Import.Overwrite},
		{keyDedupeArbiter, settings.Dedupe.Arbiter.String()},
		{keyDedupeJournal, settings.Dedupe.Journal},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates one setting from its textual form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyArchiveDir:
		settings.Archive.Dir, err = nonEmpty(key, value)
	case keyArchiveOutput:
		settings.Archive.Output, err = nonEmpty(key, value)
	case keyImportIDMap:
		settings.Import.IDMapPath, err = nonEmpty(key, value)
	case keyMarkIncomplete:
		settings.Import.MarkIncomplete, err = parseBool(key, value)
	case keyImportOverwrite:
		settings.Import.Overwrite, err = parseBool(key, value)
	case keyDedupeJournal:
		settings.Dedupe.Journal, err = parseBool(key, value)
	case keyDedupeArbiter:
		kind := domain.ArbiterKind(strings.ToLower(strings.TrimSpace(value)))
		if !kind.IsValid() {
			err = fmt.Errorf("%w: arbiter %q (expected one of %v)", domain.ErrUnsupportedType, value, domain.AllArbiterKinds())
		}
		settings.Dedupe.Arbiter = kind
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys lists the recognised config keys.
func (s *SettingsService) Keys() []string {
	return []string{
		keyArchiveDir,
		keyArchiveOutput,
		keyImportIDMap,
		keyMarkIncomplete,
		keyImportOverwrite,
		keyDedupeArbiter,
		keyDedupeJournal,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getArbiter(defaultVal domain.ArbiterKind) domain.ArbiterKind {
	val := s.configStore.GetString(keyDedupeArbiter)
	if val == "" {
		return defaultVal
	}
	kind := domain.ArbiterKind(val)
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}

func nonEmpty(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
	}
	return value, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
	}
	return b, nil
}
