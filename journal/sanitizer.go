package journal

import (
	"sync"

	"github.com/goliatone/go-hooks/pkg/types"
	"github.com/goliatone/go-masker"
)

// Sanitizer masks sensitive values in dispatch meta payloads before they are
// persisted. Dispatch options frequently carry credentials (API keys, tokens)
// that plugin callbacks need but the journal must not retain in clear text.
type Sanitizer struct {
	mask *masker.Masker
}

// SanitizerConfig controls the masker used for journal sanitization.
type SanitizerConfig struct {
	Masker *masker.Masker
}

// NewSanitizer constructs a sanitizer. A nil or zero config falls back to the
// package default masker with the default denylist.
func NewSanitizer(cfg SanitizerConfig) *Sanitizer {
	mask := cfg.Masker
	if mask == nil {
		mask = DefaultMasker()
	}
	return &Sanitizer{mask: mask}
}

var defaultMaskerOnce sync.Once

// DefaultMasker returns a configured masker instance with the default denylist.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		registerDefaultMaskFields(masker.Default)
	})
	return masker.Default
}

// SanitizeRecord masks sensitive values in the record's meta payload. A nil
// sanitizer uses the package default masker; when no masker is available the
// meta payload is dropped entirely rather than persisted unmasked.
func SanitizeRecord(s *Sanitizer, record types.DispatchRecord) types.DispatchRecord {
	if len(record.Meta) == 0 {
		return record
	}
	var mask *masker.Masker
	if s != nil {
		mask = s.mask
	}
	if mask == nil {
		mask = DefaultMasker()
	}
	if mask == nil {
		record.Meta = map[string]any{}
		return record
	}

	cloned := cloneMap(record.Meta)
	masked, err := mask.Mask(cloned)
	if err != nil {
		record.Meta = map[string]any{}
		return record
	}

	switch masked := masked.(type) {
	case map[string]any:
		record.Meta = masked
	default:
		record.Meta = map[string]any{}
	}
	return record
}

func registerDefaultMaskFields(mask *masker.Masker) {
	if mask == nil {
		return
	}
	mask.RegisterMaskField("secret", "filled4")
	mask.RegisterMaskField("token", "filled4")
	mask.RegisterMaskField("password", "filled4")
	mask.RegisterMaskField("api_key", "filled4")
}
