// Package i18n translates the labels printed by the CLI and the tray.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when the requested language has no locale file
const DefaultLanguage = "zh"

// Message IDs
const (
	MsgGregorian     = "gregorian"
	MsgLunar         = "lunar"
	MsgYearName      = "year_name"
	MsgZodiac        = "zodiac"
	MsgLeapMonth     = "leap_month"
	MsgNoLeapMonth   = "no_leap_month"
	MsgNewYear       = "new_year"
	MsgTotalDays     = "total_days"
	MsgMonthLengths  = "month_lengths"
	MsgFestivals     = "festivals"
	MsgWeekday       = "weekday"
	MsgToday         = "today"
	MsgGregorianLeap = "gregorian_leap"
	MsgYes           = "yes"
	MsgNo            = "no"
	MsgExportDone    = "export_done"
	MsgDaysCount     = "days_count"
	MsgTrayTooltip   = "tray_tooltip"
	MsgTrayQuit      = "tray_quit"

	weekdayPrefix = "weekday_"
)

// MessageIDs lists every message the program looks up
func MessageIDs() []string {
	ids := []string{
		MsgGregorian, MsgLunar, MsgYearName, MsgZodiac, MsgLeapMonth, MsgNoLeapMonth,
		MsgNewYear, MsgTotalDays, MsgMonthLengths, MsgFestivals, MsgWeekday, MsgToday,
		MsgGregorianLeap, MsgYes, MsgNo, MsgExportDone, MsgDaysCount, MsgTrayTooltip, MsgTrayQuit,
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		ids = append(ids, fmt.Sprintf("%s%d", weekdayPrefix, d))
	}
	return ids
}

// Translator looks up messages for one language
type Translator struct {
	lang      string
	localizer *goi18n.Localizer
	logger    *zap.Logger
}

// New creates a Translator for lang, falling back to DefaultLanguage
func New(lang string, logger *zap.Logger) (*Translator, error) {
	bundle := goi18n.NewBundle(language.Chinese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	supported := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("failed to load locale %s: %w", name, err)
		}
		supported[strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")] = true
	}

	if !supported[lang] {
		logger.Warn("Unsupported language, using default",
			zap.String("language", lang),
			zap.String("default", DefaultLanguage))
		lang = DefaultLanguage
	}

	return &Translator{
		lang:      lang,
		localizer: goi18n.NewLocalizer(bundle, lang),
		logger:    logger,
	}, nil
}

// Language returns the effective language code
func (t *Translator) Language() string {
	return t.lang
}

// T translates a message; unknown IDs are returned unchanged
func (t *Translator) T(id string) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: id})
}

// Tf translates a message template with data
func (t *Translator) Tf(id string, data map[string]any) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural translates a counted message, exposing the count as {{.Count}}
func (t *Translator) Plural(id string, count int) string {
	return t.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

// Weekday returns the short weekday name
func (t *Translator) Weekday(d time.Weekday) string {
	return t.T(fmt.Sprintf("%s%d", weekdayPrefix, d))
}

func (t *Translator) localize(cfg *goi18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(cfg)
	if err != nil {
		t.logger.Debug("Missing translation",
			zap.String("id", cfg.MessageID),
			zap.Error(err))
		return cfg.MessageID
	}
	return msg
}

// DisplayWidth returns the number of terminal columns s occupies.
// East Asian wide and fullwidth runes take two columns.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// PadRight pads s with spaces up to the given display width
func PadRight(s string, columns int) string {
	if pad := columns - DisplayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
