package i18n

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Every message the program uses must exist in every locale file.
func TestLocaleIntegrity(t *testing.T) {
	entries, err := localeFS.ReadDir("locales")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		require.NoError(t, err)

		var messages map[string]any
		require.NoError(t, json.Unmarshal(data, &messages), entry.Name())

		for _, id := range MessageIDs() {
			assert.Contains(t, messages, id, "%s is missing %q", entry.Name(), id)
		}
	}
}

func TestTranslator_T(t *testing.T) {
	zh, err := New("zh", zap.NewNop())
	require.NoError(t, err)
	en, err := New("en", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "农历", zh.T(MsgLunar))
	assert.Equal(t, "Lunar", en.T(MsgLunar))
	assert.Equal(t, "三", zh.Weekday(time.Wednesday))
	assert.Equal(t, "Wed", en.Weekday(time.Wednesday))
	assert.Equal(t, "no_such_message", en.T("no_such_message"))
}

func TestTranslator_Templates(t *testing.T) {
	en, err := New("en", zap.NewNop())
	require.NoError(t, err)
	zh, err := New("zh", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "Exported 3 events to out.ics",
		en.Tf(MsgExportDone, map[string]any{"Count": 3, "File": "out.ics"}))
	assert.Equal(t, "1 day", en.Plural(MsgDaysCount, 1))
	assert.Equal(t, "384 days", en.Plural(MsgDaysCount, 384))
	assert.Equal(t, "384天", zh.Plural(MsgDaysCount, 384))
}

func TestNew_UnsupportedLanguage(t *testing.T) {
	tr, err := New("ru", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, DefaultLanguage, tr.Language())
	assert.Equal(t, "公历", tr.T(MsgGregorian))
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"农历", 4},
		{"闰二月初一", 10},
		{"2025-01-29", 10},
		{"Ａ", 2}, // fullwidth
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayWidth(tt.in), "DisplayWidth(%q)", tt.in)
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "农历  ", PadRight("农历", 6))
	assert.Equal(t, "ab    ", PadRight("ab", 6))
	assert.Equal(t, "闰二月初一", PadRight("闰二月初一", 4))
}
