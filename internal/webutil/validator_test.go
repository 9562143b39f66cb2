package webutil

import (
	"errors"
	"strings"
	"testing"

	"go_vocab_sets/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name       string
		rules      EntityRules
		raw        map[string]string
		want       map[string]string
		wantField  string
		wantReason string
	}{
		{
			name:  "正常系: 漢字の単語",
			rules: EntryRules,
			raw:   map[string]string{"word": "你好"},
			want:  map[string]string{"word": "你好"},
		},
		{
			name:  "正常系: 前後の空白は除去される",
			rules: SetRules,
			raw:   map[string]string{"title": "  HSK 1  "},
			want:  map[string]string{"title": "HSK 1"},
		},
		{
			name:  "正常系: 10文字ちょうど",
			rules: EntryRules,
			raw:   map[string]string{"word": strings.Repeat("字", model.WordMaxLen)},
			want:  map[string]string{"word": strings.Repeat("字", model.WordMaxLen)},
		},
		{
			name:       "異常系: 空の単語",
			rules:      EntryRules,
			raw:        map[string]string{"word": "   "},
			wantField:  "word",
			wantReason: "required",
		},
		{
			name:       "異常系: 11文字の単語",
			rules:      EntryRules,
			raw:        map[string]string{"word": strings.Repeat("字", model.WordMaxLen+1)},
			wantField:  "word",
			wantReason: "max",
		},
		{
			name:       "異常系: 漢字以外を含む",
			rules:      EntryRules,
			raw:        map[string]string{"word": "hello"},
			wantField:  "word",
			wantReason: "han",
		},
		{
			name:       "異常系: タイトル未入力",
			rules:      SetRules,
			raw:        map[string]string{},
			wantField:  "title",
			wantReason: "required",
		},
		{
			name:       "異常系: 翻訳が長すぎる",
			rules:      EditRules,
			raw:        map[string]string{"translation": strings.Repeat("a", model.TranslationMaxLen+1)},
			wantField:  "translation",
			wantReason: "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFields(tt.rules, tt.raw)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidInput))
			var appErr *model.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantField, appErr.Detail.Field)
			assert.Equal(t, tt.wantReason, appErr.Detail.Reason)
			assert.NotEmpty(t, appErr.Detail.Message)
		})
	}
}

func TestValidateFields_MaxMessage(t *testing.T) {
	_, err := ValidateFields(EntryRules, map[string]string{"word": strings.Repeat("字", 11)})
	require.Error(t, err)
	assert.Equal(t, "Word must be at most 10 characters.", UserMessage(err))
}

func TestNormalize(t *testing.T) {
	// "e" + 結合アキュート -> "é"
	assert.Equal(t, "\u00e9", Normalize(" e\u0301 "))
}
