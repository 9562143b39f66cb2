package webutil

import (
	"fmt"
	"net/http"
	"strings"

	"go_vocab_sets/internal/model"
)

// maxFormBytes はフォーム送信の上限サイズです。
const maxFormBytes = 64 << 10

// DecodeForm はフォームを解析し、指定したフィールドの値を返します。
func DecodeForm(w http.ResponseWriter, r *http.Request, fields ...string) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("webutil.DecodeForm: %w: %v", model.ErrInvalidInput, err)
	}
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = r.PostFormValue(field)
	}
	return values, nil
}

// ParseDeleteDecision は削除確認フォームの肯定トークンを判定します。
// "Yes" ボタン、または confirm=yes のときだけ DeleteConfirmed になります。
func ParseDeleteDecision(r *http.Request) model.DeleteDecision {
	if r.Method != http.MethodPost {
		return model.DeletePending
	}
	if err := r.ParseForm(); err != nil {
		return model.DeletePending
	}
	if _, ok := r.PostForm["Yes"]; ok {
		return model.DeleteConfirmed
	}
	if strings.EqualFold(r.PostFormValue("confirm"), "yes") {
		return model.DeleteConfirmed
	}
	return model.DeletePending
}

// ParseBoolFlag は "1", "true", "yes", "on" を真として扱います。
func ParseBoolFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
