package webutil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go_vocab_sets/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("repo: %w", model.ErrNotFound), http.StatusNotFound},
		{model.NewValidationError("word", "han", "bad"), http.StatusBadRequest},
		{model.ErrConflict, http.StatusConflict},
		{model.ErrUnauthorized, http.StatusUnauthorized},
		{model.ErrForbidden, http.StatusForbidden},
		{model.ErrTranslationUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err), tt.err.Error())
	}
}

func TestUserMessage_HidesInternalDetails(t *testing.T) {
	msg := UserMessage(errors.New("pq: connection refused at 10.0.0.3"))
	assert.NotContains(t, msg, "10.0.0.3")
}

func TestRespondWithPDF(t *testing.T) {
	body := []byte("%PDF-1.3 test")

	rec := httptest.NewRecorder()
	RespondWithPDF(rec, "hsk-1.pdf", body, false)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "inline"))
	assert.Equal(t, body, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	RespondWithPDF(rec, "hsk-1.pdf", body, true)
	assert.Equal(t, `attachment; filename=hsk-1.pdf`, rec.Header().Get("Content-Disposition"))
}

func TestParseDeleteDecision(t *testing.T) {
	tests := []struct {
		name   string
		method string
		form   url.Values
		want   model.DeleteDecision
	}{
		{"GET は確認画面", http.MethodGet, nil, model.DeletePending},
		{"Yes ボタン", http.MethodPost, url.Values{"Yes": {"Yes"}}, model.DeleteConfirmed},
		{"confirm=yes", http.MethodPost, url.Values{"confirm": {"YES"}}, model.DeleteConfirmed},
		{"No ボタン", http.MethodPost, url.Values{"No": {"No"}}, model.DeletePending},
		{"空の POST", http.MethodPost, url.Values{}, model.DeletePending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/s/delete", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			assert.Equal(t, tt.want, ParseDeleteDecision(req))
		})
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, "info", "Set created.")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	flash := PopFlash(rec, req)
	require.NotNil(t, flash)
	assert.Equal(t, "Set created.", flash.Message)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/json", true},
		{"text/html,application/xhtml+xml,application/json;q=0.9", false},
		{"application/json; charset=utf-8, text/html", true},
		{"*/*", false},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept", tt.accept)
			assert.Equal(t, tt.want, WantsJSON(r))
		})
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, fmt.Errorf("gormSetRepository.FindBySlug: %w", model.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"404","message":"The page you requested was not found."}}`, rec.Body.String())

	detail := ErrorDetailOf(model.NewValidationError("title", "required", "Title is required."))
	assert.Equal(t, model.ErrorDetail{Code: "VALIDATION_ERROR", Message: "Title is required.", Field: "title", Reason: "required"}, detail)
}
