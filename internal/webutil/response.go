// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go_vocab_sets/internal/model"
)

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrTranslationUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message shown to the user for err.
// Internal details are never exposed.
func UserMessage(err error) string {
	var appErr *model.AppError
	if errors.As(err, &appErr) && appErr.Detail.Message != "" {
		return appErr.Detail.Message
	}
	switch MapErrorToStatusCode(err) {
	case http.StatusNotFound:
		return "The page you requested was not found."
	case http.StatusBadRequest:
		return "The request was invalid."
	case http.StatusConflict:
		return "The resource already exists."
	case http.StatusUnauthorized:
		return "Please sign in to continue."
	case http.StatusForbidden:
		return "You are not allowed to do that."
	case http.StatusServiceUnavailable:
		return "The translation service is unavailable. Please try again later."
	default:
		return "Something went wrong on our side."
	}
}

// ErrorDetailOf は err から JSON 用の ErrorDetail を作ります。
func ErrorDetailOf(err error) model.ErrorDetail {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return appErr.Detail
	}
	return model.ErrorDetail{
		Code:    strconv.Itoa(MapErrorToStatusCode(err)),
		Message: UserMessage(err),
	}
}

// WantsJSON reports whether the client asked for JSON rather than a page.
func WantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case "application/json":
			return true
		case "text/html":
			return false
		}
	}
	return false
}

// RespondWithError は err を APIErrorResponse として返します
func RespondWithError(w http.ResponseWriter, err error) {
	RespondWithJSON(w, MapErrorToStatusCode(err), model.APIErrorResponse{Error: ErrorDetailOf(err)})
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"failed to build response"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// RespondWithPDF は PDF を返します。download が真なら添付ファイルとして返します。
func RespondWithPDF(w http.ResponseWriter, filename string, body []byte, download bool) {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
