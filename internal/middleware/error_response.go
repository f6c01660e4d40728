package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MessageResponse はメッセージのみを返すレスポンスの統一フォーマット。
// ソフト失敗（200）とハード失敗（500）の両方で使用する。
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON は値をJSONとしてレスポンスに書き込む。
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// WriteMessage は {message} 形式のレスポンスを書き込む。
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteInternalServerError は500レスポンスを書き込む。
// エラーの詳細はログのみに記録し、クライアントには汎用メッセージだけを返す。
func WriteInternalServerError(w http.ResponseWriter, r *http.Request, message string, err error) {
	slog.Error(message,
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", RequestIDFromContext(r.Context())),
	)
	WriteMessage(w, http.StatusInternalServerError, message)
}
