package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/exercisetracker/internal/exercise"
	"github.com/hitoshi/exercisetracker/internal/middleware"
	"github.com/hitoshi/exercisetracker/internal/model"
)

const (
	addExerciseFailedMessage     = "Exercise creation failed!"
	getLogFailedMessage          = "Error retrieving user log!"
	exercisesDeletedMessage      = "All exercises have been deleted!"
	deleteExercisesFailedMessage = "Deleting all exercises failed!"
)

// ExerciseServiceInterface はエクササイズハンドラーが必要とするサービスインターフェース。
type ExerciseServiceInterface interface {
	// Add はユーザーにエクササイズを追加する。ユーザー不在時はmodel.ErrUserNotFoundを返す。
	Add(ctx context.Context, userID string, in exercise.AddInput) (*model.Exercise, error)
	// Log はユーザーのエクササイズログを返す。ユーザー不在時はmodel.ErrUserNotFoundを返す。
	Log(ctx context.Context, userID string, params exercise.LogParams) (*model.ExerciseLog, error)
	// DeleteAll は全エクササイズを削除する。
	DeleteAll(ctx context.Context) (*model.DeleteResult, error)
}

// ExerciseHandler はエクササイズ記録のHTTPハンドラー。
type ExerciseHandler struct {
	service ExerciseServiceInterface
}

// NewExerciseHandler はExerciseHandlerを生成する。
func NewExerciseHandler(service ExerciseServiceInterface) *ExerciseHandler {
	return &ExerciseHandler{
		service: service,
	}
}

// addExerciseResponse はエクササイズ追加のレスポンス。
// _idにはエクササイズではなくユーザーのIDを入れる（既存クライアントとの互換のため）。
type addExerciseResponse struct {
	Username    string        `json:"username"`
	Description string        `json:"description"`
	Duration    model.Minutes `json:"duration"`
	Date        string        `json:"date"`
	ID          string        `json:"_id"`
}

// logEntryResponse はログの1件分。
type logEntryResponse struct {
	Description string        `json:"description"`
	Duration    model.Minutes `json:"duration"`
	Date        string        `json:"date"`
}

// logResponse はエクササイズログのレスポンス。
type logResponse struct {
	ID       string             `json:"_id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []logEntryResponse `json:"log"`
}

// AddExercise はユーザーにエクササイズを追加する。
// POST /api/users/{_id}/exercises
func (h *ExerciseHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	slog.Info("add a new exercise")

	userID := chi.URLParam(r, "_id")

	body, err := parseBody(w, r)
	if err != nil {
		writeInvalidBody(w)
		return
	}

	ex, err := h.service.Add(r.Context(), userID, exercise.AddInput{
		Description: body.Get("description"),
		Duration:    body.Get("duration"),
		Date:        body.Get("date"),
	})
	if err != nil {
		handleServiceError(w, r, err, addExerciseFailedMessage)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, addExerciseResponse{
		Username:    ex.Username,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        model.FormatLongDate(ex.Date),
		ID:          ex.UserID,
	})
}

// GetLog はユーザーのエクササイズログを返す。
// GET /api/users/{_id}/logs?from=&to=&limit=
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	slog.Info("get the log from a user")

	userID := chi.URLParam(r, "_id")
	q := r.URL.Query()

	log, err := h.service.Log(r.Context(), userID, exercise.LogParams{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: q.Get("limit"),
	})
	if err != nil {
		handleServiceError(w, r, err, getLogFailedMessage)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, toLogResponse(log))
}

// DeleteExercises は全エクササイズを削除する。
// GET /api/exercises/delete
func (h *ExerciseHandler) DeleteExercises(w http.ResponseWriter, r *http.Request) {
	slog.Info("delete all exercises")

	result, err := h.service.DeleteAll(r.Context())
	if err != nil {
		handleServiceError(w, r, err, deleteExercisesFailedMessage)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, toDeleteResponse(exercisesDeletedMessage, result))
}

// toLogResponse は日付を長い形式に変換してレスポンスを組み立てる。
// countは常に返却するエントリ数と一致する。
func toLogResponse(log *model.ExerciseLog) logResponse {
	entries := make([]logEntryResponse, 0, len(log.Entries))
	for _, e := range log.Entries {
		entries = append(entries, logEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        model.FormatLongDate(e.Date),
		})
	}

	return logResponse{
		ID:       log.User.ID,
		Username: log.User.Username,
		Count:    len(entries),
		Log:      entries,
	}
}
