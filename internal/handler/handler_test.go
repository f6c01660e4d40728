package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/exercisetracker/internal/exercise"
	"github.com/hitoshi/exercisetracker/internal/model"
)

// --- モック定義 ---

// mockUserService はUserServiceInterfaceのモック実装。
type mockUserService struct {
	listFn      func(ctx context.Context) ([]model.User, error)
	createFn    func(ctx context.Context, username string) (*model.User, error)
	deleteAllFn func(ctx context.Context) (*model.DeleteResult, error)
}

func (m *mockUserService) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserService) Create(ctx context.Context, username string) (*model.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username)
	}
	return &model.User{ID: testUserID, Username: username}, nil
}

func (m *mockUserService) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx)
	}
	return &model.DeleteResult{Acknowledged: true}, nil
}

// mockExerciseService はExerciseServiceInterfaceのモック実装。
type mockExerciseService struct {
	addFn       func(ctx context.Context, userID string, in exercise.AddInput) (*model.Exercise, error)
	logFn       func(ctx context.Context, userID string, params exercise.LogParams) (*model.ExerciseLog, error)
	deleteAllFn func(ctx context.Context) (*model.DeleteResult, error)
}

func (m *mockExerciseService) Add(ctx context.Context, userID string, in exercise.AddInput) (*model.Exercise, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, in)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockExerciseService) Log(ctx context.Context, userID string, params exercise.LogParams) (*model.ExerciseLog, error) {
	if m.logFn != nil {
		return m.logFn(ctx, userID, params)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockExerciseService) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx)
	}
	return &model.DeleteResult{Acknowledged: true}, nil
}

const testUserID = "64b7f0c2a1b2c3d4e5f60718"

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// decodeObject はレスポンスボディをJSONオブジェクトとして読み取るヘルパー。
func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v\nraw: %s", err, w.Body.String())
	}
	return result
}

// assertMessage はレスポンスが {message} のみであることを検証するヘルパー。
func assertMessage(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantMessage string) {
	t.Helper()
	if w.Code != wantStatus {
		t.Errorf("status = %d, want %d", w.Code, wantStatus)
	}
	body := decodeObject(t, w)
	if body["message"] != wantMessage {
		t.Errorf("message = %q, want %q", body["message"], wantMessage)
	}
	if len(body) != 1 {
		t.Errorf("response should only contain message, got %v", body)
	}
}
