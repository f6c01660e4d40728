package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/exercisetracker/internal/middleware"
	"github.com/hitoshi/exercisetracker/internal/model"
)

const (
	noUsersMessage           = "There are no users in the database!"
	listUsersFailedMessage   = "Getting all users failed!"
	createUserFailedMessage  = "User creation failed!"
	usersDeletedMessage      = "All users have been deleted!"
	deleteUsersFailedMessage = "Deleting all users failed!"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// List は全ユーザーを返す。
	List(ctx context.Context) ([]model.User, error)
	// Create はユーザーを作成する。ユーザー名の重複は許可する。
	Create(ctx context.Context, username string) (*model.User, error)
	// DeleteAll は全ユーザーを削除する。
	DeleteAll(ctx context.Context) (*model.DeleteResult, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// userResponse はユーザー一覧の要素。
type userResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// createUserResponse はユーザー作成のレスポンス。
type createUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ListUsers は全ユーザーを返す。
// ユーザーが1人もいない場合は空配列ではなくメッセージを返す。
// GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	slog.Info("get all users")

	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err, listUsersFailedMessage)
		return
	}

	if len(users) == 0 {
		middleware.WriteMessage(w, http.StatusOK, noUsersMessage)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{ID: u.ID, Username: u.Username})
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// CreateUser はユーザーを作成する。
// POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	slog.Info("create a new user")

	body, err := parseBody(w, r)
	if err != nil {
		writeInvalidBody(w)
		return
	}

	user, err := h.service.Create(r.Context(), body.Get("username"))
	if err != nil {
		handleServiceError(w, r, err, createUserFailedMessage)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, createUserResponse{
		Username: user.Username,
		ID:       user.ID,
	})
}

// DeleteUsers は全ユーザーを削除する。エクササイズは削除しない。
// GET /api/users/delete
func (h *UserHandler) DeleteUsers(w http.ResponseWriter, r *http.Request) {
	slog.Info("delete all users")

	result, err := h.service.DeleteAll(r.Context())
	if err != nil {
		handleServiceError(w, r, err, deleteUsersFailedMessage)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, toDeleteResponse(usersDeletedMessage, result))
}
