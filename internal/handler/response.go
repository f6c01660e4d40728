package handler

import (
	"errors"
	"net/http"

	"github.com/hitoshi/exercisetracker/internal/middleware"
	"github.com/hitoshi/exercisetracker/internal/model"
)

// userNotFoundMessage は指定IDのユーザーが存在しない場合のメッセージ（HTTP 200で返す）。
const userNotFoundMessage = "There are no users with that ID in the database!"

// deleteResultResponse は一括削除結果のレスポンス。
type deleteResultResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// deleteResponse は一括削除操作のレスポンス。
type deleteResponse struct {
	Message string               `json:"message"`
	Result  deleteResultResponse `json:"result"`
}

func toDeleteResponse(message string, result *model.DeleteResult) deleteResponse {
	return deleteResponse{
		Message: message,
		Result: deleteResultResponse{
			Acknowledged: result.Acknowledged,
			DeletedCount: result.DeletedCount,
		},
	}
}

// handleServiceError はサービス層のエラーをレスポンスに変換する。
// ユーザー不在はソフト失敗として200とメッセージを返し、それ以外は500とfailMessageを返す。
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, failMessage string) {
	if errors.Is(err, model.ErrUserNotFound) {
		middleware.WriteMessage(w, http.StatusOK, userNotFoundMessage)
		return
	}
	middleware.WriteInternalServerError(w, r, failMessage, err)
}

// writeInvalidBody はボディ解析失敗時の400レスポンスを書き込む。
func writeInvalidBody(w http.ResponseWriter) {
	middleware.WriteMessage(w, http.StatusBadRequest, invalidBodyMessage)
}
