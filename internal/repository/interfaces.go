// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/exercisetracker/internal/model"
)

// コレクション名
const (
	UsersCollection     = "users"
	ExercisesCollection = "exercises"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。
	// 見つからない場合、およびIDの形式が不正な場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindAll は全ユーザーをストレージの自然順で返す。
	FindAll(ctx context.Context) ([]model.User, error)

	// Create はユーザーを作成する。IDはストレージ層が採番する。
	// ユーザー名の重複は許容する。
	Create(ctx context.Context, username string) (*model.User, error)

	// DeleteAll は全ユーザーを削除する。関連するエクササイズは削除しない。
	DeleteAll(ctx context.Context) (*model.DeleteResult, error)

	// SyncIndexes はコレクションのインデックスを定義に同期する。冪等。
	SyncIndexes(ctx context.Context) error
}

// ExerciseRepository はエクササイズデータの永続化インターフェース。
type ExerciseRepository interface {
	// Create はエクササイズを作成し、採番したIDをexercise.IDに設定する。
	// 必須フィールドが欠けている場合はmodel.ErrValidationをラップしたエラーを返す。
	Create(ctx context.Context, exercise *model.Exercise) error

	// FindLog はユーザーのエクササイズをdateの範囲（両端を含む）で絞り込み、
	// description、duration、dateのみを返す。query.Limitが0の場合は件数制限なし。
	FindLog(ctx context.Context, userID string, query model.LogQuery) ([]model.LogEntry, error)

	// DeleteAll は全エクササイズを削除する。
	DeleteAll(ctx context.Context) (*model.DeleteResult, error)

	// SyncIndexes はコレクションのインデックスを定義に同期する。冪等。
	SyncIndexes(ctx context.Context) error
}
