// Package user はユーザーディレクトリのドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/exercisetracker/internal/model"
	"github.com/hitoshi/exercisetracker/internal/repository"
)

// Recorder はユーザー操作のメトリクス記録インターフェース。
type Recorder interface {
	RecordUserCreated()
	RecordUsersDeleted(count int64)
}

// Service はユーザー管理のサービス層。
// リクエスト間で状態を持たない。
type Service struct {
	repo     repository.UserRepository
	recorder Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnilでもよい。
func NewService(repo repository.UserRepository, recorder Recorder) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
	}
}

// List は全ユーザーをストレージの自然順で返す。
// ユーザーが存在しない場合は空のスライスを返す（メッセージへの変換はHTTP層の責務）。
func (s *Service) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}

	slog.Debug("users in database", slog.Int("count", len(users)))
	return users, nil
}

// Create は新しいユーザーを作成する。ユーザー名の重複は検査しない。
func (s *Service) Create(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.Create(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordUserCreated()
	}

	slog.Info("user created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// DeleteAll は全ユーザーを無条件に削除する。
// エクササイズはカスケード削除しない。
func (s *Service) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	result, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの一括削除に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordUsersDeleted(result.DeletedCount)
	}

	slog.Info("all users deleted", slog.Int64("deleted_count", result.DeletedCount))
	return result, nil
}

// SyncIndexes はusersコレクションのインデックスを同期する。
func (s *Service) SyncIndexes(ctx context.Context) error {
	return s.repo.SyncIndexes(ctx)
}
