// Package exercise はエクササイズログのドメインロジックを提供する。
package exercise

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/exercisetracker/internal/model"
	"github.com/hitoshi/exercisetracker/internal/repository"
)

// UserFinder はユーザー存在確認のインターフェース。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Recorder はエクササイズ操作のメトリクス記録インターフェース。
type Recorder interface {
	RecordExerciseAdded()
	RecordExercisesDeleted(count int64)
}

// AddInput はエクササイズ追加の入力。値はすべてリクエストから受け取った文字列のまま渡す。
type AddInput struct {
	Description string
	Duration    string
	Date        string
}

// LogParams はログ照会の入力。空文字は未指定として扱う。
type LogParams struct {
	From  string
	To    string
	Limit string
}

// Service はエクササイズ記録のサービス層。
type Service struct {
	users     UserFinder
	exercises repository.ExerciseRepository
	recorder  Recorder
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnilでもよい。
func NewService(users UserFinder, exercises repository.ExerciseRepository, recorder Recorder) *Service {
	return &Service{
		users:     users,
		exercises: exercises,
		recorder:  recorder,
		now:       time.Now,
	}
}

// SetClock は現在時刻の取得関数を差し替える。テスト用。
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Add はユーザーにエクササイズを追加する。
// ユーザーが存在しない場合はmodel.ErrUserNotFoundを返し、何も保存しない。
// durationは整数に変換し、失敗した場合はNaNのまま保存する。
// dateが空の場合は現在のUTC日付を使用する。
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (*model.Exercise, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	date := in.Date
	if date == "" {
		date = model.Today(s.now())
	}

	exercise := &model.Exercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: in.Description,
		Duration:    model.ParseMinutes(in.Duration),
		Date:        date,
	}

	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("エクササイズの保存に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordExerciseAdded()
	}

	slog.Info("exercise added",
		slog.String("user_id", user.ID),
		slog.String("exercise_id", exercise.ID),
		slog.String("date", exercise.Date),
	)
	return exercise, nil
}

// Log はユーザーのエクササイズログを返す。
// fromの既定値は1970-01-01、toの既定値は現在のUTC日付、limitの既定値は0（件数制限なし）。
func (s *Service) Log(ctx context.Context, userID string, params LogParams) (*model.ExerciseLog, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	query := s.buildQuery(params)

	slog.Debug("looking for exercises",
		slog.String("user_id", userID),
		slog.String("from", query.From),
		slog.String("to", query.To),
		slog.Int64("limit", query.Limit),
	)

	entries, err := s.exercises.FindLog(ctx, user.ID, query)
	if err != nil {
		return nil, fmt.Errorf("エクササイズログの取得に失敗しました: %w", err)
	}

	return &model.ExerciseLog{
		User:    *user,
		Entries: entries,
	}, nil
}

// buildQuery は未指定の照会条件に既定値を適用する。
func (s *Service) buildQuery(params LogParams) model.LogQuery {
	query := model.LogQuery{
		From:  params.From,
		To:    params.To,
		Limit: model.ParseLimit(params.Limit),
	}
	if query.From == "" {
		query.From = model.EpochDate
	}
	if query.To == "" {
		query.To = model.Today(s.now())
	}
	return query
}

// DeleteAll は全エクササイズを無条件に削除する。
func (s *Service) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	result, err := s.exercises.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("エクササイズの一括削除に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordExercisesDeleted(result.DeletedCount)
	}

	slog.Info("all exercises deleted", slog.Int64("deleted_count", result.DeletedCount))
	return result, nil
}

// SyncIndexes はexercisesコレクションのインデックスを同期する。
func (s *Service) SyncIndexes(ctx context.Context) error {
	return s.exercises.SyncIndexes(ctx)
}
