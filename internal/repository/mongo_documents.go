package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hitoshi/exercisetracker/internal/model"
)

// userDocument はusersコレクションのドキュメント。
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:       d.ID.Hex(),
		Username: d.Username,
	}
}

// exerciseDocument はexercisesコレクションのドキュメント。
// durationはNaNを保持できるようdoubleで保存する。
type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Username    string             `bson:"username"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        string             `bson:"date"`
}

// logEntryDocument はログ照会時の射影（description, duration, date）。
type logEntryDocument struct {
	Description string  `bson:"description"`
	Duration    float64 `bson:"duration"`
	Date        string  `bson:"date"`
}

func (d logEntryDocument) toModel() model.LogEntry {
	return model.LogEntry{
		Description: d.Description,
		Duration:    model.Minutes(d.Duration),
		Date:        d.Date,
	}
}

// logProjection はログ照会で返すフィールド。
var logProjection = bson.D{
	{Key: "description", Value: 1},
	{Key: "duration", Value: 1},
	{Key: "date", Value: 1},
}

// exerciseIndexes はexercisesコレクションに定義するインデックス。
// ログ照会（userIdの一致 + dateの範囲）に対応する。
var exerciseIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("userId_1_date_1"),
	},
}

// syncIndexes はインデックス定義を作成する。既存の同名インデックスは変更しない。
func syncIndexes(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to sync indexes on %s: %w", coll.Name(), err)
	}
	return nil
}

// toDeleteResult はドライバの削除結果をドメインモデルに変換する。
func toDeleteResult(res *mongo.DeleteResult) *model.DeleteResult {
	if res == nil {
		return &model.DeleteResult{}
	}
	return &model.DeleteResult{
		Acknowledged: true,
		DeletedCount: res.DeletedCount,
	}
}
