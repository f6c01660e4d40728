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

// MongoExerciseRepo はMongoDBを使用したエクササイズリポジトリ。
type MongoExerciseRepo struct {
	coll *mongo.Collection
}

// NewMongoExerciseRepo はMongoExerciseRepoを生成する。
func NewMongoExerciseRepo(db *mongo.Database) *MongoExerciseRepo {
	return &MongoExerciseRepo{coll: db.Collection(ExercisesCollection)}
}

// Create はエクササイズを作成し、採番したIDを設定する。
func (r *MongoExerciseRepo) Create(ctx context.Context, exercise *model.Exercise) error {
	if err := exercise.Validate(); err != nil {
		return err
	}

	doc := exerciseDocument{
		ID:          primitive.NewObjectID(),
		UserID:      exercise.UserID,
		Username:    exercise.Username,
		Description: exercise.Description,
		Duration:    float64(exercise.Duration),
		Date:        exercise.Date,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("エクササイズの作成に失敗しました: %w", err)
	}

	exercise.ID = doc.ID.Hex()
	return nil
}

// FindLog はユーザーのエクササイズをdateの範囲で絞り込んで返す。
// dateはYYYY-MM-DD文字列の辞書順で比較する。並び順はストレージの自然順。
func (r *MongoExerciseRepo) FindLog(ctx context.Context, userID string, query model.LogQuery) ([]model.LogEntry, error) {
	filter := bson.D{
		{Key: "userId", Value: userID},
		{Key: "date", Value: bson.D{
			{Key: "$gte", Value: query.From},
			{Key: "$lte", Value: query.To},
		}},
	}

	opts := options.Find().SetProjection(logProjection)
	// limit=0は「件数制限なし」。ドライバの既定値に頼らず明示的に指定しない。
	if query.Limit != 0 {
		opts.SetLimit(query.Limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("エクササイズの検索に失敗しました: %w", err)
	}

	var docs []logEntryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("エクササイズのデコードに失敗しました: %w", err)
	}

	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = doc.toModel()
	}
	return entries, nil
}

// DeleteAll は全エクササイズを削除する。
func (r *MongoExerciseRepo) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("エクササイズの一括削除に失敗しました: %w", err)
	}
	return toDeleteResult(res), nil
}

// SyncIndexes はexercisesコレクションのインデックスを同期する。
func (r *MongoExerciseRepo) SyncIndexes(ctx context.Context) error {
	return syncIndexes(ctx, r.coll, exerciseIndexes)
}

// compile-time interface check
var _ ExerciseRepository = (*MongoExerciseRepo)(nil)
