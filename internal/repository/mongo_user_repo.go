package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hitoshi/exercisetracker/internal/model"
)

// MongoUserRepo はMongoDBを使用したユーザーリポジトリ。
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo はMongoUserRepoを生成する。
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(UsersCollection)}
}

// FindByID は指定IDのユーザーを取得する。
// 見つからない場合はnilを返す。IDがObjectIDとして解釈できない場合はエラーを返す。
func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID %q: %w", id, err)
	}

	var doc userDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	user := doc.toModel()
	return &user, nil
}

// FindAll は全ユーザーをストレージの自然順で返す。
func (r *MongoUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]model.User, len(docs))
	for i, doc := range docs {
		users[i] = doc.toModel()
	}
	return users, nil
}

// Create はユーザーを作成する。
func (r *MongoUserRepo) Create(ctx context.Context, username string) (*model.User, error) {
	doc := userDocument{
		ID:       primitive.NewObjectID(),
		Username: username,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user := doc.toModel()
	return &user, nil
}

// DeleteAll は全ユーザーを削除する。
func (r *MongoUserRepo) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to delete users: %w", err)
	}
	return toDeleteResult(res), nil
}

// SyncIndexes はusersコレクションのインデックスを同期する。
// usersは_id以外のインデックスを持たない。
func (r *MongoUserRepo) SyncIndexes(ctx context.Context) error {
	return syncIndexes(ctx, r.coll, nil)
}

// compile-time interface check
var _ UserRepository = (*MongoUserRepo)(nil)
