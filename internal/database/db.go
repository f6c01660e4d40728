package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabaseName は接続URIにもMONGO_DATABASEにもデータベース名がない場合の既定値。
const DefaultDatabaseName = "test"

// DB はプロセス全体で共有するMongoDBクライアントと対象データベースを保持する。
// コネクションプールはクライアントが管理し、起動時に1回だけ生成する。
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// Open はMongoDBクライアントを生成する。
// mongo.Connectはバックグラウンドで接続を確立するため、実際の接続確認にはPingを使用すること。
func Open(ctx context.Context, uri, databaseName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{
		client:   client,
		database: client.Database(ResolveDatabaseName(uri, databaseName)),
	}, nil
}

// Database は操作対象のデータベースを返す。
func (db *DB) Database() *mongo.Database {
	return db.database
}

// Ping はプライマリへの疎通を確認する。ヘルスチェックでも使用する。
func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// Close はクライアントを切断し、コネクションプールを解放する。
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// ResolveDatabaseName は使用するデータベース名を決定する。
// 優先順位: 明示指定 → 接続URIのパス → DefaultDatabaseName
func ResolveDatabaseName(uri, override string) string {
	if override != "" {
		return override
	}
	if cs, err := connstring.ParseAndValidate(uri); err == nil && cs.Database != "" {
		return cs.Database
	}
	return DefaultDatabaseName
}
