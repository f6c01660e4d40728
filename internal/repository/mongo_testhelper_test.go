package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoPort = "27017"

var (
	sharedClientOnce sync.Once
	sharedClient     *mongo.Client
	sharedClientErr  error
)

// testMongoURI はテスト用のMongoDB接続URIを返す。
// 環境変数 TEST_MONGODB_URI が設定されていればそれを使用し、
// 未設定の場合はtestcontainersでMongoDBコンテナを起動する。
func testMongoURI(ctx context.Context) (string, error) {
	if uri := os.Getenv("TEST_MONGODB_URI"); uri != "" {
		return uri, nil
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{mongoPort + "/tcp"},
			WaitingFor:   wait.ForListeningPort(mongoPort + "/tcp"),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, mongoPort)
	if err != nil {
		return "", fmt.Errorf("failed to get container port: %w", err)
	}

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}

// setupTestDatabase はテストごとに独立したデータベースを返す。
// MongoDBに接続できない場合はテストをスキップする。
func setupTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	if os.Getenv("TEST_MONGODB_URI") == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	sharedClientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		uri, err := testMongoURI(ctx)
		if err != nil {
			sharedClientErr = err
			return
		}

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			sharedClientErr = err
			return
		}
		if err := client.Ping(ctx, nil); err != nil {
			sharedClientErr = err
			return
		}
		sharedClient = client
	})

	if sharedClientErr != nil {
		t.Skipf("テスト用MongoDBに接続できません（スキップ）: %v", sharedClientErr)
	}

	name := "test_" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	if len(name) > 60 {
		name = name[:60]
	}
	db := sharedClient.Database(name)

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
	})

	return db
}
