// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when MongoDB is unavailable.
package handlers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"musubi/internal/auth"
	"musubi/internal/database"
	"musubi/internal/ratelimit"
	"musubi/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a throwaway MongoDB database, ensures indexes, and drops it
// on cleanup. Skips the test when no MongoDB is reachable.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := envOr("MONGODB_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("skipping: cannot connect to mongodb: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("skipping: mongodb not reachable: %v", err)
	}

	db := client.Database(fmt.Sprintf("musubi_handlers_test_%d", time.Now().UnixNano()))
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// testEnv bundles the handler groups wired against a throwaway database.
type testEnv struct {
	tokens    *auth.TokenService
	auth      *Auth
	config    *Config
	projects  *Projects
	messages  *Messages
	analytics *Analytics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testDB(t)

	tokens, err := auth.NewTokenService(testSessionKey, auth.SessionTTL)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	configStore := store.NewSiteConfigStore(db)
	projectStore := store.NewProjectStore(db)
	messageStore := store.NewMessageStore(db)
	analyticsStore := store.NewAnalyticsStore(db)
	limiter := ratelimit.NewInboxLimiter(messageStore, ratelimit.DefaultWindow)

	return &testEnv{
		tokens:    tokens,
		auth:      NewAuth(auth.NewCredentialVerifier(testTOTPSecret), tokens),
		config:    NewConfig(configStore),
		projects:  NewProjects(projectStore),
		messages:  NewMessages(messageStore, limiter),
		analytics: NewAnalytics(analyticsStore, messageStore, projectStore),
	}
}
