package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage      = "postgres:17.5"
	elasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.19.0"
)

// StartPostgres runs a Postgres container with the result schema applied and
// returns its connection string. The test is skipped unless integration tests are enabled.
func StartPostgres(ctx context.Context, tb testing.TB) string {
	tb.Helper()
	SkipUnlessIntegration(tb)

	scripts, err := migrations()
	if err != nil {
		tb.Fatalf("find migrations: %v", err)
	}

	c, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("semsim_test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(scripts...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	terminateOnCleanup(tb, c)
	if err != nil {
		tb.Fatalf("start postgres container: %v", err)
	}

	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("postgres connection string: %v", err)
	}
	return connStr
}

// StartElasticsearch runs a single-node cluster without security and returns its address.
func StartElasticsearch(ctx context.Context, tb testing.TB) string {
	tb.Helper()
	SkipUnlessIntegration(tb)

	c, err := elasticsearch.Run(ctx, elasticsearchImage,
		elasticsearch.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"xpack.security.enabled": "false"}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").
				WithPort("9200").
				WithStartupTimeout(90*time.Second),
		),
	)
	terminateOnCleanup(tb, c)
	if err != nil {
		tb.Fatalf("start elasticsearch container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		tb.Fatalf("elasticsearch host: %v", err)
	}
	port, err := c.MappedPort(ctx, "9200")
	if err != nil {
		tb.Fatalf("elasticsearch port: %v", err)
	}
	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

// migrations lists db/migrations/*.up.sql in apply order.
func migrations() ([]string, error) {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")

	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func terminateOnCleanup(tb testing.TB, c testcontainers.Container) {
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			tb.Logf("terminate container: %v", err)
		}
	})
}
