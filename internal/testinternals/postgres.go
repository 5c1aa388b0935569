// Package testinternals starts throwaway dependencies for integration tests.
package testinternals

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/2beens/liftlog/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const testDBName = "liftlog_test"

type Postgres struct {
	Port string
	Pool *pgxpool.Pool

	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
}

// StartPostgres runs a postgres container, waits until it accepts
// connections and applies the schema.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dockerpool run postgres: %w", err)
	}

	pg := &Postgres{
		Port:       resource.GetPort("5432/tcp"),
		dockerPool: dockerPool,
		resource:   resource,
	}
	// container is killed even if the test binary forgets Close
	_ = resource.Expire(300)

	dsn := fmt.Sprintf(
		"postgres://postgres@localhost:%s/%s?sslmode=disable",
		pg.Port, testDBName,
	)
	if err := dockerPool.Retry(func() error {
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return sqlDB.Ping()
	}); err != nil {
		pg.Close()
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pg.Pool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:  "localhost",
		DBPort:  pg.Port,
		DBName:  testDBName,
		SSLMode: "disable",
	})
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := db.Migrate(ctx, pg.Pool); err != nil {
		pg.Close()
		return nil, err
	}

	return pg, nil
}

// Truncate empties all tables between tests.
func (pg *Postgres) Truncate(ctx context.Context) error {
	_, err := pg.Pool.Exec(ctx, `TRUNCATE workout_sets, workouts, bodyweight_entries RESTART IDENTITY;`)
	return err
}

func (pg *Postgres) Close() {
	if pg.Pool != nil {
		pg.Pool.Close()
	}
	if err := pg.dockerPool.Purge(pg.resource); err != nil {
		log.Printf("postgres teardown: %s", err)
	}
}

// ConnectPostgres uses an already running database, POSTGRES_HOST and
// POSTGRES_PORT (defaults localhost:5432), and applies the schema.
func ConnectPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:  host,
		DBPort:  port,
		DBName:  testDBName,
		SSLMode: "disable",
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
