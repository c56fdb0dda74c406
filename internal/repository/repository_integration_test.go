//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectionTimeout = 3 * time.Second

const (
	pgTestUser     = "test"
	pgTestPassword = "test"
	pgTestDB       = "crm"
)

const (
	mongoTestUser     = "test"
	mongoTestPassword = "test"
	mongoTestDB       = "crm"
)

var pgPool *pgxpool.Pool
var mongoClient *mongo.Client

func TestMain(m *testing.M) {
	// build docker pool
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		logrus.Fatalf("failed to create pool - %v", err)
	}

	if err := dockerPool.Client.Ping(); err != nil {
		logrus.Fatalf("failed to connect to docker - %v", err)
	}

	// start postgres
	postgres, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14-alpine",
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", pgTestUser),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", pgTestPassword),
			fmt.Sprintf("POSTGRES_DB=%s", pgTestDB),
		},
	})
	if err != nil {
		logrus.Fatalf("failed to start postgresql - %v", err)
	}

	// connect to postgres
	pgURI := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable", pgTestUser, pgTestPassword, postgres.GetPort("5432/tcp"), pgTestDB)
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		pgPool, err = pgxpool.Connect(ctx, pgURI)
		if err != nil {
			return err
		}
		return pgPool.Ping(ctx)
	})
	if err != nil {
		logrus.Fatalf("failed to establish connection to postgresql - %v", err)
	}

	// start mongo
	mongodb, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "5.0",
		Env: []string{
			fmt.Sprintf("MONGO_INITDB_ROOT_USERNAME=%s", mongoTestUser),
			fmt.Sprintf("MONGO_INITDB_ROOT_PASSWORD=%s", mongoTestPassword),
		},
	})
	if err != nil {
		logrus.Fatalf("failed to start mongodb - %v", err)
	}

	// connect to mongo
	mongoURI := fmt.Sprintf("mongodb://%s:%s@localhost:%s/?maxPoolSize=10", mongoTestUser, mongoTestPassword, mongodb.GetPort("27017/tcp"))
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			return err
		}
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		logrus.Fatalf("failed to establish connection to mongodb - %v", err)
	}

	// start tests
	code := m.Run()

	pgPool.Close()
	_ = mongoClient.Disconnect(context.Background())

	// purge postgresql
	if err := dockerPool.Purge(postgres); err != nil {
		logrus.Fatalf("failed to purge postgresql - %v", err)
	}

	// purge mongodb
	if err := dockerPool.Purge(mongodb); err != nil {
		logrus.Fatalf("failed to purge mongodb - %v", err)
	}

	os.Exit(code)
}

func TestPostgresCustomerRps(t *testing.T) {
	customerRps := NewPostgresCustomerRepository(pgPool)
	t.Log("running tests for postgres")
	testCustomerRps(t, customerRps)
}

func TestMongoCustomerRps(t *testing.T) {
	customerRps := NewMongoCustomerRepository(mongoClient, mongoTestDB)
	t.Log("running tests for mongo")
	testCustomerRps(t, customerRps)
}
