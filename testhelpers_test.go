//go:build integration

package petfriends_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/config"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/database"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/events"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/repository"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/server"
	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

const (
	testEmail    = "qa@petfriends.test"
	testPassword = "petfriends-qa"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// apiStack holds a running API wired to the containers and a client for it.
type apiStack struct {
	Client  *petfriends.Client
	Key     petfriends.AuthKey
	Cleanup func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a migrated GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	// Start PostgreSQL container with log-based wait strategy.
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_petfriends",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := config.DatabaseConfig{
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_petfriends",
		SSLMode:  "disable",
	}

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(dbConfig, logger)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.Migrate(db, repository.Models(), logger))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, events.TopicPetEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupAPIStack serves the API on the GORM repositories with a Kafka publisher
// and returns an authenticated client.
func setupAPIStack(t *testing.T, infra *testInfra) *apiStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	api, err := server.New(server.Deps{
		Accounts:    repository.NewGormAccountRepository(infra.DB),
		Pets:        repository.NewGormPetRepository(infra.DB),
		Publisher:   events.NewKafkaPublisher(infra.KafkaBrokers, events.TopicPetEvents, logger),
		HealthCheck: func() error { return database.Ping(infra.DB) },
		Logger:      logger,
	})
	require.NoError(t, err)
	require.NoError(t, api.Seed(context.Background(), []config.Credentials{
		{Email: testEmail, Password: testPassword},
	}))

	ts := httptest.NewServer(api.Router)
	client := petfriends.New(ts.URL, petfriends.WithLogger(logger))

	resp, err := client.GetAPIKey(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	key, ok := resp.AuthKey()
	require.True(t, ok, "auth failed: %s", resp.Text())

	return &apiStack{
		Client: client,
		Key:    key,
		Cleanup: func() {
			ts.Close()
			_ = api.Close()
		},
	}
}

// waitForPetStatus polls the pets table until the status matches.
func waitForPetStatus(t *testing.T, db *gorm.DB, petID uuid.UUID, expectedStatus string, timeout time.Duration) repository.PetModel {
	t.Helper()
	var result repository.PetModel
	require.Eventually(t, func() bool {
		var model repository.PetModel
		err := db.Preload("Photo").Where("id = ?", petID).First(&model).Error
		if err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "pet did not transition to %s", expectedStatus)
	return result
}

// consumeEvents reads pet events until want of them have the expected type for petID.
func consumeEvents(t *testing.T, brokers []string, petID uuid.UUID, expectedType string, want int, timeout time.Duration) []events.PetEventData {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	consumer := events.NewConsumer(brokers, groupID, events.TopicPetEvents, zap.NewNop())
	defer func() { _ = consumer.Close() }()

	errDone := errors.New("done")
	var found []events.PetEventData
	err := consumer.Consume(ctx, func(_ context.Context, evt events.PetEvent) error {
		if evt.Type != expectedType {
			return nil
		}
		data, err := evt.ParseData()
		if err != nil || data.PetID != petID {
			return nil
		}
		found = append(found, data)
		if len(found) == want {
			return errDone
		}
		return nil
	})
	if !errors.Is(err, errDone) {
		t.Fatalf("timed out waiting for %d %q events for pet %s: %v", want, expectedType, petID, err)
	}
	return found
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
