//go:build e2e

package e2e

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"court-grid/cmd/bootstrap"
	"court-grid/cmd/bootstrap/components"
	"court-grid/internal/pkg/config"
	"court-grid/internal/usecase"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container

	rabbitContainerOnce sync.Once
	rabbitTestContainer testcontainers.Container
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// Per test process setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, usecase.Engine, *FakeBackend, config.Config) {
	backend := NewFakeBackend()
	t.Cleanup(backend.Close)

	cfg := config.NewTestConfig()
	cfg.Backend.BaseURL = backend.URL()
	cfg.Feed = RedisFeedConfig(t)

	router, engine, app := buildE2EApp(cfg)
	require.NotNil(t, router, "router setup failed")

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := engine.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("event loop stopped", "error", err.Error())
		}
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		ctx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	return router, engine, backend, cfg
}

// RedisFeedConfig points a feed at the shared Redis container. The channel
// prefix is unique per call so parallel suites never see each other's events.
func RedisFeedConfig(t *testing.T) config.FeedConfig {
	t.Helper()
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)

	info, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "failed to resolve Redis container address")

	return config.FeedConfig{
		Transport:     config.TransportRedis,
		RedisAddr:     fmt.Sprintf("%s:%s", info.Host, info.Port.Port()),
		ChannelPrefix: "e2e_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Buffer:        64,
	}
}

// AMQPFeedConfig points a feed at the shared RabbitMQ container. Each call
// gets its own exchange so suites never share routing keys.
func AMQPFeedConfig(t *testing.T) config.FeedConfig {
	t.Helper()
	startRabbitContainerOnce(t)

	info, err := getContainerHostPort(rabbitTestContainer, "5672/tcp")
	require.NoError(t, err, "failed to resolve RabbitMQ container address")

	return config.FeedConfig{
		Transport:    config.TransportAMQP,
		AMQPURL:      fmt.Sprintf("amqp://guest:guest@%s:%s/", info.Host, info.Port.Port()),
		AMQPExchange: "e2e." + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Buffer:       64,
	}
}

// ------------------------------------------------------------
// Builds the application for E2E tests
// Returns router, engine, and fx.App for proper lifecycle management
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, usecase.Engine, *fx.App) {
	var router *gin.Engine
	var engine usecase.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		components.InfraModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &engine),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	if router == nil {
		panic("fx app started without a router")
	}

	return router, engine, app
}

// ------------------------------------------------------------
// Shared container start helper
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// ------------------------------------------------------------
// Starts the Redis container once per process
// ------------------------------------------------------------
func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Ready to accept connections"),
				wait.ForListeningPort("6379/tcp"),
			).WithDeadline(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 120)
		require.NoError(t, err, "failed to start Redis container")
	})
	require.NotNil(t, redisTestContainer, "Redis container is not running")
}

// ------------------------------------------------------------
// Starts the RabbitMQ container once per process
// ------------------------------------------------------------
func startRabbitContainerOnce(t *testing.T) {
	rabbitContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "rabbitmq:3-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Server startup complete"),
				wait.ForListeningPort("5672/tcp"),
			).WithDeadline(90 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		rabbitTestContainer, err = startGenericContainer(req, 150)
		require.NoError(t, err, "failed to start RabbitMQ container")
	})
	require.NotNil(t, rabbitTestContainer, "RabbitMQ container is not running")
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Common setup for E2E test suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	Engine  usecase.Engine
	Backend *FakeBackend
	Config  config.Config
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	router, engine, backend, cfg := setupE2EEnvironment(t)
	s.Router = router
	s.Engine = engine
	s.Backend = backend
	s.Config = cfg
	require.NotEmpty(t, s.Config, "config missing")
	require.NotNil(t, s.Router, "router setup failed")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	s.Backend.Reset()
}
