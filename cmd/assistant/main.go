// cmd/assistant/main.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"assistant-agents/internal/agent"
	"assistant-agents/internal/bus"
	"assistant-agents/internal/capabilities/calendar"
	"assistant-agents/internal/capabilities/conversational"
	"assistant-agents/internal/capabilities/email"
	"assistant-agents/internal/capabilities/social"
	"assistant-agents/internal/capabilities/weather"
	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/aws"
	"assistant-agents/internal/common/config"
	"assistant-agents/internal/common/database"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/observability"
	"assistant-agents/internal/evaluator"
	"assistant-agents/internal/fusion"
	"assistant-agents/internal/history"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Optional providers: each degrades the owning capability when
	// absent, so only configured ones are dialed.

	var redisClient *database.RedisClient
	if cfg.Providers.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Providers.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	var eventStore calendar.EventStore = calendar.NewMemoryStore()
	if cfg.Providers.Calendar.Postgres.Host != "" {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Providers.Calendar.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		eventStore = calendar.NewPostgresStore(pg)
		zapLog.Info("PostgreSQL connected successfully")
	}

	var indexer agent.DecisionIndexer
	if cfg.Providers.Elasticsearch.Enabled() {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Providers.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		indexer = history.NewIndexer(esClient, cfg.Providers.Elasticsearch.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	}

	var emailSender email.Sender
	if cfg.Providers.Email.Region != "" {
		sesClient, err := aws.NewSESClient(ctx, cfg.Providers.Email.Region)
		if err != nil {
			zapLog.Warn("SES client init failed, email capability degrades to preview", zap.Error(err))
		} else {
			emailSender = sesClient
		}
	}

	var socialPublisher social.Publisher
	if cfg.Providers.Social.Region != "" {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Providers.Social.Region)
		if err != nil {
			zapLog.Warn("SNS client init failed, social capability degrades to preview", zap.Error(err))
		} else {
			socialPublisher = snsClient
		}
	}

	// --- Register capabilities ---

	registry := capability.NewRegistry()
	invoker := capability.NewInvoker(log)

	weatherCap := weather.NewHandler(
		weather.ServiceDependencies{Logger: log, Cache: redisClient},
		weather.ConfigFrom(cfg),
	)
	calendarCap := calendar.NewHandler(calendar.ServiceDependencies{
		Logger: log,
		Store:  eventStore,
	})
	emailCap := email.NewHandler(
		email.ServiceDependencies{Logger: log, Sender: emailSender},
		email.ConfigFrom(cfg),
	)
	socialCap := social.NewHandler(
		social.ServiceDependencies{Logger: log, Publisher: socialPublisher},
		social.ConfigFrom(cfg),
	)

	caps := []capability.Capability{
		weatherCap,
		calendarCap,
		emailCap,
		socialCap,
		conversational.NewHandler(log),
	}
	for _, c := range caps {
		if !capabilityEnabled(cfg, c.Name()) {
			zapLog.Info("capability disabled", zap.String("capability", c.Name()))
			continue
		}
		if err := registry.Register(c); err != nil {
			zapLog.Fatal("capability registration failed",
				zap.String("capability", c.Name()), zap.Error(err))
		}
		zapLog.Info("capability registered", zap.String("capability", c.Name()))
	}

	// --- Assemble the agent ---

	evaluators := []evaluator.Evaluator{
		evaluator.NewWeatherEvaluator(invoker, weatherCap),
		evaluator.NewScheduleEvaluator(invoker, calendarCap),
		evaluator.NewSocialEvaluator(invoker, socialCap),
	}
	fuser := fusion.New(evaluators, cfg.Fusion.EvaluatorTimeout, log)

	assistant := agent.New(
		agent.Options{
			Name:        cfg.App.Name,
			DefaultCity: cfg.Router.DefaultCity,
			Lookahead:   time.Duration(cfg.Fusion.LookaheadHours) * time.Hour,
			CapabilityTimeout: func(name string) time.Duration {
				if c, ok := cfg.Capabilities[name]; ok && c.Timeout > 0 {
					return c.Timeout
				}
				return 15 * time.Second
			},
			Indexer: indexer,
		},
		registry,
		invoker,
		router.New(router.DefaultRules(), log),
		fuser,
		bus.New(log),
		history.New(cfg.Fusion.HistorySize),
		log,
	)

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("addr", cfg.App.MetricsAddr))
		if err := http.ListenAndServe(cfg.App.MetricsAddr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Interactive loop ---

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	conv := models.NewConversation()
	fmt.Println("Assistant ready. Ask about weather, calendar, email, or posts. Ctrl-D to exit.")

	for {
		select {
		case <-sigCh:
			zapLog.Info("Shutdown signal received")
			return
		case line, ok := <-lines:
			if !ok {
				zapLog.Info("Input closed, shutting down")
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			resp := assistant.HandleRequest(ctx, text, conv)
			fmt.Println(resp.Text)

			for _, note := range assistant.Notifications() {
				fmt.Printf("! %s\n", note.Content)
			}
		}
	}
}

func capabilityEnabled(cfg *config.Config, name string) bool {
	c, ok := cfg.Capabilities[name]
	if !ok {
		return true
	}
	return c.Enabled
}
