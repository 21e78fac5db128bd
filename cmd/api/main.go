package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hatbazar/api/internal/ai"
	"github.com/hatbazar/api/internal/handlers"
	"github.com/hatbazar/api/internal/platform/auth"
	"github.com/hatbazar/api/internal/platform/config"
	pfirestore "github.com/hatbazar/api/internal/platform/firestore"
	"github.com/hatbazar/api/internal/platform/idempotency"
	"github.com/hatbazar/api/internal/platform/jobs"
	"github.com/hatbazar/api/internal/platform/observability"
	"github.com/hatbazar/api/internal/platform/secrets"
	platformstorage "github.com/hatbazar/api/internal/platform/storage"
	"github.com/hatbazar/api/internal/repositories"
	firestoreRepo "github.com/hatbazar/api/internal/repositories/firestore"
	"github.com/hatbazar/api/internal/services"
)

const (
	idempotencyCleanupInterval  = 10 * time.Minute
	idempotencyCleanupBatchSize = 200
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	envValues, err := config.EnvironmentValues()
	if err != nil {
		logger.Fatal("failed to read environment values", zap.Error(err))
	}

	fetcher, err := newSecretFetcher(ctx, logger, envValues)
	if err != nil {
		logger.Fatal("failed to initialise secret fetcher", zap.Error(err))
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("secret fetcher close error", zap.Error(err))
		}
	}()

	cfg, err := config.Load(ctx,
		config.WithSecretResolver(config.SecretResolverFunc(fetcher.Resolve)),
		config.WithRequiredSecrets(requiredSecretNames(envValues)...),
	)
	if err != nil {
		var missing *config.MissingSecretsError
		if errors.As(err, &missing) {
			logger.Fatal("missing required secrets", zap.Strings("secrets", missing.Names()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	firestoreProvider := pfirestore.NewProvider(cfg.Firestore)
	firestoreClient, err := firestoreProvider.Client(ctx)
	if err != nil {
		logger.Fatal("failed to initialise firestore client", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := firestoreProvider.Close(closeCtx); err != nil {
			logger.Warn("firestore close error", zap.Error(err))
		}
	}()

	pubsubClient, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		logger.Fatal("failed to initialise pubsub client", zap.Error(err))
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logger.Warn("pubsub close error", zap.Error(err))
		}
	}()

	orderEventTopic := pubsubClient.Topic(cfg.PubSub.OrderEventTopic)
	defer orderEventTopic.Stop()

	eventPublisher, err := jobs.NewPubSubOrderEventPublisher(orderEventTopic)
	if err != nil {
		logger.Fatal("failed to initialise order event publisher", zap.Error(err))
	}

	firebaseVerifier, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase)
	if err != nil {
		logger.Fatal("failed to initialise firebase verifier", zap.Error(err))
	}
	authenticator := auth.NewAuthenticator(firebaseVerifier, auth.WithUserGetter(firebaseVerifier))

	orderRepo, err := firestoreRepo.NewOrderRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise order repository", zap.Error(err))
	}
	counterRepo, err := firestoreRepo.NewCounterRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise counter repository", zap.Error(err))
	}
	productRepo, err := firestoreRepo.NewProductRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise product repository", zap.Error(err))
	}
	categoryRepo, err := firestoreRepo.NewCategoryRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise category repository", zap.Error(err))
	}
	bannerRepo, err := firestoreRepo.NewBannerRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise banner repository", zap.Error(err))
	}
	paymentNumberRepo, err := firestoreRepo.NewPaymentNumberRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise payment number repository", zap.Error(err))
	}

	flowClient := ai.NewClient(cfg.AI.Endpoint, cfg.AI.AuthToken, ai.WithTimeout(cfg.AI.Timeout))

	orderService, err := services.NewOrderService(services.OrderServiceDeps{
		Orders:   orderRepo,
		Counters: counterRepo,
		Events:   eventPublisher,
		Sequence: cfg.Orders.SequenceName,
		Clock:    time.Now,
		Logger:   eventLogger(logger.Named("orders")),
	})
	if err != nil {
		logger.Fatal("failed to initialise order service", zap.Error(err))
	}

	lookupService, err := services.NewOrderLookupService(services.OrderLookupServiceDeps{
		Orders: orderService,
	})
	if err != nil {
		logger.Fatal("failed to initialise order lookup service", zap.Error(err))
	}

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{
		Products:   productRepo,
		Categories: categoryRepo,
		Banners:    bannerRepo,
	})
	if err != nil {
		logger.Fatal("failed to initialise catalog service", zap.Error(err))
	}

	paymentNumberService, err := services.NewPaymentNumberService(services.PaymentNumberServiceDeps{
		Numbers: paymentNumberRepo,
	})
	if err != nil {
		logger.Fatal("failed to initialise payment number service", zap.Error(err))
	}

	reviewService, err := services.NewReviewService(services.ReviewServiceDeps{
		Products: productRepo,
		Flows:    flowClient,
	})
	if err != nil {
		logger.Fatal("failed to initialise review service", zap.Error(err))
	}

	recommendationService, err := services.NewRecommendationService(services.RecommendationServiceDeps{
		Products: productRepo,
		Flows:    flowClient,
	})
	if err != nil {
		logger.Fatal("failed to initialise recommendation service", zap.Error(err))
	}

	seedService, err := services.NewSeedService(services.SeedServiceDeps{
		Products:   productRepo,
		Categories: categoryRepo,
		Banners:    bannerRepo,
		Numbers:    paymentNumberRepo,
		Logger:     eventLogger(logger.Named("seed")),
	})
	if err != nil {
		logger.Fatal("failed to initialise seed service", zap.Error(err))
	}

	mediaUploader := newMediaUploader(logger, cfg)

	idempotencyStore := idempotency.NewFirestoreStore(firestoreClient)
	idempotencyMiddleware := idempotency.Middleware(
		idempotencyStore,
		idempotency.WithLogger(observability.NewPrintfAdapter(logger.Named("idempotency"))),
	)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	var cleanupWG sync.WaitGroup
	cleanupTicker := time.NewTicker(idempotencyCleanupInterval)
	cleanupWG.Add(1)
	go func() {
		defer cleanupWG.Done()
		cleanupLogger := logger.Named("idempotency")
		for {
			select {
			case <-cleanupTicker.C:
				runCtx, cancel := context.WithTimeout(cleanupCtx, time.Minute)
				removed, err := idempotencyStore.CleanupExpired(runCtx, time.Now().UTC(), idempotencyCleanupBatchSize)
				cancel()
				if err != nil {
					cleanupLogger.Error("idempotency cleanup error", zap.Error(err))
					continue
				}
				if removed > 0 {
					cleanupLogger.Info("idempotency cleanup removed records", zap.Int("count", removed))
				}
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	publicHandlers := handlers.NewPublicHandlers(catalogService, paymentNumberService, lookupService, recommendationService)
	orderHandlers := handlers.NewOrderHandlers(authenticator, orderService)
	meHandlers := handlers.NewMeHandlers(authenticator, lookupService)
	adminOrderHandlers := handlers.NewAdminOrderHandlers(orderService, lookupService)
	adminCatalogHandlers := handlers.NewAdminCatalogHandlers(catalogService, paymentNumberService, reviewService)
	adminSystemHandlers := handlers.NewAdminSystemHandlers(seedService, mediaUploader)

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthVersion(buildVersion(envValues)),
		handlers.WithReadinessChecks(dependencyChecks(firestoreClient, fetcher)...),
	)

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(traceProjectID(cfg)),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(traceProjectID(cfg)),
		idempotencyMiddleware,
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithPublicRoutes(publicHandlers.Routes),
		handlers.WithOrderRoutes(orderHandlers.Routes),
		handlers.WithMeRoutes(meHandlers.Routes),
		handlers.WithAdminRoutes(func(r chi.Router) {
			adminOrderHandlers.Routes(r)
			adminCatalogHandlers.Routes(r)
			adminSystemHandlers.Routes(r)
		}),
		handlers.WithAdminMiddlewares(authenticator.RequireFirebaseAuth(auth.RoleAdmin)),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("hatbazar api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	cleanupTicker.Stop()
	cleanupCancel()
	cleanupWG.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// eventLogger adapts the structured service logging callback onto zap.
func eventLogger(logger *zap.Logger) func(context.Context, string, map[string]any) {
	return func(_ context.Context, event string, fields map[string]any) {
		zFields := make([]zap.Field, 0, len(fields)+1)
		zFields = append(zFields, zap.String("event", event))
		for k, v := range fields {
			zFields = append(zFields, zap.Any(k, v))
		}
		logger.Debug("service event", zFields...)
	}
}

// newMediaUploader builds the signed upload URL issuer when a signing key and
// media bucket are configured. Media uploads are optional; without them the
// admin upload endpoint reports the feature as unavailable.
func newMediaUploader(logger *zap.Logger, cfg config.Config) handlers.MediaURLSigner {
	credentialsFile := strings.TrimSpace(cfg.Firebase.CredentialsFile)
	bucket := strings.TrimSpace(cfg.Storage.MediaBucket)
	if credentialsFile == "" || bucket == "" {
		logger.Warn("media uploads disabled; signer credentials or bucket not configured")
		return nil
	}

	signer, err := platformstorage.NewServiceAccountSignerFromFile(credentialsFile)
	if err != nil {
		logger.Warn("media uploads disabled; signer key unreadable", zap.Error(err))
		return nil
	}
	uploader, err := platformstorage.NewUploader(bucket, signer)
	if err != nil {
		logger.Warn("media uploads disabled", zap.Error(err))
		return nil
	}
	return uploader
}

func dependencyChecks(client *firestore.Client, fetcher *secrets.Fetcher) []repositories.DependencyCheck {
	checks := make([]repositories.DependencyCheck, 0, 2)
	if client != nil {
		c := client
		checks = append(checks, repositories.DependencyCheck{
			Name:    "firestore",
			Timeout: 1500 * time.Millisecond,
			Check: func(ctx context.Context) error {
				iter := c.Collections(ctx)
				_, err := iter.Next()
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			},
		})
	}
	if fetcher != nil {
		const secretHealthReference = "secret://system/healthz?version=latest"
		checks = append(checks, repositories.DependencyCheck{
			Name:    "secretManager",
			Timeout: time.Second,
			Check: func(ctx context.Context) error {
				_, err := fetcher.Resolve(ctx, secretHealthReference)
				if err == nil {
					return nil
				}
				if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
					return nil
				}
				return err
			},
		})
	}
	return checks
}

func traceProjectID(cfg config.Config) string {
	if id := strings.TrimSpace(cfg.Firebase.ProjectID); id != "" {
		return id
	}
	return strings.TrimSpace(cfg.Firestore.ProjectID)
}

func buildVersion(env map[string]string) string {
	if env != nil {
		if version := strings.TrimSpace(env["API_BUILD_VERSION"]); version != "" {
			return version
		}
	}
	return "dev"
}

func newSecretFetcher(ctx context.Context, logger *zap.Logger, env map[string]string) (*secrets.Fetcher, error) {
	lookup := func(key string) string {
		if env == nil {
			return ""
		}
		return strings.TrimSpace(env[key])
	}

	fallbackPath := lookup("API_SECRET_FALLBACK_FILE")
	if fallbackPath == "" {
		fallbackPath = ".secrets.local"
	}

	opts := []secrets.Option{
		secrets.WithLogger(logger.Named("secrets")),
		secrets.WithFallbackFile(fallbackPath),
	}
	if project := lookup("API_FIREBASE_PROJECT_ID"); project != "" {
		opts = append(opts, secrets.WithProject(project))
	}
	if credentialsFile := lookup("API_FIREBASE_CREDENTIALS_FILE"); credentialsFile != "" {
		opts = append(opts, secrets.WithClientOptions(option.WithCredentialsFile(credentialsFile)))
	}

	return secrets.NewFetcher(ctx, opts...)
}

// requiredSecretNames lists config fields that must resolve to non-empty
// secrets. The AI token is only mandatory when a worker endpoint is set.
func requiredSecretNames(env map[string]string) []string {
	if env != nil && strings.TrimSpace(env["API_AI_ENDPOINT"]) != "" {
		return []string{"AI.AuthToken"}
	}
	return nil
}
