package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/advice"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/match"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/moderation"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/registration"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/serial"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/wallet"
	adviceclient "github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/advice"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/identity"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/security"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/store"
	clock "github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"
)

// App holds the wired use cases shared by the HTTP service and the CLI
type App struct {
	Config       *config.Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
	Store        persistence.KVStore
	Sequencer    *serial.Sequencer
	Tokens       coreport.TokenService

	// Registry is nil when metrics are disabled
	Registry *prometheus.Registry
	Metrics  *metrics.PrometheusMetrics

	Accounts      *account.AccountUseCase
	Wallets       *wallet.WalletUseCase
	Registrations *registration.RegistrationUseCase
	Moderation    *moderation.ModerationUseCase
	Matches       *match.MatchUseCase
	Advice        *advice.AdviceUseCase
}

// New opens the configured store and wires every use case on it
func New(ctx context.Context, cfg *config.Config, logger coreport.Logger) (*App, error) {
	tp, err := clock.NewRealTimeProviderIn(cfg.Feed.Timezone)
	if err != nil {
		return nil, fmt.Errorf("feed timezone: %w", err)
	}

	a := &App{
		Config:       cfg,
		Logger:       logger,
		TimeProvider: tp,
	}

	var registerer prometheus.Registerer
	var domainMetrics coreport.Metrics = metrics.NewNoopMetrics()
	if cfg.Metrics.Enabled {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.Metrics = metrics.NewPrometheusMetrics(a.Registry)
		registerer = a.Registry
		domainMetrics = a.Metrics
	}

	kv, err := store.Open(ctx, cfg, tp, logger, registerer)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.Store = kv

	uow := repository.NewUnitOfWork(kv, cfg.Store.Namespace, logger, tp)
	a.Sequencer = serial.NewSequencer(logger, cfg.Concurrency.QueueSize)
	ids := identity.NewUUIDGenerator()

	tokens := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	a.Tokens = tokens

	a.Accounts = account.NewAccountUseCase(uow, a.Sequencer, security.NewBcryptHasher(bcrypt.DefaultCost), tokens, tp, logger,
		account.Policy{
			MinPasswordLength: cfg.Auth.MinPasswordLength,
			AdminMobiles:      cfg.Auth.AdminMobiles,
		})
	a.Wallets = wallet.NewWalletUseCase(uow, a.Sequencer, Limits(cfg.Wallet), ids, domainMetrics, tp, logger)
	a.Registrations = registration.NewRegistrationUseCase(uow, a.Sequencer, ids, domainMetrics, tp, logger)
	a.Moderation = moderation.NewModerationUseCase(uow, a.Sequencer, ids, domainMetrics, tp, logger)
	a.Matches = match.NewMatchUseCase(uow, match.NewGenerator(identity.NewMathRandom()), tp, logger)
	a.Advice = advice.NewAdviceUseCase(textGenerator(cfg.Advice, logger), tp, logger, advice.Options{
		Timeout:  cfg.Advice.Timeout,
		CacheTTL: cfg.Advice.CacheTTL,
	})

	return a, nil
}

// Limits converts the configured whole-unit limits into minor units
func Limits(cfg config.WalletConfig) wallet.Limits {
	limits := wallet.DefaultLimits()
	if cfg.MinDeposit > 0 {
		limits.MinDeposit = entity.MajorUnits(cfg.MinDeposit)
	}
	if cfg.MaxDeposit > 0 {
		limits.MaxDeposit = entity.MajorUnits(cfg.MaxDeposit)
	}
	if cfg.MinWithdraw > 0 {
		limits.MinWithdraw = entity.MajorUnits(cfg.MinWithdraw)
	}
	if cfg.MaxWithdraw > 0 {
		limits.MaxWithdraw = entity.MajorUnits(cfg.MaxWithdraw)
	}
	if cfg.PayoutTargetLength > 0 {
		limits.PayoutTargetLength = cfg.PayoutTargetLength
	}
	return limits
}

func textGenerator(cfg config.AdviceConfig, logger coreport.Logger) coreport.TextGenerator {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil
	}
	return adviceclient.NewGeminiClient(adviceclient.Config{
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	}, &http.Client{Timeout: cfg.Timeout}, logger)
}

// SeedAdmins creates the configured admin accounts that do not exist yet
func (a *App) SeedAdmins(ctx context.Context) (int, error) {
	if a.Config.Auth.AdminPassword == "" {
		return 0, nil
	}

	defaults := make([]migration.DefaultAccount, 0, len(a.Config.Auth.AdminMobiles))
	for _, mobile := range a.Config.Auth.AdminMobiles {
		defaults = append(defaults, migration.DefaultAccount{
			Mobile:      mobile,
			Password:    a.Config.Auth.AdminPassword,
			DisplayName: a.Config.Auth.AdminName,
		})
	}
	return migration.CreateDefaultAccounts(ctx, a.Accounts, defaults)
}

// Close drains the sequencer, then closes the store
func (a *App) Close() error {
	a.Sequencer.Shutdown()
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
