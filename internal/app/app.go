package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/scorepadhq/scorepad/internal/config"
	"github.com/scorepadhq/scorepad/internal/domain/gameset"
	"github.com/scorepadhq/scorepad/internal/domain/ledger"
	"github.com/scorepadhq/scorepad/internal/domain/player"
	"github.com/scorepadhq/scorepad/internal/infrastructure/account/janus"
	"github.com/scorepadhq/scorepad/internal/infrastructure/repository/memory"
	"github.com/scorepadhq/scorepad/internal/infrastructure/repository/postgres"
	"github.com/scorepadhq/scorepad/internal/interfaces/httpapi"
	idgen "github.com/scorepadhq/scorepad/internal/platform/id"
	"github.com/scorepadhq/scorepad/internal/platform/logging"
	"github.com/scorepadhq/scorepad/internal/platform/resilience"
	"github.com/scorepadhq/scorepad/internal/usecase"
)

type repositories struct {
	players player.Repository
	sets    gameset.Repository
	entries ledger.Repository
	db      *sqlx.DB
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	idGen := idgen.NewRandomGenerator()

	playerSvc := usecase.NewPlayerService(repos.players, idGen)
	gameSetSvc := usecase.NewGameSetService(repos.sets, repos.players, repos.entries, idGen)
	ledgerSvc := usecase.NewLedgerService(repos.sets, repos.entries, idGen)
	sessionSvc := usecase.NewSessionService(repos.sets, repos.players, ledgerSvc)
	dashboardSvc := usecase.NewDashboardService(repos.sets, repos.players, repos.entries)

	janusClient := janus.NewClient(janus.ClientConfig{
		BaseURL:      cfg.JanusBaseURL,
		Timeout:      cfg.JanusTimeout,
		PrincipalTTL: cfg.PrincipalCacheTTL,
		Logger:       logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.JanusCircuitEnabled,
			FailureThreshold: cfg.JanusCircuitFailureCount,
			OpenTimeout:      cfg.JanusCircuitOpenTimeout,
		},
	})

	adminSvc := usecase.NewAdminService(repos.sets, janusClient)

	handler := httpapi.NewHandler(playerSvc, gameSetSvc, sessionSvc, adminSvc, dashboardSvc, logger)
	router := httpapi.NewRouter(handler, janusClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() error {
		if repos.db != nil {
			return repos.db.Close()
		}
		return nil
	}
	return server, cleanup, nil
}

// buildRepositories connects postgres when DB_URL is set; without it the
// service runs fully in-memory, which is what local development uses.
func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("db url not set, using in-memory repositories")
		return repositories{
			players: memory.NewPlayerRepository(),
			sets:    memory.NewGameSetRepository(),
			entries: memory.NewScoreEntryRepository(),
		}, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open postgres: %w", err)
	}

	logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL))
	return repositories{
		players: postgres.NewPlayerRepository(db),
		sets:    postgres.NewGameSetRepository(db),
		entries: postgres.NewScoreEntryRepository(db),
		db:      db,
	}, nil
}
