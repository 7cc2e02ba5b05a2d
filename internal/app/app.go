// Package app assembles configuration, repositories, services, and the HTTP
// router into a runnable server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/survivorleague/survivor-api/internal/config"
	"github.com/survivorleague/survivor-api/internal/domain/competition"
	"github.com/survivorleague/survivor-api/internal/domain/credential"
	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/exacto"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/pick"
	"github.com/survivorleague/survivor-api/internal/domain/settlement"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/domain/whomst"
	"github.com/survivorleague/survivor-api/internal/infrastructure/auth"
	"github.com/survivorleague/survivor-api/internal/infrastructure/repository/memory"
	"github.com/survivorleague/survivor-api/internal/infrastructure/repository/postgres"
	"github.com/survivorleague/survivor-api/internal/interfaces/httpapi"
	"github.com/survivorleague/survivor-api/internal/platform/cache"
	idgen "github.com/survivorleague/survivor-api/internal/platform/id"
	"github.com/survivorleague/survivor-api/internal/platform/logging"
	"github.com/survivorleague/survivor-api/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

type repositories struct {
	users       user.Repository
	credentials credential.Repository
	competition competition.Repository
	teams       team.Repository
	gameweeks   gameweek.Repository
	fixtures    fixture.Repository
	entries     entry.Repository
	picks       pick.Repository
	exactos     exacto.Repository
	whomst      whomst.Repository
	settlement  settlement.Repository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		cacheTTL = -1
	}
	listCache := cache.NewStore(cacheTTL)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("build token service: %w", err)
	}

	idGenerator := idgen.NewRandomGenerator()

	authSvc := usecase.NewAuthService(repos.credentials, repos.users, tokens, idGenerator, cfg.AccessCodeSalt)
	competitionSvc := usecase.NewCompetitionService(
		repos.competition,
		repos.gameweeks,
		repos.fixtures,
		repos.teams,
		repos.entries,
		repos.users,
		repos.whomst,
		idGenerator,
	)
	pickSvc := usecase.NewPickService(
		repos.entries,
		repos.picks,
		repos.fixtures,
		repos.gameweeks,
		repos.teams,
		listCache,
		idGenerator,
	)
	exactoSvc := usecase.NewExactoService(repos.entries, repos.fixtures, repos.gameweeks, repos.exactos, idGenerator)
	settlementSvc := usecase.NewSettlementService(
		repos.gameweeks,
		repos.fixtures,
		repos.picks,
		repos.entries,
		repos.exactos,
		repos.settlement,
		listCache,
		logger,
	)
	fixtureAdminSvc := usecase.NewFixtureAdminService(repos.fixtures, repos.gameweeks, repos.teams, idGenerator, logger)

	handler := httpapi.NewHandler(authSvc, competitionSvc, pickSvc, exactoSvc, settlementSvc, fixtureAdminSvc, logger)
	router := httpapi.NewRouter(handler, tokens, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("storage mode", "mode", "memory")
		return seededMemoryRepositories(cfg), nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, err
	}

	logger.Info("storage mode", "mode", "postgres", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		users:       postgres.NewUserRepository(db),
		credentials: postgres.NewCredentialRepository(db),
		competition: postgres.NewCompetitionRepository(db),
		teams:       postgres.NewTeamRepository(db),
		gameweeks:   postgres.NewGameweekRepository(db),
		fixtures:    postgres.NewFixtureRepository(db),
		entries:     postgres.NewEntryRepository(db),
		picks:       postgres.NewPickRepository(db),
		exactos:     postgres.NewExactoRepository(db),
		whomst:      postgres.NewWhomstRepository(db),
		settlement:  postgres.NewSettlementRepository(db),
	}, nil
}

func seededMemoryRepositories(cfg config.Config) repositories {
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())
	pickRepo := memory.NewPickRepository(gameweekRepo)
	entryRepo := memory.NewEntryRepository(nil)
	exactoRepo := memory.NewExactoRepository()

	return repositories{
		users:       memory.NewUserRepository(nil),
		credentials: memory.NewCredentialRepository(memory.SeedAccessCodes(cfg.AccessCodeSalt)),
		competition: memory.NewCompetitionRepository(memory.SeedCompetitions(), memory.SeedRounds()),
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		gameweeks:   gameweekRepo,
		fixtures:    memory.NewFixtureRepository(memory.SeedFixtures()),
		entries:     entryRepo,
		picks:       pickRepo,
		exactos:     exactoRepo,
		whomst:      memory.NewWhomstRepository(),
		settlement:  memory.NewSettlementRepository(gameweekRepo, pickRepo, entryRepo, exactoRepo),
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, true)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
