package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	httpadapter "campaignmap/internal/adapter/http"
	metricsinmem "campaignmap/internal/adapter/metrics/inmemory"
	gormrepo "campaignmap/internal/adapter/repo/gorm"
	"campaignmap/internal/adapter/repo/memory"
	sqliterepo "campaignmap/internal/adapter/repo/sqlite"
	worldruntime "campaignmap/internal/adapter/world/runtime"
	campaignapp "campaignmap/internal/app/campaign"
	"campaignmap/internal/app/character"
	"campaignmap/internal/app/history"
	"campaignmap/internal/app/mapview"
	"campaignmap/internal/app/movement"
	"campaignmap/internal/app/ports"
	"campaignmap/internal/platform/config"
	"campaignmap/internal/platform/otel"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const serviceName = "campaignmap"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("setup tracing: %v", err)
	}

	b, err := buildBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("build %s store: %v", cfg.Store, err)
	}
	h := buildHandler(cfg, b)

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
		if err := b.close(); err != nil {
			log.Printf("close store: %v", err)
		}
	})

	log.Printf("campaignmap server listening on %s (store=%s, chunk cache=%s)", cfg.Addr, cfg.Store, cfg.ChunkCache)
	s.Spin()
}

type backend struct {
	campaigns  ports.CampaignRepository
	characters ports.CharacterRepository
	movements  ports.MovementRepository
	tx         ports.TxManager
	// chunks is the persistent chunk cache, nil for the memory store.
	chunks     worldruntime.ChunkStore
	close      func() error
}

func buildBackend(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		return backend{
			campaigns:  memory.NewCampaignRepo(store),
			characters: memory.NewCharacterRepo(store),
			movements:  memory.NewMovementRepo(store),
			tx:         memory.NewTxManager(store),
			close:      func() error { return nil },
		}, nil
	case config.StoreSQLite:
		store, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return backend{}, err
		}
		return backend{
			campaigns:  sqliterepo.NewCampaignRepo(store),
			characters: sqliterepo.NewCharacterRepo(store),
			movements:  sqliterepo.NewMovementRepo(store),
			tx:         sqliterepo.NewTxManager(store),
			chunks:     sqliterepo.NewMapChunkRepo(store),
			close:      store.Close,
		}, nil
	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return backend{}, fmt.Errorf("open postgres: %w", err)
		}
		if err := gormrepo.ApplyMigrations(ctx, db, os.DirFS(filepath.Clean(cfg.MigrationsDir))); err != nil {
			return backend{}, fmt.Errorf("apply migrations: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return backend{}, fmt.Errorf("postgres handle: %w", err)
		}
		return backend{
			campaigns:  gormrepo.NewCampaignRepo(db),
			characters: gormrepo.NewCharacterRepo(db),
			movements:  gormrepo.NewMovementRepo(db),
			tx:         gormrepo.NewTxManager(db),
			chunks:     gormrepo.NewMapChunkRepo(db),
			close:      sqlDB.Close,
		}, nil
	default:
		return backend{}, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
}

func chunkStore(cfg config.Config, b backend) worldruntime.ChunkStore {
	switch cfg.ChunkCache {
	case config.ChunkCacheStore:
		if b.chunks != nil {
			return b.chunks
		}
		return worldruntime.NewMemoryChunkStore()
	case config.ChunkCacheOff:
		return nil
	default:
		return worldruntime.NewMemoryChunkStore()
	}
}

func buildHandler(cfg config.Config, b backend) httpadapter.Handler {
	maps := worldruntime.NewProvider(worldruntime.Config{ChunkStore: chunkStore(cfg, b)})
	kpiRecorder := metricsinmem.NewRecorder()

	return httpadapter.Handler{
		MovementUC: movement.UseCase{
			TxManager:       b.tx,
			Characters:      b.characters,
			Campaigns:       b.campaigns,
			Movements:       b.movements,
			Metrics:         kpiRecorder,
			TeleportBounded: cfg.TeleportBound,
			StrictHistory:   cfg.StrictHistory,
			Now:             time.Now,
		},
		CampaignUC: campaignapp.UseCase{
			TxManager:  b.tx,
			Campaigns:  b.campaigns,
			Characters: b.characters,
			Now:        time.Now,
		},
		CharacterUC: character.UseCase{
			TxManager:  b.tx,
			Campaigns:  b.campaigns,
			Characters: b.characters,
		},
		MapUC: mapview.UseCase{
			Campaigns:  b.campaigns,
			Characters: b.characters,
			Maps:       maps,
		},
		HistoryUC:      history.UseCase{Characters: b.characters, Movements: b.movements},
		KPI:            kpiRecorder,
		RequestTimeout: cfg.RequestTimeout,
	}
}
