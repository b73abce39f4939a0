package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/samvad-hq/wpcom-harvester/internal/config"
	"github.com/samvad-hq/wpcom-harvester/internal/harvest"
	"github.com/samvad-hq/wpcom-harvester/internal/logger"
	"github.com/samvad-hq/wpcom-harvester/internal/storage"
	"github.com/samvad-hq/wpcom-harvester/pkg/httpclient"
	"github.com/samvad-hq/wpcom-harvester/pkg/jobs"
	"github.com/samvad-hq/wpcom-harvester/pkg/publishers"
	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
)

// Harvester is the long-running runtime: it polls the configured jobs through
// the WordPress.com client and fans new items out to the publishers.
type Harvester struct {
	cfg             *config.Config
	jobReg          *jobs.Registry
	fanout          *publishers.Fanout
	harvestService  *harvest.Service
	harvestInterval time.Duration
	log             logger.Logger
	store           storage.Store
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	jobReg, err := jobs.LoadRegistry(cfg.JobsFile)
	if err != nil {
		return nil, fmt.Errorf("load jobs registry: %w", err)
	}
	jobList := jobReg.All()
	jobIDs := make([]string, 0, len(jobList))
	for _, j := range jobList {
		jobIDs = append(jobIDs, j.ID)
	}
	log.InfoObj("jobs registry loaded", "jobs_meta", map[string]any{
		"count": len(jobIDs),
		"ids":   jobIDs,
	})

	transport := httpclient.NewRestyClient(cfg.RequestTimeout).WithLogger(log)
	client, err := wpcom.NewClient(cfg.OAuthToken,
		wpcom.WithBaseURI(cfg.BaseURI),
		wpcom.WithTimeout(cfg.RequestTimeout),
		wpcom.WithTransport(transport),
	)
	if err != nil {
		return nil, fmt.Errorf("init wpcom client: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		ItemTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"item_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})
	if counts, err := store.Counts(); err != nil {
		log.WarnObj("storage counts unavailable", "storage_error", err.Error())
	} else {
		log.InfoObj("storage seen items", "seen_per_job", counts)
	}

	var pub harvest.EventPublisher
	if fanout.Size() > 0 {
		pub = fanout
	}
	svc := harvest.NewService(jobs.DefaultFetcherRegistry(client), pub, log, store)

	return &Harvester{
		cfg:             cfg,
		jobReg:          jobReg,
		fanout:          fanout,
		harvestService:  svc,
		harvestInterval: cfg.HarvestInterval,
		log:             log,
		store:           store,
	}, nil
}

// buildFanout loads the publishers file. A missing file means items are only logged.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.WarnObj("publishers file not found; items will only be logged", "publishers_file", cfg.PublishersFile)
		return publishers.NewFanout(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]any, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]any{
			"id":    pubCfg.ID,
			"type":  pubCfg.Type,
			"jobs":  pubCfg.Jobs,
			"kinds": pubCfg.Kinds,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Run performs an initial pass and then one pass per interval until ctx is cancelled.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.harvestService == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.Close()

	enabled := h.jobReg.Enabled()
	if len(enabled) == 0 {
		h.log.WarnObj("no enabled jobs; harvester idle", "jobs_file", h.cfg.JobsFile)
		<-ctx.Done()
		return nil
	}

	h.log.InfoObj("harvester loop starting", "harvester_state", map[string]any{
		"jobs_count":       len(enabled),
		"publishers_count": h.fanout.Size(),
		"harvest_interval": h.harvestInterval.String(),
	})

	if err := h.runOnce(ctx, enabled); err != nil {
		h.log.ErrorObj("initial harvest failed", "error", err.Error())
	}

	ticker := time.NewTicker(h.harvestInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx, enabled); err != nil {
				h.log.ErrorObj("scheduled harvest failed", "error", err.Error())
			}
		}
	}
}

// RunOnce performs a single pass over the enabled jobs.
func (h *Harvester) RunOnce(ctx context.Context) error {
	if h == nil || h.harvestService == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	return h.runOnce(ctx, h.jobReg.Enabled())
}

func (h *Harvester) runOnce(ctx context.Context, js []jobs.Job) error {
	start := time.Now()
	h.log.InfoObj("harvest started", "harvest_meta", map[string]any{
		"jobs_count": len(js),
		"started_at": start.UTC(),
	})
	if err := h.harvestService.Run(ctx, js); err != nil {
		return err
	}
	h.log.InfoObj("harvest completed", "harvest_meta", map[string]any{
		"jobs_count": len(js),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// Close releases the store and publisher clients, logging failures.
func (h *Harvester) Close() {
	if h == nil {
		return
	}
	if h.store != nil {
		if err := h.store.Close(); err != nil {
			h.log.ErrorObj("storage close failed", "error", err.Error())
		}
	}
	if err := h.fanout.Close(); err != nil {
		h.log.ErrorObj("publishers close failed", "error", err.Error())
	}
}
