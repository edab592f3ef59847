package di

import (
	"context"
	"fmt"
	"time"

	"MacroSim/internal/domain/models"
	domrepo "MacroSim/internal/domain/repository"
	"MacroSim/internal/handler/api"
	internalrepo "MacroSim/internal/repository"
	"MacroSim/internal/services/normalize"
	"MacroSim/internal/services/predict"
	"MacroSim/internal/services/train"
	"MacroSim/internal/usecase"
	pkgcache "MacroSim/pkg/cache"
	pkgch "MacroSim/pkg/clickhouse"
	"MacroSim/pkg/config"
	xhttp "MacroSim/pkg/http"
	applogger "MacroSim/pkg/logger"
	"MacroSim/pkg/metrics"
	"MacroSim/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the clickhouse
// storage backend is configured, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Storage.Backend != "clickhouse" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideMasterStore creates the configured master table store.
func ProvideMasterStore(cfg *config.Config, ch *pkgch.Client, l *applogger.Logger) (domrepo.MasterStore, error) {
	var store domrepo.MasterStore
	switch cfg.Storage.Backend {
	case "clickhouse":
		chStore := internalrepo.NewCHMasterStore(ch.DB(), cfg.ClickHouse.Database+".master_records")
		chStore.SetLogger(l)
		store = chStore
	default:
		store = internalrepo.NewCSVMasterStore(cfg.Storage.MasterPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("master store init: %w", err)
	}
	return store, nil
}

// ProvideModelStore creates the file-backed model registry.
func ProvideModelStore(cfg *config.Config) domrepo.ModelStore {
	return internalrepo.NewFileModelStore(cfg.Models.Dir)
}

// ProvideModelSet loads every fitted model into the immutable serving
// context. Startup fails here when an artifact is missing, so a request
// can never reach a half-loaded process.
func ProvideModelSet(store domrepo.ModelStore) (predict.ModelSet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fitted := make([]models.FittedModel, 0, len(models.Targets()))
	for _, target := range models.Targets() {
		m, err := store.Load(ctx, target)
		if err != nil {
			return predict.ModelSet{}, fmt.Errorf("%w: %v", predict.ErrModelNotLoaded, err)
		}
		fitted = append(fitted, m)
	}
	return predict.NewModelSet(fitted...)
}

// ProvideLagState loads the most recent complete master row.
func ProvideLagState(store domrepo.MasterStore) (models.LagState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	latest, err := store.Latest(ctx)
	if err != nil {
		return models.LagState{}, fmt.Errorf("load lag state: %w", err)
	}
	return models.LagStateOf(latest), nil
}

// ProvideBounds builds the per-target forecast bounds, config entries
// overriding the defaults.
func ProvideBounds(cfg *config.Config) (predict.Bounds, error) {
	bounds := predict.DefaultBounds()
	for _, b := range cfg.Bounds {
		target := models.Indicator(b.Target)
		if !target.IsTarget() {
			return nil, fmt.Errorf("bounds: %q is not a modeled target", b.Target)
		}
		bounds[target] = predict.BoundSpec{Min: b.Min, Max: b.Max}
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return bounds, nil
}

// ProvidePredictor creates the bounded predictor.
func ProvidePredictor(set predict.ModelSet, bounds predict.Bounds, lag models.LagState) (*predict.Predictor, error) {
	return predict.New(set, bounds, lag)
}

// ProvideCache creates the forecast response cache, nil when disabled.
func ProvideCache(cfg *config.Config) pkgcache.BytesCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Redis.Enabled {
		return pkgcache.NewRedisCache(pkgcache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return pkgcache.NewTTLCache()
}

// ProvideForecaster creates the serving use case.
func ProvideForecaster(pred *predict.Predictor, c pkgcache.BytesCache, m domrepo.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.Forecaster {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return usecase.NewForecaster(pred, c, ttl, m, l)
}

// ProvideForecastHandler creates the HTTP handler.
func ProvideForecastHandler(l *applogger.Logger, fc *usecase.Forecaster) xhttp.Handler {
	return api.NewForecastEchoHandler(l, fc)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, ch *pkgch.Client, l *applogger.Logger) *server.App {
	return server.New(cfg, handler, ch, l)
}

// SourceSpecs converts configured data sources into normalizer specs.
func SourceSpecs(cfg *config.Config) ([]normalize.SourceSpec, error) {
	specs := make([]normalize.SourceSpec, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		ind := models.Indicator(s.Indicator)
		if !ind.Valid() {
			return nil, fmt.Errorf("source %s: unknown indicator %q", s.Name, s.Indicator)
		}
		freq := models.Frequency(s.Frequency)
		if !freq.Valid() {
			return nil, fmt.Errorf("source %s: unknown frequency %q", s.Name, s.Frequency)
		}
		rule := normalize.Rule(s.Downsample)
		if rule == "" {
			rule = normalize.RuleAnnualMean
		}
		if freq != models.FreqAnnual && !rule.Valid() {
			return nil, fmt.Errorf("source %s: unknown downsample rule %q", s.Name, s.Downsample)
		}
		specs = append(specs, normalize.SourceSpec{
			Name:            s.Name,
			Path:            s.Path,
			Indicator:       ind,
			Frequency:       freq,
			TimestampColumn: s.TimestampColumn,
			ValueColumn:     s.ValueColumn,
			TimestampLayout: s.TimestampLayout,
			Downsample:      rule,
		})
	}
	return specs, nil
}

// InitializePipeline assembles the offline training pipeline. Wired by
// hand: the graph is short-lived and linear, not worth a wire injector.
func InitializePipeline(cfg *config.Config) (*usecase.Pipeline, func(), error) {
	l, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	specs, err := SourceSpecs(cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("no sources configured")
	}
	ch, err := ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := ProvideMasterStore(cfg, ch, l)
	if err != nil {
		if ch != nil {
			_ = ch.Close()
		}
		return nil, nil, err
	}

	alpha := cfg.Models.Alpha
	if alpha == 0 {
		alpha = 1.0
	}
	p := usecase.NewPipeline(specs, store, train.New(alpha), ProvideModelStore(cfg), ProvideMetrics(), l)
	cleanup := func() {
		_ = store.Close()
		if ch != nil {
			_ = ch.Close()
		}
	}
	return p, cleanup, nil
}
