package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/colosseum-network/colosseumd/internal/config"
	"github.com/colosseum-network/colosseumd/internal/core/application/competition"
	"github.com/colosseum-network/colosseumd/internal/core/application/oracle"
	"github.com/colosseum-network/colosseumd/internal/core/application/swap"
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/clock"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/identity"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/issuer"
	krakenfeeder "github.com/colosseum-network/colosseumd/internal/infrastructure/price-feeder/kraken"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/pubsub"
	dbbadger "github.com/colosseum-network/colosseumd/internal/infrastructure/storage/db/badger"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/storage/db/inmemory"
	grpcinterface "github.com/colosseum-network/colosseumd/internal/interfaces/grpc"
	"github.com/colosseum-network/colosseumd/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to init config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	datadir := config.GetDatadir()
	dbDir := filepath.Join(datadir, config.DbLocation)
	profilerDir := filepath.Join(datadir, config.ProfilerLocation)
	webhooksDir := filepath.Join(datadir, config.WebhooksLocation)
	operatorPort := config.GetInt(config.OperatorListeningPortKey)
	traderPort := config.GetInt(config.TraderListeningPortKey)
	metricsPort := config.GetInt(config.MetricsPortKey)
	stableAsset := config.GetString(config.StableAssetKey)
	stableAssetTicker := config.GetString(config.StableAssetTickerKey)
	credentialClass := config.GetString(config.CredentialClassKey)
	credentialSecret := config.GetString(config.CredentialSecretKey)
	supplyCap := config.GetDecimal(config.SupplyCapKey)
	webhookTimeout := time.Duration(config.GetInt(config.WebhookTimeoutKey)) * time.Second
	profilerEnabled := config.GetBool(config.EnableProfilerKey)
	statsInterval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second

	competitionSettings, err := domain.NewCompetition(
		config.GetTime(config.RegistrationStartKey),
		config.GetTime(config.RegistrationEndKey),
		*config.GetTime(config.CompetitionStartKey),
		*config.GetTime(config.CompetitionEndKey),
		stableAsset, config.GetDecimal(config.InitialGrantKey),
	)
	if err != nil {
		log.WithError(err).Fatal("invalid competition settings")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repoManager, err := newRepoManager(dbDir)
	if err != nil {
		log.WithError(err).Fatal("failed to open db")
	}
	defer repoManager.Close()

	pubsubSvc, err := newPubSubService(webhooksDir, webhookTimeout)
	if err != nil {
		log.WithError(err).Fatal("failed to init pubsub service")
	}
	defer pubsubSvc.Close()

	registry := prometheus.NewRegistry()
	metrics, err := stats.NewMetrics(registry)
	if err != nil {
		log.WithError(err).Fatal("failed to init metrics")
	}

	systemClock := clock.NewSystemClock()
	ledger, err := issuer.NewLedger(supplyCap)
	if err != nil {
		log.WithError(err).Fatal("failed to init issuer")
	}
	vaults, err := repoManager.VaultRepository().GetAllVaults(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to load vaults")
	}
	ledger.Restore(vaults)

	verifier, err := identity.NewVerifier([]byte(credentialSecret))
	if err != nil {
		log.WithError(err).Fatal("failed to init identity verifier")
	}

	oracleSvc, err := oracle.NewService(repoManager, systemClock, pubsubSvc, metrics)
	if err != nil {
		log.WithError(err).Fatal("failed to init price registry")
	}
	swapSvc, err := swap.NewService(repoManager, oracleSvc, ledger, stableAsset)
	if err != nil {
		log.WithError(err).Fatal("failed to init swap engine")
	}
	competitionSvc, err := competition.NewService(
		repoManager, swapSvc, verifier, ledger, systemClock,
		pubsubSvc, metrics, credentialClass,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to init competition")
	}

	if _, err := swapSvc.RegisterAsset(
		ctx, stableAsset, stableAssetTicker, domain.DefaultAssetPrecision,
	); err != nil {
		log.WithError(err).Warn("failed to register stable asset")
	}
	if _, err := competitionSvc.Init(ctx, *competitionSettings); err != nil {
		log.WithError(err).Fatal("failed to init competition")
	}

	if config.GetBool(config.PriceFeederEnabledKey) {
		if err := startPriceFeeder(oracleSvc, stableAsset); err != nil {
			log.WithError(err).Fatal("failed to start price feeder")
		}
		defer oracleSvc.StopFeed()
	}

	if profilerEnabled {
		stats.EnableMemoryStatistics(ctx, statsInterval, registry, profilerDir)
	}

	var metricsServer *http.Server
	if metricsPort > 0 {
		metricsServer = serveMetrics(metricsPort, registry)
	}

	svc, err := grpcinterface.NewService(grpcinterface.ServiceOpts{
		Datadir:              datadir,
		TLSLocation:          config.TLSLocation,
		OperatorAddress:      fmt.Sprintf(":%d", operatorPort),
		OperatorTLS:          !config.GetBool(config.NoOperatorTlsKey),
		OperatorExtraIPs:     config.GetStringSlice(config.OperatorExtraIPKey),
		OperatorExtraDomains: config.GetStringSlice(config.OperatorExtraDomainKey),
		TraderAddress:        fmt.Sprintf(":%d", traderPort),
		TraderTLSKey:         config.GetString(config.TraderTLSKeyKey),
		TraderTLSCert:        config.GetString(config.TraderTLSCertKey),
		OracleSvc:            oracleSvc,
		SwapSvc:              swapSvc,
		CompetitionSvc:       competitionSvc,
		PubSubSvc:            pubsubSvc,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to init grpc interface")
	}

	log.Info("starting daemon")
	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start grpc interface")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	log.Info("shutting down daemon")
	svc.Stop()
	if metricsServer != nil {
		metricsServer.Close()
	}
	log.Info("exiting")
}

func newRepoManager(dbDir string) (ports.RepoManager, error) {
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		log.Warn("using in-memory db, state is lost on restart")
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(dbDir, nil)
}

func newPubSubService(
	datadir string, requestTimeout time.Duration,
) (ports.PubSub, error) {
	if !config.GetBool(config.WebhooksEnabledKey) {
		return pubsub.NewNoopService(), nil
	}
	return pubsub.NewService(datadir, nil, requestTimeout)
}

func startPriceFeeder(oracleSvc *oracle.Service, quoteAsset string) error {
	interval := time.Duration(config.GetInt(config.PriceFeederIntervalKey)) * time.Millisecond
	feeder, err := krakenfeeder.NewKrakenPriceFeeder(
		config.GetString(config.PriceFeederURLKey), interval,
	)
	if err != nil {
		return err
	}

	configMarkets := config.GetPriceFeederMarkets()
	markets := make([]ports.Market, 0, len(configMarkets))
	for _, m := range configMarkets {
		markets = append(markets, krakenfeeder.NewMarket(m.Asset, quoteAsset, m.Ticker))
	}

	return oracleSvc.StartFeed(
		feeder, markets, config.GetInt(config.PriceFeederRateKey),
	)
}

func serveMetrics(port int, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Warn("metrics server stopped")
		}
	}()
	log.Infof("metrics are exposed on port %d", port)
	return server
}
