package main

import (
	"net"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/dgraph-io/ristretto"
	"github.com/elastic/go-elasticsearch/v8"
	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	_ "google.golang.org/grpc/encoding/gzip"

	"github.com/beacon-mobile/beacon/pkg/cache"
	"github.com/beacon-mobile/beacon/pkg/config"
	"github.com/beacon-mobile/beacon/pkg/elasticsearch/bootstrapper"
	"github.com/beacon-mobile/beacon/pkg/elasticsearch/client"
	"github.com/beacon-mobile/beacon/pkg/event"
	"github.com/beacon-mobile/beacon/pkg/idgen"
	"github.com/beacon-mobile/beacon/pkg/otlp"
	"github.com/beacon-mobile/beacon/pkg/rum/model"
	"github.com/beacon-mobile/beacon/pkg/rum/scope"
	"github.com/beacon-mobile/beacon/pkg/rum/service"
	commandServer "github.com/beacon-mobile/beacon/pkg/server"
	"github.com/beacon-mobile/beacon/pkg/sink"
	"github.com/beacon-mobile/beacon/pkg/write_buffer"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	eventBus := EventBus.New()

	if cfg.ElasticsearchEnabled {
		es, err := elasticsearch.NewDefaultClient()
		if err != nil {
			logger.Fatal("Failed to create elasticsearch client", zap.Error(err))
		}

		bs := bootstrapper.NewBootstrapper(es, logger)
		if err := bs.BootstrapElasticsearch(); err != nil {
			logger.Fatal("Failed to bootstrap elasticsearch", zap.Error(err))
		}

		versionCache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 1e6,
			MaxCost:     1 << 26,
			BufferItems: 64,
		})
		if err != nil {
			logger.Fatal("Failed to create version guard cache", zap.Error(err))
		}

		bc := client.NewBeaconClientImpl(es, client.Async)
		eventBuffer := write_buffer.NewEventWriteBufferImpl[any](
			bc,
			bootstrapper.EventIndexName,
			logger,
		)
		esSink := sink.NewElasticsearchSink(
			cache.NewWriteBehindCacheImpl[model.ViewEvent](versionCache),
			eventBuffer,
			logger,
		)
		if err := esSink.Start(eventBus); err != nil {
			logger.Fatal("Failed to start elasticsearch sink", zap.Error(err))
		}
	}

	if cfg.OTLPExportAddr != "" {
		conn, err := grpc.NewClient(
			cfg.OTLPExportAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			logger.Fatal("Failed to dial downstream collector", zap.Error(err))
		}
		exporter := otlp.NewExporter(conn, logger)
		if err := exporter.Start(eventBus); err != nil {
			logger.Fatal("Failed to start OTLP exporter", zap.Error(err))
		}
	}

	deps := scope.Dependencies{
		ApplicationID: cfg.ApplicationID,
		IDGenerator:   idgen.NewUUIDGenerator(),
		EventOutput:   event.NewBusOutput(eventBus, logger),
		Logger:        logger,
	}

	var sessionSampler service.SessionSampler
	if cfg.DeterministicSampling {
		sessionSampler = service.NewDeterministicSessionSampler(cfg.SessionSampleRate)
	} else {
		sessionSampler = service.NewProbabilisticSessionSampler(
			cfg.SessionSampleRate,
			time.Now().UnixNano(),
		)
	}

	monitor := service.NewMonitor(
		deps,
		sessionSampler,
		service.SessionPolicy{
			InactivityTimeout: cfg.SessionInactivityTimeout,
			MaxDuration:       cfg.SessionMaxDuration,
		},
		logger,
	)
	monitor.Start()
	defer monitor.Stop()

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.Error(err))
	}

	srv := grpc.NewServer()
	commandServiceServer := commandServer.NewCommandServiceServerImpl(logger, monitor)
	protoLogs.RegisterLogsServiceServer(srv, commandServiceServer)
	logger.Info("gRPC service started, listening for RUM commands...",
		zap.String("addr", cfg.ListenAddr),
	)

	if err := srv.Serve(listener); err != nil {
		logger.Fatal("Failed to serve", zap.Error(err))
	}
}
