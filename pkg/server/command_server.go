package server

import (
	"context"

	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// CommandProcessor is the monitor-side contract: enqueue one command for
// strictly ordered processing.
type CommandProcessor interface {
	Process(command model.Command)
}

// CommandServiceServerImpl receives instrumentation commands encoded as OTLP
// log records and feeds them to the monitor in arrival order. Malformed
// records are skipped, never failed back to the producer.
type CommandServiceServerImpl struct {
	protoLogs.UnimplementedLogsServiceServer
	logger    *zap.Logger
	processor CommandProcessor
}

func NewCommandServiceServerImpl(
	logger *zap.Logger,
	processor CommandProcessor,
) *CommandServiceServerImpl {
	logger.Info("Creating new CommandServiceServerImpl")
	return &CommandServiceServerImpl{
		logger:    logger,
		processor: processor,
	}
}

func (css *CommandServiceServerImpl) Export(
	ctx context.Context,
	req *protoLogs.ExportLogsServiceRequest,
) (*protoLogs.ExportLogsServiceResponse, error) {
	for _, resourceLogs := range req.ResourceLogs {
		for _, scopeLogs := range resourceLogs.ScopeLogs {
			for _, record := range scopeLogs.LogRecords {
				command, err := CommandFromLogRecord(record)
				if err != nil {
					css.logger.Warn("Skipping malformed command record", zap.Error(err))
					continue
				}
				css.processor.Process(command)
			}
		}
	}
	return &protoLogs.ExportLogsServiceResponse{}, nil
}
