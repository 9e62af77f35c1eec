package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/tellerledger/internal/domain"
)

// LogSink writes audit records as structured log events. Applied calls log
// at info, rejections at warn.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "audit").Logger()}
}

// Record implements usecase.AuditSink.
func (s *LogSink) Record(_ context.Context, record *domain.AuditRecord) error {
	event := s.logger.Info()
	if !record.Succeeded() {
		event = s.logger.Warn()
	}

	dict := zerolog.Dict()
	for k, v := range record.Arguments {
		dict = dict.Str(k, v)
	}

	event.
		Str("audit_id", record.ID).
		Str("operation", string(record.Operation)).
		Str("outcome", record.Outcome).
		Str("request_id", record.RequestID).
		Time("at", record.At).
		Dict("arguments", dict)

	if record.Error != "" {
		event = event.Str("error", record.Error)
	}

	event.Msg("audit")
	return nil
}
