package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/tellerledger/internal/domain"
)

type namedSink struct {
	sink AuditSink
	name string
}

// MultiSink fans audit records out to several sinks. Every sink sees every
// record; failures are joined.
type MultiSink struct {
	onFailure func(name string, err error)
	sinks     []namedSink
}

// NewMultiSink creates an empty fan-out sink. onFailure, when not nil, is
// called for each failed sink.
func NewMultiSink(onFailure func(name string, err error)) *MultiSink {
	return &MultiSink{onFailure: onFailure}
}

// Add registers a sink under name.
func (m *MultiSink) Add(name string, sink AuditSink) {
	m.sinks = append(m.sinks, namedSink{name: name, sink: sink})
}

// Len returns the number of registered sinks.
func (m *MultiSink) Len() int {
	return len(m.sinks)
}

// Record implements AuditSink.
func (m *MultiSink) Record(ctx context.Context, record *domain.AuditRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.sink.Record(ctx, record); err != nil {
			if m.onFailure != nil {
				m.onFailure(s.name, err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
