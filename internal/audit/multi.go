package audit

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

// MultiSink fans an event out to every sink and joins their errors.
type MultiSink []portssvc.AuditSink

var _ portssvc.AuditSink = MultiSink(nil)

// Record hands event to each sink in order. A failing sink does not stop the rest.
func (m MultiSink) Record(ctx context.Context, event domain.AuditEvent) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
