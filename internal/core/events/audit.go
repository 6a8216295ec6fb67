package events

import (
	"context"
	"log/slog"
)

// AuditedEventTypes lists the HR events written to the audit log.
var AuditedEventTypes = []string{
	EventTypeVacationStatusChanged,
	EventTypeEmployeeDeactivated,
	EventTypeContractRenewalDue,
}

// RegisterAuditLog subscribes a structured-log writer to every HR event.
func RegisterAuditLog(bus *EventBus, logger *slog.Logger) {
	for _, eventType := range AuditedEventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
			logger.Info("audit",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"occurred_at", event.OccurredAt(),
				"payload", event.Payload())
			return nil
		})
	}
}
