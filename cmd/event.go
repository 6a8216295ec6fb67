package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish HR events through the audit log to inspect handler wiring`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample HR event",
	Long:  `Publish a sample event of the given type (vacation.status_changed, employee.deactivated, contract.renewal_due) to the event bus`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(args[0], eventSync)
	},
}

var (
	eventEmployeeID int64
	eventSync       bool
)

func sampleEvent(eventType string, employeeID int64) (events.Event, error) {
	now := time.Now()
	switch eventType {
	case events.EventTypeVacationStatusChanged:
		return events.NewVacationStatusChangedEvent(1, employeeID, "Pending", "Approved", 0), nil
	case events.EventTypeEmployeeDeactivated:
		return events.NewEmployeeDeactivatedEvent(employeeID, "sample@company.com"), nil
	case events.EventTypeContractRenewalDue:
		return events.NewContractRenewalDueEvent(1, employeeID, "Sample Employee", now, now.AddDate(0, 1, 0)), nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

func publishSampleEvent(eventType string, sync bool) error {
	lg := logger.LoggerWrapper()

	event, err := sampleEvent(eventType, eventEmployeeID)
	if err != nil {
		return err
	}

	eventBus := events.NewEventBus(lg)
	events.RegisterAuditLog(eventBus, lg)

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := deliver(ctx, eventBus, event, sync); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	lg.Info("sample event published successfully")
	return nil
}

// deliver runs the handlers in line when sync is set, so a failing handler
// fails the command. Otherwise it publishes and waits for the bus to drain.
func deliver(ctx context.Context, bus *events.EventBus, event events.Event, sync bool) error {
	if sync {
		return bus.PublishSync(ctx, event)
	}
	if err := bus.Publish(ctx, event); err != nil {
		return err
	}
	return bus.Drain(ctx)
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventEmployeeID, "employee-id", 1, "Employee id carried by the sample event")
	publishEventCmd.Flags().BoolVar(&eventSync, "sync", false, "Run handlers in line and fail on the first handler error")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
