package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// NewTrackCommand creates the event tracking command group.
func NewTrackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Event tracking",
		Long:  "Record tracked events. Requires event_actid and event_key to be configured.",
	}

	cmd.AddCommand(newTrackEventCommand())

	return cmd
}

func newTrackEventCommand() *cobra.Command {
	var request activecampaign.TrackEventRequest

	cmd := &cobra.Command{
		Use:   "event NAME",
		Short: "Record an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			request.Event = args[0]

			result, err := client.EventTracking().TrackEvent(commandContext(cmd), &request)
			if err != nil {
				return fmt.Errorf("failed to track event: %w", err)
			}

			if result.Success.Int() != 1 {
				printf(cmd, "Event not recorded: %s\n", orNA(result.Message))

				return nil
			}

			printf(cmd, "Recorded event %s\n", request.Event)

			return nil
		},
	}

	cmd.Flags().StringVar(&request.EventData, "data", "", "event data")
	cmd.Flags().StringVar(&request.Email, "email", "", "email of the visitor")

	return cmd
}
