package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/okian/fightpicks/internal/config"
	"github.com/okian/fightpicks/internal/domain/pickset"
)

func newPickCmd(cfg *config.Config) *cobra.Command {
	var (
		eventID string
		reset   bool
	)
	cmd := &cobra.Command{
		Use:   "pick <fighter>...",
		Short: "Pick winners for an event and save them",
		Long: `Add each named fighter to your picks and save. Fighters you already
picked stay picked. Picking the opponent of an existing pick is refused
unless --reset starts from an empty card.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventID == "" {
				eventID = cfg.DefaultEvent
			}
			ctl, err := openView(cmd.Context(), cfg, eventID)
			if err != nil {
				return err
			}
			ev := ctl.View().Event

			if reset {
				for _, w := range ctl.View().Winners {
					opponent, _ := ev.Opponent(w)
					if _, err := ctl.Toggle(w, opponent); err != nil {
						return fmt.Errorf("clear %s: %w", w, err)
					}
				}
			}
			for _, fighter := range args {
				if slices.Contains(ctl.View().Winners, fighter) {
					continue
				}
				opponent, ok := ev.Opponent(fighter)
				if !ok {
					return fmt.Errorf("%w: %q", pickset.ErrUnknownFighter, fighter)
				}
				if _, err := ctl.Toggle(fighter, opponent); err != nil {
					return fmt.Errorf("pick %s: %w", fighter, err)
				}
			}

			if err := ctl.Save(cmd.Context()); err != nil {
				return err
			}
			render(cmd.OutOrStdout(), ctl.View())
			return nil
		},
	}
	cmd.Flags().StringVarP(&eventID, "event", "e", "", "event id, defaults to default_event")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop existing picks before adding")
	return cmd
}
