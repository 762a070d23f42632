package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/fightpicks/internal/app"
	"github.com/okian/fightpicks/internal/config"
)

func newShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show [event]",
		Short: "Show an event card with your saved picks",
		Long: `Show the fight card for an event, marking your saved picks and any
decided winners. The event defaults to default_event ("latest").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := openView(cmd.Context(), cfg, eventArg(cfg, args))
			if err != nil {
				return err
			}
			render(cmd.OutOrStdout(), ctl.View())
			return nil
		},
	}
}

func openView(ctx context.Context, cfg *config.Config, eventID string) (*service.Controller, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	ctl := service.New(eventID, c)
	if err := ctl.Load(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", eventID, err)
	}
	return ctl, nil
}

func render(w io.Writer, v service.View) {
	ev := v.Event
	status := "open"
	if v.Locked {
		status = "locked"
	}
	fmt.Fprintf(w, "%s (%s)  starts %s  %s\n", ev.Name, ev.ID, ev.StartTime, status)

	picked := make(map[string]bool, len(v.Winners))
	for _, name := range v.Winners {
		picked[name] = true
	}
	for i, f := range ev.Fights {
		sides := make([]string, 0, len(f.Fighters))
		for _, name := range f.Fighters {
			mark := "[ ]"
			if picked[name] {
				mark = "[x]"
			}
			sides = append(sides, mark+" "+name)
		}
		line := fmt.Sprintf("%2d. %s", i+1, strings.Join(sides, " vs "))
		if f.Winner != "" {
			line += "  winner: " + f.Winner
		}
		fmt.Fprintln(w, line)
	}

	switch {
	case !v.Authenticated:
		fmt.Fprintln(w, "signed out: saved picks are not shown")
	case v.Score != nil:
		fmt.Fprintf(w, "score: %d\n", *v.Score)
	}
	if v.Dirty {
		fmt.Fprintln(w, "unsaved changes")
	}
}
