package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/udisondev/skirmish/internal/db"
	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/model"
)

var errNoDatabase = errors.New("database is disabled in config")

// matchStore is where finished matches are recorded.
type matchStore interface {
	Save(ctx context.Context, rec db.MatchRecord) error
}

// recorder saves the match summary once, on the first terminal event.
type recorder struct {
	store     matchStore
	id        uuid.UUID
	picks     []string
	startedAt time.Time
	now       func() time.Time
	saved     bool
}

func newRecorder(store matchStore, id uuid.UUID, picks []string) *recorder {
	return &recorder{
		store:     store,
		id:        id,
		picks:     picks,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

func (r *recorder) handle(ctx context.Context, e event.Event) error {
	if r.saved {
		return nil
	}
	var winner model.Team
	switch e.Kind {
	case event.KindGameOver:
		winner = e.Team
	case event.KindNoEligible:
		winner = model.TeamNone
	default:
		return nil
	}

	rec := db.MatchRecord{
		ID:         r.id,
		Picks:      r.picks,
		Winner:     winner,
		Turns:      e.Turn,
		StartedAt:  r.startedAt,
		FinishedAt: r.now(),
	}
	if err := r.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("recording match: %w", err)
	}
	r.saved = true
	return nil
}

func (a *app) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded matches and wins per team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.Database.Enabled {
				return errNoDatabase
			}
			ctx := cmd.Context()
			conn, err := db.New(ctx, a.cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer conn.Close()
			return printHistory(ctx, a.out, conn.History(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "how many recent matches to list")
	return cmd
}

// historyReader is the read side of the history repository.
type historyReader interface {
	Wins(ctx context.Context) (map[model.Team]int, error)
	Recent(ctx context.Context, limit int) ([]db.MatchRecord, error)
}

func printHistory(ctx context.Context, out io.Writer, h historyReader, limit int) error {
	wins, err := h.Wins(ctx)
	if err != nil {
		return err
	}
	recent, err := h.Recent(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "wins: blue %d, red %d, none %d\n",
		wins[model.TeamBlue], wins[model.TeamRed], wins[model.TeamNone])
	if len(recent) == 0 {
		fmt.Fprintln(out, "no matches recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tWINNER\tTURNS\tPICKS\tID")
	for _, m := range recent {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%s\n",
			m.FinishedAt.Format(time.DateTime), m.Winner, m.Turns, m.Picks, m.ID)
	}
	return tw.Flush()
}
