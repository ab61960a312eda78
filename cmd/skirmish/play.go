package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skirmish/internal/bus"
	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/db"
	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/game/match"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/spawn"
	"github.com/udisondev/skirmish/internal/world"
)

var defaultPicks = []string{"Garen", "Darius", "Ashe", "Soraka"}

type playOptions struct {
	picks  []string
	script string
	seed   uint64
}

func (a *app) playCmd() *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match from the console",
		Long: `Play a match. Picks fill the seats in roster order: blue-1, red-1,
blue-2, red-2. Commands are read from stdin, or from --script.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.play(cmd.Context(), opts)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&opts.picks, "picks", "p", defaultPicks, "champions in seat order")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "read commands from this file instead of stdin")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "pickup spawner seed (0 uses the config seed or a random one)")
	return cmd
}

// play sets up the roster, world, spawner and match, then runs the console.
// With the bus enabled, events are rendered and recorded by a subscriber;
// otherwise the match sink does it inline.
func (a *app) play(ctx context.Context, opts playOptions) error {
	roster, err := data.Load(a.fs, a.cfg.Roster)
	if err != nil {
		return err
	}
	units, seats, err := roster.Build(opts.picks)
	if err != nil {
		return err
	}
	w, err := world.New(roster.Layout())
	if err != nil {
		return fmt.Errorf("building map: %w", err)
	}

	seed := opts.seed
	if seed == 0 {
		seed = a.cfg.Seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	pickups, err := spawn.NewManager(roster.SpawnConfig(), w, seed)
	if err != nil {
		return fmt.Errorf("pickup spawner: %w", err)
	}

	rules, err := matchRules(a.cfg.Rules)
	if err != nil {
		return err
	}
	m, start, err := match.New(units, match.Options{
		Seats:   seats,
		Terrain: w,
		Pickups: pickups,
		Rules:   &rules,
	})
	if err != nil {
		return err
	}

	id := uuid.New()
	picked := make([]string, 0, len(opts.picks))
	for _, u := range units[:len(opts.picks)] {
		picked = append(picked, u.Name)
	}
	slog.Info("match created", "id", id, "picks", picked, "seed", seed)

	var rec *recorder
	if a.cfg.Database.Enabled {
		conn, err := db.New(ctx, a.cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := conn.Migrate(ctx); err != nil {
			return err
		}
		rec = newRecorder(conn.History(), id, picked)
	}

	out := &lockedWriter{w: a.out}
	con := &console{out: out, match: m, world: w, pickups: pickups}
	deliver := func(ctx context.Context, e event.Event) error {
		con.printEvent(e)
		if rec != nil {
			return rec.handle(ctx, e)
		}
		return nil
	}

	in, closeIn, err := a.input(opts.script)
	if err != nil {
		return err
	}
	defer closeIn()

	fmt.Fprintf(out, "match %s: %v (type help for commands)\n", id, picked)

	if !a.cfg.Bus.Enabled {
		sink := func(e event.Event) {
			if err := deliver(ctx, e); err != nil {
				slog.Error("failed to handle event", "kind", e.Kind, "error", err)
			}
		}
		for _, e := range start {
			sink(e)
		}
		m.SetEventSink(sink)
		err = con.loop(ctx, in)
		summary(out, m)
		return err
	}

	b := bus.New(a.cfg.Bus.Topic, a.cfg.Bus.Buffer)
	sub, err := b.Subscribe(ctx)
	if err != nil {
		b.Close()
		return err
	}
	sink := b.Sink(id.String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sub.Run(gctx, func(ctx context.Context, env bus.Envelope) error {
			return deliver(ctx, env.Event)
		})
	})
	g.Go(func() error {
		defer b.Close()
		for _, e := range start {
			sink(e)
		}
		m.SetEventSink(sink)
		return con.loop(gctx, in)
	})
	err = g.Wait()
	summary(out, m)
	return err
}

// input returns the command source: the script file on the app filesystem,
// or the app's stdin.
func (a *app) input(script string) (io.Reader, func(), error) {
	if script == "" {
		return a.in, func() {}, nil
	}
	f, err := a.fs.Open(script)
	if err != nil {
		return nil, nil, fmt.Errorf("opening script: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func summary(out io.Writer, m *match.Match) {
	switch {
	case m.Winner() != model.TeamNone:
		fmt.Fprintf(out, "match over after %d turns: %s wins\n", m.Turn(), m.Winner())
	case m.Over():
		fmt.Fprintf(out, "match over after %d turns: no winner\n", m.Turn())
	default:
		fmt.Fprintf(out, "match abandoned at turn %d\n", m.Turn())
	}
}

// lockedWriter serialises writes from the console loop and the event
// subscriber.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
