package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/game/match"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/spawn"
	"github.com/udisondev/skirmish/internal/world"
)

// Console meta commands. They inspect the match without changing it.
const (
	metaStatus = "status"
	metaMap    = "map"
	metaLog    = "log"
	metaHelp   = "help"
	metaQuit   = "quit"
)

var errEmptyLine = errors.New("empty line")

const helpText = `move phase:    up | down | left | right (u/d/l/r), finalize (f)
attack phase:  cursor <dir> (c), ability <1-3> (a), cancel, confirm (x)
done phase:    end (e)
anytime:       status, map, log, help, quit`

// action is one parsed console line: either an engine command or a meta command.
type action struct {
	cmd  match.Command
	meta string
}

// parseLine decodes a console line. Blank lines and #-comments yield errEmptyLine.
func parseLine(line string) (action, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return action{}, errEmptyLine
	}
	verb, args := fields[0], fields[1:]

	switch verb {
	case "up", "down", "left", "right", "u", "d", "l", "r":
		dir, _ := match.ParseDirection(verb)
		return action{cmd: match.MoveStep{Dir: dir}}, nil
	case "move", "m":
		dir, err := directionArg(verb, args)
		if err != nil {
			return action{}, err
		}
		return action{cmd: match.MoveStep{Dir: dir}}, nil
	case "finalize", "f", "stay":
		return action{cmd: match.FinalizeMove{}}, nil
	case "cursor", "c":
		dir, err := directionArg(verb, args)
		if err != nil {
			return action{}, err
		}
		return action{cmd: match.MoveCursor{Dir: dir}}, nil
	case "ability", "a":
		if len(args) != 1 {
			return action{}, fmt.Errorf("%s: need an ability number", verb)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return action{}, fmt.Errorf("%s: %q is not a number", verb, args[0])
		}
		return action{cmd: match.SelectAbility{Index: n - 1}}, nil
	case "cancel":
		return action{cmd: match.CancelAbility{}}, nil
	case "confirm", "attack", "x":
		return action{cmd: match.Confirm{}}, nil
	case "end", "e":
		return action{cmd: match.EndTurn{}}, nil
	case metaStatus, "s":
		return action{meta: metaStatus}, nil
	case metaMap, metaLog, metaHelp:
		return action{meta: verb}, nil
	case metaQuit, "exit", "q":
		return action{meta: metaQuit}, nil
	}
	return action{}, fmt.Errorf("unknown command %q (try help)", verb)
}

func directionArg(verb string, args []string) (match.Direction, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: need a direction", verb)
	}
	dir, err := match.ParseDirection(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", verb, err)
	}
	return dir, nil
}

// console drives a match from text input and renders it as text.
type console struct {
	out     io.Writer
	match   *match.Match
	world   *world.World
	pickups *spawn.Manager
}

// loop executes lines from r until input ends, the player quits, the match
// is over or ctx is cancelled.
func (c *console) loop(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(ctx, r)
	for {
		if c.match.Over() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := c.exec(line); quit {
				return nil
			}
		}
	}
}

// exec runs one line and reports whether the player asked to quit.
// Engine events are printed through the event sink, not here.
func (c *console) exec(line string) bool {
	act, err := parseLine(line)
	if errors.Is(err, errEmptyLine) {
		return false
	}
	if err != nil {
		fmt.Fprintf(c.out, "? %v\n", err)
		return false
	}

	switch act.meta {
	case metaQuit:
		return true
	case metaStatus:
		c.renderStatus()
	case metaMap:
		c.renderMap()
	case metaLog:
		for _, l := range c.match.Log() {
			fmt.Fprintln(c.out, l)
		}
	case metaHelp:
		fmt.Fprintln(c.out, helpText)
	}
	if act.cmd == nil {
		return false
	}

	active := c.match.Active()
	if active == nil {
		fmt.Fprintln(c.out, "? no unit can act")
		return false
	}
	if _, err := c.match.Issue(active.ID, act.cmd); err != nil {
		slog.Debug("command rejected", "unit", active.Name, "command", act.cmd, "err", err)
	}
	return false
}

// printEvent writes a combat-log line. Cosmetic events are skipped.
func (c *console) printEvent(e event.Event) {
	if !e.Loggable() {
		return
	}
	prefix := "  "
	switch e.Kind {
	case event.KindRejected:
		prefix = "! "
	case event.KindTurn:
		prefix = "> "
	case event.KindGameOver, event.KindBarrierBreach, event.KindNoEligible:
		prefix = "* "
	}
	fmt.Fprintf(c.out, "%s[%d] %s\n", prefix, e.Turn, e.Message)
}

func (c *console) renderStatus() {
	if a := c.match.Active(); a != nil {
		fmt.Fprintf(c.out, "turn %d: %s (%s) in %s phase at %s, cursor %s\n",
			c.match.Turn(), a.Name, a.Team, a.Phase, a.Pos, a.Cursor)
		for i, ab := range a.Abilities {
			state := "ready"
			if !ab.Ready() {
				state = fmt.Sprintf("cooldown %d", ab.RemainingCooldown)
			}
			marker := " "
			if i == a.Selected {
				marker = "*"
			}
			fmt.Fprintf(c.out, " %s%d %-20s %3d mana  %s\n", marker, i+1, ab.Name, ab.ManaCost, state)
		}
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTEAM\tPOS\tHP\tMANA\tKEYS R/B\tSTATE")
	for _, u := range c.match.Units() {
		state := u.Phase.String()
		switch {
		case !u.Alive():
			state = fmt.Sprintf("dead %d", u.DeathTimer)
		case u.IsBase():
			state = "barrier " + u.Barrier.String()
		case u.IsMonster():
			state = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%d/%d\t%d/%d\t%s\n",
			u.ID, u.Name, u.Team, u.Pos,
			u.Health(), u.MaxHealth(), u.Mana(), u.MaxMana(),
			u.RedKeys, u.BlueKeys, state)
	}
	tw.Flush()
}

// renderMap draws the grid as the active team sees it. Units of the other
// side outside the fog are hidden, and so are opponents standing in bushes.
func (c *console) renderMap() {
	active := c.match.Active()
	occupant := make(map[model.Point]*model.Unit)
	for _, u := range c.match.Units() {
		if u.Alive() {
			occupant[u.Pos] = u
		}
	}
	items := make(map[model.Point]bool)
	if c.pickups != nil {
		for _, p := range c.pickups.Pickups() {
			items[p.Pos] = true
		}
	}

	var b strings.Builder
	size := c.world.Size()
	for y := range size {
		for x := range size {
			p := model.Pt(x, y)
			b.WriteByte(c.glyph(p, active, occupant[p], items[p]))
		}
		b.WriteByte('\n')
	}
	io.WriteString(c.out, b.String())
}

func (c *console) glyph(p model.Point, active, u *model.Unit, item bool) byte {
	visible := c.world.IsVisible(p)
	if u != nil && active != nil {
		friendly := u.Team == active.Team
		hidden := !friendly && (!visible || c.world.Overlay(p) == model.OverlayBush)
		if !hidden {
			return unitGlyph(u, active)
		}
	}
	if !visible {
		return '?'
	}
	if item {
		return 'o'
	}
	switch {
	case c.world.Overlay(p) == model.OverlayBarrier:
		return '='
	case c.world.Overlay(p) == model.OverlayBush:
		return '"'
	case c.world.Tile(p) == world.TileRock:
		return '#'
	case c.world.Tile(p) == world.TileWater:
		return '~'
	case c.world.IsHighlighted(p):
		return '*'
	}
	return '.'
}

// unitGlyph: the active unit is '@', champions use the first letter of their
// name (upper case for blue), monsters 'm', bases 'B'/'R'.
func unitGlyph(u, active *model.Unit) byte {
	switch {
	case u == active:
		return '@'
	case u.IsMonster():
		return 'm'
	case u.IsBase():
		if u.Team == model.TeamBlue {
			return 'B'
		}
		return 'R'
	}
	ch := u.Name[0]
	if u.Team == model.TeamBlue {
		return byte(strings.ToUpper(string(ch))[0])
	}
	return byte(strings.ToLower(string(ch))[0])
}

// readLines streams lines from r until EOF or ctx is done, then closes the
// channel. A read blocked on r still holds the goroutine until r returns.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			slog.Warn("reading input", "err", err)
		}
	}()
	return lines
}
