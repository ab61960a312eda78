package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/udisondev/skirmish/internal/data"
)

func (a *app) rosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "List champions and their abilities",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			roster, err := data.Load(a.fs, a.cfg.Roster)
			if err != nil {
				return err
			}
			return printRoster(a.out, roster)
		},
	}
}

func printRoster(out io.Writer, r *data.Roster) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHAMPION\tHP\tMANA\tDMG\tDEF P/M\tCRIT\tMOVE\tRANGE")
	for _, c := range r.Champions {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d/%d\t%d%%\t%d\t%d\n",
			c.Name, c.Health, c.Mana, c.Damage, c.PhysicalDefense, c.MagicalDefense,
			c.CritChance, c.MoveRange, c.AttackRange)
		for i, ab := range c.Abilities {
			fmt.Fprintf(tw, "  %d. %s\t%s\t%d mana\tcd %d\t%s\t\t\t\n",
				i+1, ab.Name, abilityKind(ab), ab.ManaCost, ab.Cooldown, ab.Description)
		}
	}
	return tw.Flush()
}

func abilityKind(ab data.AbilityDef) string {
	area := ab.Area
	if area == "" {
		area = "single"
	}
	switch ab.Type {
	case "BuffAbility":
		return fmt.Sprintf("buff +%d/+%d (%s)", ab.Attack, ab.Defense, area)
	case "DebuffAbility":
		return fmt.Sprintf("debuff -%d/-%d (%s)", ab.Attack, ab.Defense, area)
	}
	return fmt.Sprintf("%s %d %s (%s)", ab.AbilityType, ab.Attack, ab.DamageType, area)
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [roster.yaml]",
		Short: "Check the config and a roster file",
		Long: `Validate loads the config (already done before any command runs) and
the roster: the given file, the one named in the config, or the embedded
default. It also builds the map and the pickup spawner from it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := a.cfg.Roster
			if len(args) == 1 {
				path = args[0]
			}
			if err := validateRoster(a.fs, path, a.cfg); err != nil {
				return err
			}
			name := path
			if name == "" {
				name = "embedded roster"
			}
			fmt.Fprintf(a.out, "%s: ok\n", name)
			return nil
		},
	}
}
