package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/harun/clawgolf/pkg/bearing"
)

func newBearingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bearing",
		Short: "Calculate aim angle: --ahead <yards> --right <yards>",
		Long: `Calculate the aim bearing and distance to a target read off the map
rulers. Runs locally; no credentials or state file are needed.`,
		Args: cobra.NoArgs,
		RunE: runBearing,
	}
	cmd.Flags().String("ahead", "", "Yards toward the green (negative = behind)")
	cmd.Flags().String("right", "", "Yards right of the ball (negative = left)")
	return cmd
}

func runBearing(cmd *cobra.Command, args []string) error {
	ahead, right, err := bearing.Parse(changedString(cmd, "ahead"), changedString(cmd, "right"))
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	res := bearing.Calculate(ahead, right)
	if !res.Defined {
		out.Line("Target is at your ball position — no bearing to calculate.")
		return nil
	}
	out.Linef("Bearing: %d deg | Distance: %d yards", roundHalfUp(res.Degrees), roundHalfUp(res.Distance))
	return nil
}

// changedString returns the flag value, or nil when it was not given.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
