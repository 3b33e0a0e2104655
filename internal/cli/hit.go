package cli

import (
	"github.com/spf13/cobra"

	"github.com/harun/clawgolf/pkg/scorecard"
	"github.com/harun/clawgolf/pkg/shot"
)

func newHitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hit",
		Short: "Execute a shot: --club <name> --aim <deg> --power <1-100>",
		Long: `Execute a shot. Aim is a compass bearing in degrees, 0 straight at the
flag line, clockwise. Power is a percentage (1-100) or a fraction (0-1).`,
		Example: "  clawgolf hit --club driver --aim 355 --power 90",
		Args:    cobra.NoArgs,
		RunE:    runHit,
	}
	cmd.Flags().String("club", "", "Club name, e.g. driver, 7-iron, pw")
	cmd.Flags().String("aim", "", "Aim in degrees (0-360)")
	cmd.Flags().String("power", "", "Power, 1-100 or 0.0-1.0")
	return cmd
}

func runHit(cmd *cobra.Command, args []string) error {
	club, _ := cmd.Flags().GetString("club")
	aim, _ := cmd.Flags().GetString("aim")
	power, _ := cmd.Flags().GetString("power")

	// Reject bad input before touching state or the network.
	decision, err := shot.Normalize(club, aim, power)
	if err != nil {
		return err
	}

	return withSession(cmd, func(s *session) error {
		courseID, roundID, err := s.rounds.Active()
		if err != nil {
			return err
		}

		s.out.ShotSummary(decision)

		resp, err := s.client.SubmitShot(s.ctx, courseID, roundID, decision)
		if err != nil {
			return err
		}

		s.out.ShotResult(resp.ShotResult)
		if resp.HoleCompleted {
			s.out.Line("Hole complete.")
		}

		finished, err := s.rounds.AfterShot(resp)
		if finished {
			s.out.Line(s.out.style(s.out.good, "Round complete!"))
			if rerr := scorecard.Build(resp.Round).Render(s.out.out); rerr != nil && err == nil {
				err = rerr
			}
		}
		return err
	})
}
