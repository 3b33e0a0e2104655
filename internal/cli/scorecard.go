package cli

import (
	"github.com/spf13/cobra"

	"github.com/harun/clawgolf/pkg/scorecard"
)

func newScorecardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scorecard",
		Short: "View the current round scorecard",
		Args:  cobra.NoArgs,
		RunE:  runScorecard,
	}
}

func runScorecard(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		// resume returns the full round state without side effects
		r, err := s.rounds.Resume(s.ctx)
		if err != nil {
			return err
		}
		return scorecard.Build(*r).Render(s.out.out)
	})
}
