package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harun/clawgolf/pkg/round"
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start or resume a round: --courseId <id>",
		Long: `Start a round on a course. When the server reports a round already in
progress for this agent, that round is resumed instead. The course is
remembered, so later starts can omit --courseId.`,
		Args: cobra.NoArgs,
		RunE: runStart,
	}
	cmd.Flags().String("courseId", "", "Course to play (defaults to the last course played)")
	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	courseID, _ := cmd.Flags().GetString("courseId")

	return withSession(cmd, func(s *session) error {
		outcome, err := s.rounds.Start(s.ctx, round.StartRequest{
			CourseID:     courseID,
			TeeColor:     s.cfg.TeeColor,
			YardsPerCell: s.cfg.YardsPerCell,
		})
		if err != nil {
			return err
		}

		r := outcome.Round
		if outcome.Resumed {
			s.out.Linef("Resuming existing round %s...", r.ID)
			s.out.Linef("Resumed on %s. Hole %d, Stroke %d.", outcome.DisplayName(), r.CurrentHoleNumber, r.StrokeCount+1)
			return nil
		}

		par := "?"
		if p, ok := r.CurrentPar(); ok {
			par = strconv.Itoa(p)
		}
		s.out.Linef("Round started on %s. Hole %d, Par %s.", outcome.DisplayName(), r.CurrentHoleNumber, par)
		return nil
	})
}
