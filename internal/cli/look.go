package cli

import (
	"github.com/spf13/cobra"
)

func newLookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "look",
		Short: "See the current hole (ASCII map, yardages, hazards)",
		Args:  cobra.NoArgs,
		RunE:  runLook,
	}
}

func runLook(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		courseID, roundID, err := s.rounds.Active()
		if err != nil {
			return err
		}

		info, err := s.client.HoleInfo(s.ctx, courseID, roundID, s.cfg.YardsPerCell, s.cfg.MapFormat)
		if err != nil {
			return err
		}
		s.out.HoleContext(info)
		return nil
	})
}
