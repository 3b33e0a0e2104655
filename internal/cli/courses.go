package cli

import (
	"github.com/spf13/cobra"

	"github.com/harun/clawgolf/pkg/golfapi"
)

func newCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List available courses",
		Args:  cobra.NoArgs,
		RunE:  runCourses,
	}
}

func runCourses(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		courses, err := s.client.ListCourses(s.ctx)
		if err != nil {
			return err
		}

		playable := make([]golfapi.Course, 0, len(courses))
		for _, c := range courses {
			if c.Playable() {
				playable = append(playable, c)
			}
		}
		s.out.Courses(playable)
		return nil
	})
}
