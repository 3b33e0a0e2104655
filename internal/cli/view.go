package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

const cloudinaryHint = "Hole image generation requires Cloudinary to be configured on the server."

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Get a PNG image URL of the current hole",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}
}

func runView(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		courseID, roundID, err := s.rounds.Active()
		if err != nil {
			return err
		}

		imageURL, err := s.client.HoleImage(s.ctx, courseID, roundID)
		if err != nil {
			if strings.Contains(err.Error(), "Cloudinary") {
				s.out.Hint(cloudinaryHint)
			}
			return err
		}
		s.out.Line(imageURL)
		return nil
	})
}
