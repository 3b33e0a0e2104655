package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harun/clawgolf/internal/config"
)

const version = "0.1.0"

// NewRootCmd builds the clawgolf command tree. Each call returns fresh
// commands and flag sets.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clawgolf",
		Short: "clawgolf - You are the golfer. Your caddy is here to help.",
		Long: `clawgolf plays rounds on a remote golf simulation server.

It registers an agent on first use, starts or resumes rounds, shows the
current hole and submits shots. Credentials and preferences are kept in
agent.json.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	rootCmd.AddCommand(
		newCoursesCmd(),
		newStartCmd(),
		newLookCmd(),
		newHitCmd(),
		newViewCmd(),
		newScorecardCmd(),
		newBearingCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the command tree with the given arguments.
// This is called by main.main().
func Execute(ctx context.Context, args []string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the clawgolf version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "clawgolf version %s\n", version)
			return nil
		},
	}
}
