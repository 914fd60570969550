package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for arccms.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arccms",
		Short: "Resolve ARC Lebanon site content from the Wagtail CMS",
		Long: `arccms resolves the content of the ARC Lebanon website from its Wagtail CMS.

Each section of the site (hero, about, events, gallery, rules, volunteers,
organizers, navigation, footer) is resolved on its own. A section whose
content is missing, or whose CMS request fails, falls back to built-in
defaults, so the site always renders.

The CMS base URL defaults to https://api.arc.pingtech.dev and can be set
with the ARC_API_BASE_URL environment variable, a configuration file or
the --base-url flag.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewHealthCmd())
	cmd.AddCommand(NewDocumentCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
