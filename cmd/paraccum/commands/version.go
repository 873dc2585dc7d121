package commands

import (
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X".
var Version = "0.1.0-dev"

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the paraccum CLI",
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(Version)
		},
	}
}
