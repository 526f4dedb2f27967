package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"ovnup/cmd/root"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ovnup %s (built %s, %s/%s)\n", Version, BuildTime, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	root.RootCmd.AddCommand(versionCmd)
}
