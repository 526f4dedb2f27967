package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/services"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove session artifacts (best-effort)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCleanup(); err != nil {
			logger.Fatal(err)
		}
	},
}

func runCleanup() error {
	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return err
	}
	manager.Cleanup()
	fmt.Println("Cleanup finished")
	return nil
}

func init() {
	clusterCmd.AddCommand(cleanupCmd)
}
