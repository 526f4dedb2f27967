package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/services"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Prepare directories and the persistent chassis system-id",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConfigure(); err != nil {
			logger.Fatal(err)
		}
	},
}

func runConfigure() error {
	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return err
	}
	if err := manager.Configure(); err != nil {
		return err
	}
	fmt.Printf("Configured, system-id %s\n", manager.SystemID())
	return nil
}

func init() {
	clusterCmd.AddCommand(configureCmd)
}
