package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/services"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop the control plane daemons and remove runtime artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		if err := tearDown(); err != nil {
			logger.Fatal(err)
		}
	},
}

func tearDown() error {
	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return err
	}
	warnings := manager.Stop()
	for _, w := range warnings {
		fmt.Printf("warning: %v\n", w)
	}
	fmt.Println("Control plane is down")
	return nil
}

func init() {
	clusterCmd.AddCommand(downCmd)
}
