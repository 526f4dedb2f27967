package cluster

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/services"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the configured installer commands",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInstall(context.Background()); err != nil {
			logger.Fatal(err)
		}
	},
}

func runInstall(ctx context.Context) error {
	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return err
	}
	if err := manager.Install(ctx); err != nil {
		return err
	}
	fmt.Println("Install steps completed")
	return nil
}

func init() {
	clusterCmd.AddCommand(installCmd)
}
