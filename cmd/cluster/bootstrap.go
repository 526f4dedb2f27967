package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/services"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Recreate the backing database files from their schemas",
	Long:  `Recreate the backing database files from their schemas. Prior database contents are disposable scratch state and are deleted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := bootstrapStores(); err != nil {
			logger.Fatal(err)
		}
	},
}

func bootstrapStores() error {
	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return err
	}
	if err := manager.Configure(); err != nil {
		return err
	}
	if err := manager.Bootstrap(); err != nil {
		return err
	}
	fmt.Println("Stores created")
	return nil
}

func init() {
	clusterCmd.AddCommand(bootstrapCmd)
}
