package cluster

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/internal/models"
	"ovnup/services"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the enabled services",
	Run: func(cmd *cobra.Command, args []string) {
		if err := showStatus(); err != nil {
			logger.Fatal(err)
		}
	},
}

func showStatus() error {
	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return err
	}
	fmt.Printf("%-16s %-10s %-8s %s\n", "SERVICE", "STATUS", "PID", "UPTIME")
	for _, handle := range manager.GetInstances() {
		uptime := "-"
		if handle.Status == models.StatusRunning {
			if started := handle.StartedTime(); !started.IsZero() {
				uptime = time.Since(started).Round(time.Second).String()
			}
		}
		fmt.Printf("%-16s %-10s %-8d %s\n", handle.Service, handle.Status, handle.Pid, uptime)
	}
	return nil
}

func init() {
	clusterCmd.AddCommand(statusCmd)
}
