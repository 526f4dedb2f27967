package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"ovnup/cmd/root"
	"ovnup/controllers"
	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/internal/middleware"
	"ovnup/services"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the cluster status HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(context.Background()); err != nil {
			logger.Fatal(err)
		}
	},
}

func startServer(ctx context.Context) error {
	if config.Config.Server.Mode != "" {
		gin.SetMode(config.Config.Server.Mode)
	}
	router := gin.Default()
	router.Use(middleware.MetricsMiddleware())

	manager, err := services.NewClusterManager(&config.Config)
	if err != nil {
		return fmt.Errorf("resolve topology: %w", err)
	}
	if err := manager.Configure(); err != nil {
		return fmt.Errorf("configure: %w", err)
	}

	apiController := controllers.NewAPIController()
	apiController.RegisterRoutes(router)
	clusterController := controllers.NewClusterController(manager)
	clusterController.RegisterRoutes(router)

	return router.Run(config.Config.Server.Address)
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
}
