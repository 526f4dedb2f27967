package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"ovnup/internal/models"
	"ovnup/internal/utils"
	"ovnup/services"
)

type ClusterController struct {
	manager *services.ClusterManager
}

/**
 * Create new cluster controller instance
 * @param {*services.ClusterManager} manager - Manager of the bring-up session
 * @returns {*ClusterController} New cluster controller instance
 */
func NewClusterController(manager *services.ClusterManager) *ClusterController {
	return &ClusterController{
		manager: manager,
	}
}

/**
 * Register cluster API routes to the Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers routes for:
 *   - Service inspection (list/get)
 *   - Cluster teardown
 */
func (s *ClusterController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/ovnup/api/v1")
	api.GET("/services", s.ListServices)
	api.GET("/services/:name", s.GetService)
	api.GET("/cluster", s.GetCluster)
	api.POST("/cluster/teardown", s.Teardown)
}

// ListServices lists all enabled services with their runtime state
func (s *ClusterController) ListServices(c *gin.Context) {
	c.JSON(200, s.manager.GetInstances())
}

// GetService reports one service by name
func (s *ClusterController) GetService(c *gin.Context) {
	name := c.Param("name")

	handle := s.manager.GetInstance(name)
	if handle == nil {
		c.JSON(404, &models.ErrorResponse{
			Code:  "service.notexist",
			Error: fmt.Sprintf("service [%s] isn't enabled", name),
		})
		return
	}
	c.JSON(200, handle)
}

// GetCluster reports the resolved topology, chassis identity and whether
// the database tcp remotes currently accept connections
func (s *ClusterController) GetCluster(c *gin.Context) {
	topo := s.manager.Topology()
	c.JSON(200, gin.H{
		"systemId":   s.manager.SystemID(),
		"services":   topo.Services,
		"nb":         topo.Args.NbEndpoint,
		"sb":         topo.Args.SbEndpoint,
		"nbPortOpen": utils.CheckPortConnectable(topo.Args.NbPort),
		"sbPortOpen": utils.CheckPortConnectable(topo.Args.SbPort),
	})
}

// Teardown stops the cluster; stop failures are warnings, not errors
func (s *ClusterController) Teardown(c *gin.Context) {
	warnings := s.manager.Stop()
	msgs := []string{}
	for _, w := range warnings {
		msgs = append(msgs, w.Error())
	}
	c.JSON(200, gin.H{
		"status":   "stopped",
		"warnings": msgs,
	})
}
