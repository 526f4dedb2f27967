/*
Copyright © 2025 ovnup authors
*/
package cluster

import (
	"github.com/spf13/cobra"

	"ovnup/cmd/root"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster lifecycle operations (up/down/bootstrap etc.)",
	Long:  `Cluster lifecycle operations (up/down/bootstrap etc.)`,
}

const clusterExample = `  # bring the whole control plane up
  ovnup cluster up

  # tear it down again
  ovnup cluster down`

func init() {
	root.RootCmd.AddCommand(clusterCmd)

	clusterCmd.Example = clusterExample
}
