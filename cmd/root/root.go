package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "ovnup",
	Short: "OVN control plane bring-up orchestrator",
	Long:  `ovnup brings up and tears down the daemons of a development OVN control plane: the backing databases, ovn-northd and ovn-controller`,
}
