package cmd

import (
	_ "ovnup/cmd/cluster"
	_ "ovnup/cmd/root"
	_ "ovnup/cmd/server"
)
