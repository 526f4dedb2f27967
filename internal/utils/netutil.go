package utils

import (
	"fmt"
	"net"
	"os"
	"time"
)

// CheckPortConnectable reports whether something is listening on the port
func CheckPortConnectable(port int) bool {
	timeout := time.Second
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	if conn != nil {
		conn.Close()
		return true
	}
	return false
}

// PathExists reports whether the given file exists. Socket and pid files
// appearing under the run directory are the readiness signals of the
// launched daemons.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
