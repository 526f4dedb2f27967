package env

import (
	"os"
	"path/filepath"
)

// (default: %USERPROFILE%/.ovnup on Windows, $HOME/.ovnup on Linux)
var OvnupDir string = GetOvnupDir()

/**
 * Get ovnup base directory path
 * @returns {string} Returns ovnup base directory path
 */
func GetOvnupDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".ovnup")
}
