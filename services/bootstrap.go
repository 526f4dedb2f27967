package services

import (
	"fmt"
	"os"

	"ovnup/internal/logger"
	"ovnup/internal/models"
	"ovnup/internal/utils"
)

/**
 * Bootstrapper creates the backing stores of the enabled services.
 * Prior store contents are disposable scratch state; every bring-up run
 * recreates the database files from their schemas.
 */
type Bootstrapper struct {
	dataDir string
	runner  utils.CommandRunner
}

func NewBootstrapper(dataDir string, runner utils.CommandRunner) *Bootstrapper {
	return &Bootstrapper{
		dataDir: dataDir,
		runner:  runner,
	}
}

/**
 * ResetAndCreate the store of every enabled service requiring one
 * @param {[]models.ServiceSpec} specs - Enabled services (non-store entries skipped)
 * @returns {error} First creation failure; fatal for the whole bring-up
 * @description
 * - Deletes the existing database file and its stale lock artifact so an
 *   aborted prior run cannot block a fresh bring-up
 * - Recreates each file from its canonical schema via ovsdb-tool
 * - No partial-success mode: the first failure aborts
 */
func (b *Bootstrapper) ResetAndCreate(specs []models.ServiceSpec) error {
	if err := os.MkdirAll(b.dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory %s: %w", b.dataDir, err)
	}
	for _, svc := range specs {
		if svc.Store == nil {
			continue
		}
		if err := b.resetStore(svc.Name, svc.Store); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bootstrapper) resetStore(name string, store *models.StoreFile) error {
	if err := os.Remove(store.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove store %s: %w", store.Path, err)
	}
	if err := os.Remove(store.LockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale lock %s: %w", store.LockPath, err)
	}
	if err := b.runner.Run("ovsdb-tool", "create", store.Path, store.Schema); err != nil {
		return fmt.Errorf("create store for %s: %w", name, err)
	}
	logger.Infof("Store for [%s] created at %s", name, store.Path)
	return nil
}
