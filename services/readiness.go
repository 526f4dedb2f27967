package services

import (
	"fmt"
	"time"

	"ovnup/internal/logger"
	"ovnup/internal/models"
	"ovnup/internal/utils"
)

/**
 * AwaitReady blocks until the check's readiness signal appears
 * @param {models.ReadinessCheck} check - Predicate path, interval and timeout
 * @returns {error} Timeout error carrying the check's failure message
 * @description
 * - Polls for the file at check.Path every check.Interval seconds
 * - Succeeds as soon as the file exists
 * - Fails with the check's failure message when check.Timeout elapses;
 *   downstream services must never start against an unconfirmed dependency
 */
func AwaitReady(check models.ReadinessCheck) error {
	interval := time.Duration(check.Interval) * time.Second
	timeout := time.Duration(check.Timeout) * time.Second
	return AwaitCondition(func() bool { return utils.PathExists(check.Path) }, interval, timeout, check.Failure)
}

/**
 * AwaitCondition polls an arbitrary predicate with bounded retries
 * @param {func() bool} cond - Observable readiness condition
 * @param {time.Duration} interval - Sleep between polls (no busy-spin)
 * @param {time.Duration} timeout - Hard bound; fatal for the bring-up run
 * @param {string} failure - Message describing the missing signal
 * @returns {error} nil once cond holds, timeout error otherwise
 */
func AwaitCondition(cond func() bool, interval, timeout time.Duration, failure string) error {
	if interval <= 0 {
		interval = time.Second
	}
	start := time.Now()
	deadline := start.Add(timeout)
	for {
		if cond() {
			observeReadinessWait(time.Since(start))
			return nil
		}
		if !time.Now().Add(interval).Before(deadline) {
			// no rollback here: already-started services stay up and
			// are cleaned by an explicit teardown
			return fmt.Errorf("readiness timeout after %s: %s", timeout, failure)
		}
		logger.Debugf("Waiting for readiness signal: %s", failure)
		time.Sleep(interval)
	}
}
