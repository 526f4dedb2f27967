package models

/**
 * Readiness check descriptor, evaluated repeatedly until it holds or times out
 * @property {string} path - File whose existence signals readiness (socket/pid)
 * @property {int} interval - Poll cadence in seconds
 * @property {int} timeout - Timeout in seconds, fatal when exceeded
 * @property {string} failure - Message reported when the timeout fires
 */
type ReadinessCheck struct {
	Path     string `json:"path"`
	Interval int    `json:"interval"`
	Timeout  int    `json:"timeout"`
	Failure  string `json:"failure"`
}
