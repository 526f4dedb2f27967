package models

import "time"

/**
 * Runtime handle of a launched daemon, ephemeral to one bring-up session
 * @property {string} service - Service name
 * @property {int} pid - Process ID recorded at launch
 * @property {string} pid_file - Pid file written by the daemon itself
 * @property {string} socket - Control/db socket path, empty when none
 * @property {string} log_file - Timestamped log file of this run
 * @property {string} started_at - Launch time in RFC3339 format
 */
type RuntimeHandle struct {
	Service   string    `json:"service"`
	Pid       int       `json:"pid"`
	PidFile   string    `json:"pid_file,omitempty"`
	Socket    string    `json:"socket,omitempty"`
	LogFile   string    `json:"log_file,omitempty"`
	StartedAt string    `json:"started_at"`
	Status    RunStatus `json:"status"`
}

func (h *RuntimeHandle) StartedTime() time.Time {
	t, err := time.Parse(time.RFC3339, h.StartedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
