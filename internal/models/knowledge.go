package models

/**
 * Endpoint published by a store daemon for controller consumption
 */
type Endpoint struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ServiceKnowledge struct {
	Name      string      `json:"name"`
	Kind      ServiceKind `json:"kind"`
	Status    RunStatus   `json:"status"`
	Pid       int         `json:"pid,omitempty"`
	Command   string      `json:"command,omitempty"`
	DependsOn []string    `json:"depends_on,omitempty"`
}

type LogKnowledge struct {
	Dir   string `json:"dir"`
	Level string `json:"level"`
}

/**
 * Cluster knowledge exported to share/.well-known.json
 * @property {string} system_id - Chassis identifier of this host
 * @property {[]Endpoint} endpoints - Store endpoints consumed by controllers
 * @property {[]ServiceKnowledge} services - Enabled services and their state
 * @property {LogKnowledge} logs - Log directory and level
 */
type ClusterKnowledge struct {
	SystemID  string             `json:"system_id"`
	Timestamp string             `json:"timestamp"`
	Endpoints []Endpoint         `json:"endpoints"`
	Services  []ServiceKnowledge `json:"services"`
	Logs      LogKnowledge       `json:"logs"`
}
