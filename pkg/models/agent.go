package models

// AgentState is an agent lifecycle state. Transitions are server-owned; the
// client only observes and requests them.
type AgentState string

const (
	AgentStateNew         AgentState = "NEW"
	AgentStateProvisioned AgentState = "PROVISIONED"
	AgentStateActive      AgentState = "ACTIVE"
	AgentStateDraining    AgentState = "DRAINING"
	AgentStateTerminated  AgentState = "TERMINATED"
	AgentStateKilled      AgentState = "KILLED"
)

// Agent is an agent lifecycle resource.
type Agent struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	DNSName string     `json:"dnsName,omitempty"`
	State   AgentState `json:"state"`

	// Deployment coordinates, when the agent has been placed somewhere.
	Deployment map[string]string `json:"deployment,omitempty"`

	// Transitions maps lifecycle states to the time they were entered.
	Transitions map[AgentState]Timestamp `json:"transitions,omitempty"`

	CreatedAt Timestamp      `json:"createdAt"`
	UpdatedAt Timestamp      `json:"updatedAt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
