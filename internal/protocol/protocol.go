// Package protocol defines the JSON messages of the env-serving
// websocket protocol: a client greets with HELLO naming an environment,
// receives WELCOME with the advertised spaces, then drives episodes with
// RESET and STEP.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello      = "HELLO"
	TypeWelcome    = "WELCOME"
	TypeReset      = "RESET"
	TypeStep       = "STEP"
	TypeObs        = "OBS"
	TypeStepResult = "STEP_RESULT"
	TypeErr        = "ERR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
