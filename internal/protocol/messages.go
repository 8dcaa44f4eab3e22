package protocol

// ArrayMsg is a named numeric array: a shape plus row-major data.
type ArrayMsg struct {
	Shape []int `json:"shape"`
	Data  []int `json:"data"`
}

// BoundsMsg advertises one array's shape and elementwise bounds.
type BoundsMsg struct {
	Shape []int `json:"shape"`
	Low   []int `json:"low"`
	High  []int `json:"high"`
}

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Env             string `json:"env"`
	Seed            *int64 `json:"seed,omitempty"`
	ObservationRep  string `json:"observation_rep,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string               `json:"type"`
	ProtocolVersion string               `json:"protocol_version"`
	Env             string               `json:"env"`
	NumActions      int                  `json:"num_actions"`
	ObservationRep  string               `json:"observation_rep"`
	ObservationSpace map[string]BoundsMsg `json:"observation_space"`
}

// RESET (client -> server)
type ResetMsg struct {
	Type string `json:"type"`
}

// OBS (server -> client), the reply to RESET.
type ObsMsg struct {
	Type        string              `json:"type"`
	Observation map[string]ArrayMsg `json:"observation"`
}

// STEP (client -> server). Action is the external dense integer.
type StepMsg struct {
	Type   string `json:"type"`
	Action int    `json:"action"`
}

// STEP_RESULT (server -> client)
type StepResultMsg struct {
	Type        string              `json:"type"`
	Reward      float64             `json:"reward"`
	Done        bool                `json:"done"`
	Observation map[string]ArrayMsg `json:"observation"`
}

// ERR (server -> client)
type ErrMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
