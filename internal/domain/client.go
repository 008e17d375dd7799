// Package domain contains entity without logic, just meta-data
package domain

// Mode is the kind of session a client asked to be matched for.
type Mode string

const (
	ModeVoice Mode = "voice"
	ModeVideo Mode = "video"
)

// ParseMode maps wire input to a Mode. Anything unrecognized
// (including an absent field) falls back to voice.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeVoice, ModeVideo:
		return Mode(s)
	default:
		return ModeVoice
	}
}

// State is the lifecycle position of one connection.
type State string

const (
	StateIdle         State = "idle"
	StateWaiting      State = "waiting"
	StatePaired       State = "paired"
	StateDisconnected State = "disconnected"
)

// Client is the per-connection record the registry keeps.
type Client struct {
	ID    string `json:"id"`
	Mode  Mode   `json:"mode"`
	State State  `json:"state"`
}

// NewClient avoids raw literals in adapters and keeps construction obvious.
func NewClient(id string) *Client {
	return &Client{ID: id, Mode: ModeVoice, State: StateIdle}
}
