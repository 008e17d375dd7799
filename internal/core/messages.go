package core

import "encoding/json"

// Wire message types. The envelope field "type" selects the variant;
// unknown types are ignored by the receiver on both ends.
const (
	TypeStatus       = "STATUS"
	TypeConnect      = "CONNECT"
	TypeDisconnect   = "DISCONNECT"
	TypeSignal       = "SIGNAL"
	TypePairFound    = "PAIR_FOUND"
	TypeDisconnected = "DISCONNECTED"
	TypeEnableVideo  = "ENABLE_VIDEO"
)

// Envelope is the minimal decode used to dispatch an inbound frame.
type Envelope struct {
	Type string `json:"type"`
}

// ConnectRequest is the C->S matching request. Mode is optional and
// falls back to voice when absent or unrecognized.
type ConnectRequest struct {
	Type string `json:"type"`
	Mode string `json:"mode,omitempty"`
}

// StatusMessage carries informational text with no state-machine effect.
type StatusMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PairFoundMessage tells a client a match exists and whether it
// originates the handshake.
type PairFoundMessage struct {
	Type      string `json:"type"`
	Initiator bool   `json:"initiator"`
}

// DisconnectedMessage tells a client its partner left.
type DisconnectedMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// EnableVideoMessage tells both sides of a voice pair to start
// negotiating video tracks.
type EnableVideoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

func NewStatus(msg string) Frame {
	return mustMarshal(StatusMessage{Type: TypeStatus, Message: msg})
}

func NewPairFound(initiator bool) Frame {
	return mustMarshal(PairFoundMessage{Type: TypePairFound, Initiator: initiator})
}

func NewDisconnected(msg string) Frame {
	return mustMarshal(DisconnectedMessage{Type: TypeDisconnected, Message: msg})
}

func NewEnableVideo(msg string) Frame {
	return mustMarshal(EnableVideoMessage{Type: TypeEnableVideo, Message: msg})
}

// mustMarshal is safe here: every outbound message is a plain struct
// of marshalable fields.
func mustMarshal(v any) Frame {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Frame(b)
}
