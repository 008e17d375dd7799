package core

import "github.com/dkeye/Strangers/internal/domain"

// Frame is a raw wire payload (one JSON message).
type Frame []byte

// ClientID names one live connection for its whole lifetime.
type ClientID string

// SignalConnection abstracts the messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Ready() bool
	Close()
}

// ClientSession binds domain.Client meta and its transport endpoint.
// This is what the registry stores and the coordinator sends through.
type ClientSession interface {
	Meta() *domain.Client
	Signal() SignalConnection
}

type clientSession struct {
	meta *domain.Client
	conn SignalConnection
}

func NewClientSession(meta *domain.Client, conn SignalConnection) ClientSession {
	return &clientSession{meta: meta, conn: conn}
}

func (s *clientSession) Meta() *domain.Client     { return s.meta }
func (s *clientSession) Signal() SignalConnection { return s.conn }
