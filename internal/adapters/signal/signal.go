package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Strangers/internal/app/orch"
	"github.com/dkeye/Strangers/internal/config"
	"github.com/dkeye/Strangers/internal/core"
	"github.com/dkeye/Strangers/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type MatchWSController struct {
	Orch *orch.Orchestrator
	Cfg  *config.Config
}

func NewMatchWSController(o *orch.Orchestrator, cfg *config.Config) *MatchWSController {
	return &MatchWSController{Orch: o, Cfg: cfg}
}

// WsSignalConn implements core.SignalConnection over one WebSocket.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleMatch upgrades the request and hands the connection to the
// coordinator. Every WebSocket gets its own ClientID, so two tabs of
// the same browser are two strangers.
func (ctl *MatchWSController) HandleMatch(ctx context.Context, c *gin.Context) {
	cid := core.ClientID(uuid.NewString())
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.Cfg.ReadLimit > 0 {
		ws.SetReadLimit(ctl.Cfg.ReadLimit)
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	sess := core.NewClientSession(domain.NewClient(string(cid)), conn)
	ctl.Orch.OnConnect(cid, sess)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, cid, conn)
	go ctl.readPump(ctx, cancel, cid, conn)
}
