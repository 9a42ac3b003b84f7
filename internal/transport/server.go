package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"stellarsiege/client/internal/config"
	"stellarsiege/client/internal/dispatch"
	"stellarsiege/client/internal/game"
	"stellarsiege/client/internal/instructionlist"
	"stellarsiege/client/internal/proxy"
)

const (
	// writeWait is the deadline for outgoing frames.
	writeWait = 10 * time.Second
	// pongWaitMultiplier: read deadline = pingInterval * multiplier.
	pongWaitMultiplier = 2
	// sendBuffer bounds per-connection outgoing frames.
	sendBuffer = 64
)

// Server hosts a game session behind the playback protocol. Every
// connection gets its own Player attached to the shared session.
type Server struct {
	log      *zap.Logger
	session  dispatch.Sender[game.Session]
	cfg      config.TransportConfig
	upgrader websocket.Upgrader
}

// NewServer wires the handler to the session sender. The session's own
// dispatcher must be pumping for replies to flow.
func NewServer(log *zap.Logger, session dispatch.Sender[game.Session], cfg config.TransportConfig) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		log:     log.Named("transport"),
		session: session,
		cfg:     cfg,
	}
	if len(cfg.AllowedOrigins) > 0 {
		allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
		for _, origin := range cfg.AllowedOrigins {
			allowed[origin] = struct{}{}
		}
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[origin]
			return ok
		}
	}
	return s
}

// ServeHTTP upgrades the connection and streams event bundles until the
// viewer disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	log := s.log.With(zap.String("connection_id", id))
	log.Info("viewer connected", zap.String("remote", r.RemoteAddr))

	if s.cfg.MaxPayloadBytes > 0 {
		conn.SetReadLimit(s.cfg.MaxPayloadBytes)
	}

	//1.- Keepalive: the write pump pings, the read side extends its
	// deadline on every pong.
	pingInterval := s.cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = config.DefaultPingInterval
	}
	pongWait := pongWaitMultiplier * pingInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	//2.- Replies arrive on a per-connection dispatcher and leave through
	// the buffered send channel; a slow viewer drops the connection
	// rather than the shared session.
	send := make(chan []byte, sendBuffer)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connDisp := dispatch.NewQueueDispatcher()
	go connDisp.Run(ctx)
	defer connDisp.Close()

	var seq uint64
	player := proxy.NewPlayerProxy(connDisp, s.session, func(list *instructionlist.StringInstructionList, finish bool) {
		payload, err := encodeBundle(list)
		if err != nil {
			log.Error("bundle encoding failed", zap.Error(err))
			return
		}
		seq++
		frame, err := json.Marshal(ServerMessage{
			Type:       MessageEvents,
			Session:    id,
			Seq:        seq,
			Finish:     finish,
			PayloadB64: payload,
		})
		if err != nil {
			log.Error("reply marshalling failed", zap.Error(err))
			return
		}
		select {
		case send <- frame:
		default:
			log.Warn("dropping reply: send buffer full")
			cancel()
		}
	})
	defer player.Close()

	go s.writePump(ctx, conn, send, pingInterval, log)
	s.readLoop(conn, player, log)
}

func (s *Server) readLoop(conn *websocket.Conn, player *proxy.PlayerProxy, log *zap.Logger) {
	defer conn.Close()
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected websocket close", zap.Error(err))
			} else {
				log.Debug("viewer disconnected", zap.Error(err))
			}
			return
		}
		switch msg.Type {
		case MessageInit:
			player.RequestInit(msg.Index)
		case MessageEvents:
			player.RequestEvents()
		case MessageJump:
			player.RequestJump(msg.Time)
		default:
			log.Warn("unknown request type", zap.String("type", msg.Type))
		}
	}
}

func (s *Server) writePump(ctx context.Context, conn *websocket.Conn, send <-chan []byte, pingInterval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
			return
		case frame := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Debug("write failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				log.Debug("ping failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}
}
