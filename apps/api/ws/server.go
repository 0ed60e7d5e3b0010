package wsapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	echoapi "github.com/trezcool/mahudhurio/apps/api/echo"
	"github.com/trezcool/mahudhurio/core"
)

// frame mirrors the HTTP response envelope on the notification channel.
type frame struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Server is the notification channel entry point. It authenticates each
// connection with the same token check as the HTTP API, keeps the roster in
// its Hub and only logs incoming messages - no routing is done.
type Server struct {
	hub      *Hub
	logger   core.Logger
	srv      *http.Server
	upgrader websocket.Upgrader
}

func NewServer(addr string, hub *Hub, logger core.Logger) *Server {
	s := &Server{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleConn)
	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", err)
		return
	}
	defer func() { _ = conn.Close() }()

	token := r.URL.Query().Get("token")
	if token == "" {
		s.sendFrame(conn, frame{Error: "auth token not found"})
		return
	}
	claims, err := echoapi.VerifyToken(token)
	if err != nil {
		s.sendFrame(conn, frame{Error: "unauthorized token"})
		return
	}

	connID := uuid.New().String()
	s.hub.add(connID, Member{UserID: claims.Subject, Role: claims.Role})
	defer s.hub.remove(connID)

	s.sendFrame(conn, frame{Success: true, Data: "connected"})
	s.readLoop(conn, claims.Subject)
}

// readLoop drains the connection until it closes; messages are logged only.
func (s *Server) readLoop(conn *websocket.Conn, userID string) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", err)
			}
			return
		}
		s.logger.Info("received message", map[string]interface{}{"userId": userID, "message": string(msg)})
	}
}

func (s *Server) sendFrame(conn *websocket.Conn, f frame) {
	if err := conn.WriteJSON(f); err != nil {
		s.logger.Warn("websocket write failed", err)
	}
}
