package websocket

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-xr/internal/interaction"
	"github.com/rocketscienceinc/tictactoe-xr/internal/usecase"
)

const defaultFrameTimeout = 30 * time.Second

const (
	ActionSessionStart = "session:start"
	ActionFrame        = "frame"
	ActionActivate     = "activate"
	ActionRecenter     = "recenter"
	ActionSessionEnd   = "session:end"
)

type uSession interface {
	Start(ctx context.Context, id string) (*usecase.Session, []interaction.Effect, error)
	Get(id string) (*usecase.Session, error)
	End(id string) ([]interaction.Effect, error)
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger       *slog.Logger
	uSession     uSession
	frameTimeout time.Duration

	handlers map[string]handlerFunc
}

// connection is one client socket; it owns at most one session at a time.
type connection struct {
	id        string
	conn      *websocket.Conn
	sessionID string
}

func New(logger *slog.Logger, uSession uSession, frameTimeout time.Duration) *Server {
	if frameTimeout <= 0 {
		frameTimeout = defaultFrameTimeout
	}

	server := &Server{
		logger:       logger.With("component", "websocket"),
		uSession:     uSession,
		frameTimeout: frameTimeout,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionSessionStart] = server.handleSessionStart
	server.handlers[ActionFrame] = server.handleFrame
	server.handlers[ActionActivate] = server.handleActivate
	server.handlers[ActionRecenter] = server.handleRecenter
	server.handlers[ActionSessionEnd] = server.handleSessionEnd

	return server
}

func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", that.ServeWS)

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeWS upgrades the request and processes messages until the client leaves.
func (that *Server) ServeWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeWS")

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept connection", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	client := &connection{id: newConnectionID(), conn: conn}
	log = log.With("connectionID", client.id)
	log.Info("WebSocket connection established")

	defer that.endSession(client)

	if err = that.handleMessages(req.Context(), client); err != nil {
		log.Info("connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	log := that.logger.With("method", "handleMessages", "connectionID", client.id)

	for {
		readCtx, cancel := context.WithTimeout(ctx, that.frameTimeout)
		_, data, err := client.conn.Read(readCtx)
		cancel()

		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			_ = client.sendErrorResponse(ctx, "", "bad json")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			_ = client.sendErrorResponse(ctx, message.Action, "unknown action")
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// endSession releases the connection's session when the socket goes away.
func (that *Server) endSession(client *connection) {
	if client.sessionID == "" {
		return
	}

	if _, err := that.uSession.End(client.sessionID); err != nil {
		that.logger.Warn("failed to end session", "sessionID", client.sessionID, "error", err)
	}
}

func newConnectionID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}
