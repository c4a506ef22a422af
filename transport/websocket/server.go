package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/quixo-backend/internal/entity"
	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

const (
	writeWait       = 10 * time.Second
	maxMessageSize  = 4 << 10
	shutdownTimeout = 5 * time.Second
)

type matchService interface {
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	MoveCube(ctx context.Context, id, player string, origin quixo.Position, direction quixo.Direction) (*entity.Match, error)
}

type handler func(ctx context.Context, conn *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	matches  matchService
	upgrader websocket.Upgrader
	validate *validator.Validate

	handlers map[string]handler

	subscribersMutex sync.Mutex
	subscribers      map[string]map[*client]struct{}
}

func New(logger *slog.Logger, matches matchService) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		matches: matches,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		validate: validator.New(),

		handlers:    make(map[string]handler),
		subscribers: make(map[string]map[*client]struct{}),
	}

	server.handlers[actionSubscribe] = server.handleSubscribe
	server.handlers[actionMove] = server.handleMove

	return server
}

// Handler - routes /ws to the websocket endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return router
}

// Start - serves websocket connections on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// MatchUpdated - sends the new state of match to its subscribers.
func (that *Server) MatchUpdated(match *entity.Match) {
	that.broadcast(match)
}

// MatchDeleted - tells the subscribers of match id that it is gone and drops them.
func (that *Server) MatchDeleted(id string) {
	that.subscribersMutex.Lock()
	clients := make([]*client, 0, len(that.subscribers[id]))
	for conn := range that.subscribers[id] {
		clients = append(clients, conn)
	}
	delete(that.subscribers, id)
	that.subscribersMutex.Unlock()

	for _, conn := range clients {
		if err := conn.send(actionDeleted, subscribePayload{MatchID: id}); err != nil {
			that.logger.Warn("failed to notify deleted match", "matchID", id, "error", err)
		}
	}
}

// serveWS - upgrades the request and reads messages until the client leaves.
func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	wsConn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &client{conn: wsConn}
	defer func() {
		that.unsubscribe(conn)
		_ = wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)

	// the hijacked connection outlives the request, stop reading on shutdown
	stop := context.AfterFunc(ctx, func() {
		_ = wsConn.Close()
	})
	defer stop()

	log.Debug("websocket connection established", "remote", r.RemoteAddr)

	that.handleMessages(ctx, conn)
}

// handleMessages - dispatches every message of conn to its action handler.
func (that *Server) handleMessages(ctx context.Context, conn *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, raw, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			that.replyError(conn, fmt.Errorf("%w: %w", errMalformedMessage, err))
			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			that.replyError(conn, fmt.Errorf("%w: %q", errUnknownAction, message.Action))
			continue
		}

		if err = handle(ctx, conn, &message); err != nil {
			that.replyError(conn, err)
		}
	}
}

func (that *Server) subscribe(matchID string, conn *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	clients, ok := that.subscribers[matchID]
	if !ok {
		clients = make(map[*client]struct{})
		that.subscribers[matchID] = clients
	}
	clients[conn] = struct{}{}
}

// unsubscribe - removes conn from every match it follows.
func (that *Server) unsubscribe(conn *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	for matchID, clients := range that.subscribers {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(that.subscribers, matchID)
		}
	}
}

func (that *Server) broadcast(match *entity.Match) {
	that.subscribersMutex.Lock()
	clients := make([]*client, 0, len(that.subscribers[match.ID]))
	for conn := range that.subscribers[match.ID] {
		clients = append(clients, conn)
	}
	that.subscribersMutex.Unlock()

	for _, conn := range clients {
		if err := conn.send(actionState, matchPayload{Match: match}); err != nil {
			that.logger.Warn("failed to broadcast match", "matchID", match.ID, "error", err)
		}
	}
}

// client serializes the writes made to one connection.
type client struct {
	conn *websocket.Conn

	writeMutex sync.Mutex
}

func (that *client) send(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
