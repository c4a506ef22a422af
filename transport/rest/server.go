package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/quixo-backend/internal/entity"
	"github.com/rocketscienceinc/quixo-backend/internal/quixo"
)

const shutdownTimeout = 5 * time.Second

type matchService interface {
	CreateMatch(ctx context.Context, players [2]string, board [][]string) (*entity.Match, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	RenderMatch(ctx context.Context, id string) (string, error)
	MoveCube(ctx context.Context, id, player string, origin quixo.Position, direction quixo.Direction) (*entity.Match, error)
	DeleteMatch(ctx context.Context, id string) error
}

// matchListener is told about every match changed or deleted through the REST API.
type matchListener interface {
	MatchUpdated(match *entity.Match)
	MatchDeleted(id string)
}

type Server struct {
	logger   *slog.Logger
	matches  matchService
	listener matchListener
	validate *validator.Validate

	router *mux.Router
}

// NewServer - builds the REST API, metrics is served on /metrics and listener may be nil.
func NewServer(logger *slog.Logger, matches matchService, metrics http.Handler, listener matchListener) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		matches:  matches,
		listener: listener,
		validate: validator.New(),

		router: mux.NewRouter(),
	}

	ping := NewPingHandler()

	server.router.HandleFunc("/ping", ping.PingHandler).Methods(http.MethodGet)
	server.router.Handle("/metrics", metrics).Methods(http.MethodGet)

	server.router.HandleFunc("/matches", server.handleCreateMatch).Methods(http.MethodPost)
	server.router.HandleFunc("/matches/{id}", server.handleGetMatch).Methods(http.MethodGet)
	server.router.HandleFunc("/matches/{id}", server.handleDeleteMatch).Methods(http.MethodDelete)
	server.router.HandleFunc("/matches/{id}/render", server.handleRenderMatch).Methods(http.MethodGet)
	server.router.HandleFunc("/matches/{id}/moves", server.handleMoveCube).Methods(http.MethodPost)

	return server
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.router.ServeHTTP(w, r)
}

// Start - serves the API on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
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
