package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/AlexTLDR/guestlist/internal/config"
	"github.com/AlexTLDR/guestlist/internal/csvmap"
	"github.com/AlexTLDR/guestlist/internal/database"
	"github.com/AlexTLDR/guestlist/internal/ingest"
	"github.com/AlexTLDR/guestlist/internal/server/handlers"
	"github.com/AlexTLDR/guestlist/internal/storage"
)

type Server struct {
	config   *config.Config
	db       *database.DB
	store    storage.ObjectStore
	sessions *csvmap.Sessions
	fetcher  *ingest.Fetcher
	pipeline *ingest.Pipeline
	router   *http.ServeMux
}

// GetDB implements handlers.Server interface
func (s *Server) GetDB() handlers.Database {
	return s.db
}

// GetConfig implements handlers.Server interface
func (s *Server) GetConfig() *config.Config {
	return s.config
}

// GetStore implements handlers.Server interface
func (s *Server) GetStore() storage.ObjectStore {
	return s.store
}

// GetSessions implements handlers.Server interface
func (s *Server) GetSessions() *csvmap.Sessions {
	return s.sessions
}

// GetFetcher implements handlers.Server interface
func (s *Server) GetFetcher() handlers.PreviewFetcher {
	return s.fetcher
}

// GetPipeline implements handlers.Server interface
func (s *Server) GetPipeline() handlers.Ingestor {
	return s.pipeline
}

func New(cfg *config.Config, db *database.DB, store storage.ObjectStore) *Server {
	fetcher := ingest.NewFetcher(store)
	s := &Server{
		config:   cfg,
		db:       db,
		store:    store,
		sessions: csvmap.NewSessions(),
		fetcher:  fetcher,
		pipeline: ingest.NewPipeline(db, fetcher, cfg.ChunkSize),
		router:   http.NewServeMux(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST /presign", handlers.HandlePresign(s))

	s.router.HandleFunc("POST /guest-lists", handlers.HandleCreateGuestList(s))
	s.router.HandleFunc("GET /guest-lists", handlers.HandleListGuestLists(s))
	s.router.HandleFunc("GET /guest-lists/{id}", handlers.HandleGetGuestList(s))
	s.router.HandleFunc("DELETE /guest-lists/{id}", handlers.HandleDeleteGuestList(s))

	s.router.HandleFunc("GET /guest-lists/{id}/preview", handlers.HandlePreview(s))
	s.router.HandleFunc("GET /guest-lists/{id}/mapping", handlers.HandleGetMapping(s))
	s.router.HandleFunc("POST /guest-lists/{id}/mapping", handlers.HandleAssignColumn(s))
	s.router.HandleFunc("POST /guest-lists/{id}/process", handlers.HandleProcess(s))

	s.router.HandleFunc("GET /shared/{token}", handlers.HandleSharedGuestList(s))
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, loggingMiddleware(s.router))
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
