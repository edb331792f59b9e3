package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/beptroly/notifier/internal/config"
	"github.com/beptroly/notifier/internal/expiry"
	"github.com/beptroly/notifier/internal/handler"
	"github.com/beptroly/notifier/internal/middleware"
	"github.com/beptroly/notifier/internal/push"
	"github.com/beptroly/notifier/internal/store"
	ws "github.com/beptroly/notifier/internal/websocket"
)

type Server struct {
	db         *sql.DB
	hub        *ws.Hub
	scanH      *handler.ScanHandler
	deviceH    *handler.DeviceHandler
	service    *expiry.Service
	scheduler  *expiry.Scheduler
	cronSecret string
	logger     *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	inventoryStore := store.NewInventoryStore(db)
	householdStore := store.NewHouseholdStore(db)
	userStore := store.NewUserStore(db)

	// Push transports. The expiry service only exists when at least one
	// transport can actually deliver.
	fcm := push.NewFCMClient(cfg.FCMServerKey)
	web := push.NewWebPushSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	router := push.NewRouter(fcm, web)

	var service *expiry.Service
	var scheduler *expiry.Scheduler
	if router.Configured() {
		scanLogger := logger.With("component", "expiry")
		service = expiry.NewService(inventoryStore, householdStore, userStore, router, userStore, cfg.ScanTimezone, scanLogger)
		scheduler = expiry.NewScheduler(service, cfg.ScanHour, cfg.ScanTimezone, func(r expiry.Result) {
			hub.Broadcast(ws.NewScanEvent(string(r.Status), r.SentCount, r.TotalCandidates))
		}, scanLogger)
	} else {
		logger.Warn("no push transport configured, expiry scans disabled")
	}

	return &Server{
		db:         db,
		hub:        hub,
		scanH:      handler.NewScanHandler(service, hub, logger.With("component", "scan_handler")),
		deviceH:    handler.NewDeviceHandler(userStore, web, logger.With("component", "device_handler")),
		service:    service,
		scheduler:  scheduler,
		cronSecret: cfg.CronSecret,
		logger:     logger,
	}
}

// Scheduler returns the daily scan scheduler, or nil when push is not
// configured.
func (s *Server) Scheduler() *expiry.Scheduler {
	return s.scheduler
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	requireSecret := middleware.RequireCronSecret(s.cronSecret)

	mux.Handle("/check-expiry", requireSecret(http.HandlerFunc(s.scanH.CheckExpiry)))
	mux.Handle("POST /api/devices", requireSecret(http.HandlerFunc(s.deviceH.Register)))
	mux.Handle("DELETE /api/devices", requireSecret(http.HandlerFunc(s.deviceH.Unregister)))
	mux.HandleFunc("GET /api/push/vapid-key", s.deviceH.VAPIDKey)
	mux.HandleFunc("/ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("notifier is running\n"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	logged := middleware.RequestLogger(s.logger.With("component", "http"))
	return logged(mux)
}

// ShutdownTimeout is how long in-flight requests get on shutdown.
const ShutdownTimeout = 5 * time.Second
