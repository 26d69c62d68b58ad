package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/foodshare/cliparse"
	"github.com/danielhkuo/foodshare/db"
	"github.com/danielhkuo/foodshare/geocode"
	"github.com/danielhkuo/foodshare/identity"
	"github.com/danielhkuo/foodshare/mapview"
	"github.com/danielhkuo/foodshare/middleware"
	"github.com/danielhkuo/foodshare/notify"
	"github.com/danielhkuo/foodshare/photos"
	"github.com/danielhkuo/foodshare/router"
	"github.com/danielhkuo/foodshare/store"
)

func main() {
	// A missing .env file is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	st := store.New(dbConn)
	if err := st.InitializeSchema(context.Background()); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	deps, err := buildDeps(context.Background(), cfg, st)
	if err != nil {
		slog.Error("failed to set up adapters", "error", err)
		os.Exit(1)
	}

	mux := router.NewRouter(deps, cfg)

	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// buildDeps picks the adapters named by the configuration
func buildDeps(ctx context.Context, cfg cliparse.Config, st *store.Store) (router.Deps, error) {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	deps := router.Deps{
		Store:    st,
		Geocoder: geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderUserAgent, httpClient),
		Renderer: mapview.NewLeaflet(),
		Notifier: notify.Nop{},
	}

	switch cfg.IdentityProvider {
	case "firebase":
		deps.Identity = identity.NewFirebase(cfg.FirebaseAPIKey, identity.DefaultFirebaseURL, httpClient)
	default:
		slog.Warn("using in-memory identity provider; accounts are lost on restart")
		deps.Identity = identity.NewLocal()
	}

	switch cfg.PhotoStore {
	case "s3":
		s3Store, err := photos.NewS3(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return router.Deps{}, err
		}
		deps.Photos = s3Store
	default:
		deps.Photos = photos.NewDisk(cfg.UploadDir)
	}

	if cfg.SMTPHost != "" {
		deps.Notifier = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	if cfg.AdminKey == "" {
		slog.Warn("ADMIN_KEY not set; role assignment is disabled")
	}

	return deps, nil
}
