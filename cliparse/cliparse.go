package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Secrets
	SessionSecret string
	AdminKey      string

	// Identity provider
	IdentityProvider string
	FirebaseAPIKey   string
	VerifyPasswords  bool

	// Geocoding
	GeocoderURL       string
	GeocoderUserAgent string

	// Photo storage
	PhotoStore  string
	UploadDir   string
	S3Bucket    string
	S3Region    string
	S3PublicURL string

	// Claim notification mail
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	StrictClaims bool
}

const (
	DefaultPort              = 3318
	DefaultSQLiteURL         = "file:app.db"
	DefaultGeocoderURL       = "https://nominatim.openstreetmap.org"
	DefaultGeocoderUserAgent = "surplus_food_app"
	DefaultUploadDir         = "uploads"
	DefaultSMTPPort          = 587
)

// ParseFlags reads flags, falls back to environment variables, then applies defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("foodshare", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token signing secret (prefer env)")
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for role management (prefer env)")

	fs.StringVar(&cfg.IdentityProvider, "identity", "", "Identity provider (local or firebase)")
	fs.StringVar(&cfg.FirebaseAPIKey, "firebase-key", "", "Firebase web API key (prefer env)")
	verifyPasswords := fs.String("verify-passwords", "", "Verify passwords with the identity provider at login")

	fs.StringVar(&cfg.GeocoderURL, "geocoder", "", "Nominatim base URL")
	fs.StringVar(&cfg.GeocoderUserAgent, "geocoder-agent", "", "User agent sent to the geocoder")

	fs.StringVar(&cfg.PhotoStore, "photos", "", "Photo store (disk or s3)")
	fs.StringVar(&cfg.UploadDir, "upload-dir", "", "Directory for uploaded photos")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "S3 bucket for photos")
	fs.StringVar(&cfg.S3Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.S3PublicURL, "s3-public-url", "", "Public URL prefix for stored photos")

	fs.StringVar(&cfg.SMTPHost, "smtp-host", "", "SMTP host for claim notifications")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", 0, "SMTP port")
	fs.StringVar(&cfg.SMTPFrom, "smtp-from", "", "Sender address for claim notifications")

	strictClaims := fs.String("strict-claims", "", "Reject claims on already claimed listings")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	// Secrets - session secret MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}
	envFallback(&cfg.AdminKey, "ADMIN_KEY")

	envFallback(&cfg.IdentityProvider, "IDENTITY_PROVIDER")
	if cfg.IdentityProvider == "" {
		cfg.IdentityProvider = "local"
	}
	envFallback(&cfg.FirebaseAPIKey, "FIREBASE_API_KEY")
	switch cfg.IdentityProvider {
	case "local":
	case "firebase":
		if cfg.FirebaseAPIKey == "" {
			return Config{}, errors.New("FIREBASE_API_KEY required for firebase identity provider")
		}
	default:
		return Config{}, fmt.Errorf("unsupported identity provider %q", cfg.IdentityProvider)
	}

	envFallback(&cfg.GeocoderURL, "GEOCODER_URL")
	if cfg.GeocoderURL == "" {
		cfg.GeocoderURL = DefaultGeocoderURL
	}
	envFallback(&cfg.GeocoderUserAgent, "GEOCODER_USER_AGENT")
	if cfg.GeocoderUserAgent == "" {
		cfg.GeocoderUserAgent = DefaultGeocoderUserAgent
	}

	envFallback(&cfg.PhotoStore, "PHOTO_STORE")
	if cfg.PhotoStore == "" {
		cfg.PhotoStore = "disk"
	}
	envFallback(&cfg.UploadDir, "UPLOAD_DIR")
	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	envFallback(&cfg.S3Bucket, "S3_BUCKET")
	envFallback(&cfg.S3Region, "S3_REGION")
	envFallback(&cfg.S3PublicURL, "S3_PUBLIC_URL")
	switch cfg.PhotoStore {
	case "disk":
	case "s3":
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET required for s3 photo store")
		}
	default:
		return Config{}, fmt.Errorf("unsupported photo store %q", cfg.PhotoStore)
	}

	envFallback(&cfg.SMTPHost, "SMTP_HOST")
	envFallback(&cfg.SMTPUser, "SMTP_USER")
	envFallback(&cfg.SMTPPassword, "SMTP_PASSWORD")
	envFallback(&cfg.SMTPFrom, "SMTP_FROM")
	if cfg.SMTPPort == 0 {
		if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid SMTP_PORT env variable")
			}
			cfg.SMTPPort = port
		} else {
			cfg.SMTPPort = DefaultSMTPPort
		}
	}
	if cfg.SMTPHost != "" && cfg.SMTPFrom == "" {
		return Config{}, errors.New("SMTP_FROM required when SMTP_HOST is set")
	}

	var err error
	if cfg.StrictClaims, err = boolSetting(*strictClaims, "STRICT_CLAIMS"); err != nil {
		return Config{}, err
	}
	if cfg.VerifyPasswords, err = boolSetting(*verifyPasswords, "VERIFY_PASSWORDS"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envFallback(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// boolSetting parses a boolean flag value, falling back to the env key; empty means false
func boolSetting(flagValue, key string) (bool, error) {
	v := flagValue
	if v == "" {
		v = os.Getenv(key)
	}
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", key, v)
	}
	return b, nil
}
