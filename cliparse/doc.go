// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads a .env file with godotenv before calling ParseFlags, so values
from the file behave like environment variables.

# CLI Flags and Environment Variables

	-p                PORT               Server port (default: 3318)
	-d                DATABASE_URL       Database URL (default: file:app.db for sqlite)
	-t                DATABASE_TYPE      sqlite or postgres (default: sqlite)
	-session-secret   SESSION_SECRET     Session token signing secret (required)
	-admin-key        ADMIN_KEY          Key for PUT /admin/users/{email}/role
	-identity         IDENTITY_PROVIDER  local or firebase (default: local)
	-firebase-key     FIREBASE_API_KEY   Firebase web API key
	-verify-passwords VERIFY_PASSWORDS   Check passwords at login
	-geocoder         GEOCODER_URL       Nominatim base URL
	-geocoder-agent   GEOCODER_USER_AGENT
	-photos           PHOTO_STORE        disk or s3 (default: disk)
	-upload-dir       UPLOAD_DIR         Directory for disk photos (default: uploads)
	-s3-bucket        S3_BUCKET
	-s3-region        S3_REGION
	-s3-public-url    S3_PUBLIC_URL
	-smtp-host        SMTP_HOST          Claim notification mail; disabled when empty
	-smtp-port        SMTP_PORT          (default: 587)
	                  SMTP_USER
	                  SMTP_PASSWORD
	-smtp-from        SMTP_FROM
	-strict-claims    STRICT_CLAIMS      Reject claims on claimed listings

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing
  - DATABASE_TYPE is postgres and DATABASE_URL is missing
  - IDENTITY_PROVIDER is firebase and FIREBASE_API_KEY is missing
  - PHOTO_STORE is s3 and S3_BUCKET is missing
  - SMTP_HOST is set without SMTP_FROM
*/
package cliparse
