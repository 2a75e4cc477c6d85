package auth

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/datastore"
	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/devfolio/portfolio-backend/config"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns the Auth
// and Firestore clients. When FIREBASE_PROJECT_ID is not set, the project id
// is read from the service-account credentials file.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*auth.Client, *firestore.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		raw, err := os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, raw, datastore.ScopeDatastore)
		if err != nil {
			return nil, nil, fmt.Errorf("parse credentials file: %w", err)
		}
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, nil, fmt.Errorf("could not determine Firebase project id")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	store, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return authClient, store, nil
}
