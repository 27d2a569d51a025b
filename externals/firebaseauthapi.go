package externals

import (
	"context"
	"errors"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

var (
	firebaseApp *firebase.App
	firebaseErr error
	once        sync.Once
)

var ErrInvalidIDToken = errors.New("invalid id token")

// InitializeFirebase creates the Firebase app once, later calls return the same app
func InitializeFirebase(ctx context.Context, credentialsFile string, storageBucket string) (*firebase.App, error) {
	once.Do(func() {
		opt := option.WithCredentialsFile(credentialsFile)
		firebaseApp, firebaseErr = firebase.NewApp(ctx, &firebase.Config{StorageBucket: storageBucket}, opt)
		if firebaseErr != nil {
			firebaseErr = fmt.Errorf("error initializing Firebase Admin SDK: %w", firebaseErr)
		}
	})
	return firebaseApp, firebaseErr
}

// SocialIdentity is what a verified social sign-in tells us about the user
type SocialIdentity struct {
	Email    string
	Provider string
}

type SocialVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (SocialIdentity, error)
}

type FirebaseVerifier struct {
	app *firebase.App
}

func NewFirebaseVerifier(app *firebase.App) *FirebaseVerifier {
	return &FirebaseVerifier{app: app}
}

// VerifyIDToken checks the Firebase ID token obtained by the client and returns
// the email and the sign-in provider (google.com, apple.com, ...)
func (verifier *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (SocialIdentity, error) {
	authClient, err := verifier.app.Auth(ctx)
	if err != nil {
		return SocialIdentity{}, err
	}

	token, err := authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return SocialIdentity{}, fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return SocialIdentity{}, fmt.Errorf("%w: no email claim", ErrInvalidIDToken)
	}

	return SocialIdentity{Email: email, Provider: token.Firebase.SignInProvider}, nil
}

// FakeVerifier is used in test mode: the token is taken as the email
type FakeVerifier struct {
	Provider string
}

func (verifier FakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (SocialIdentity, error) {
	if idToken == "" {
		return SocialIdentity{}, ErrInvalidIDToken
	}
	provider := verifier.Provider
	if provider == "" {
		provider = "google.com"
	}
	return SocialIdentity{Email: idToken, Provider: provider}, nil
}
