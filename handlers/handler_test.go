package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"escapenote-server/auth"
	"escapenote-server/config"
	"escapenote-server/db/dbtest"
	"escapenote-server/externals"
	"escapenote-server/model"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type sentMessage struct {
	to   string
	body string
}

// fakeSender records mails and sms instead of sending them
type fakeSender struct {
	mu       sync.Mutex
	messages []sentMessage
}

func (sender *fakeSender) SendMail(ctx context.Context, to string, subject string, htmlBody string) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.messages = append(sender.messages, sentMessage{to: to, body: htmlBody})
	return nil
}

func (sender *fakeSender) SendSMS(ctx context.Context, phoneNumber string, message string) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.messages = append(sender.messages, sentMessage{to: phoneNumber, body: message})
	return nil
}

func (sender *fakeSender) last(t *testing.T) sentMessage {
	t.Helper()
	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.NotEmpty(t, sender.messages)
	return sender.messages[len(sender.messages)-1]
}

type fakeImageStore struct {
	uploaded [][]byte
}

func (store *fakeImageStore) UploadUserImage(ctx context.Context, image io.Reader) (string, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return "", err
	}
	store.uploaded = append(store.uploaded, data)
	return "/users/fake.jpeg", nil
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *mux.Router
	tokens *auth.TokenIssuer
	sender *fakeSender
	images *fakeImageStore
}

// newTestServer builds the API on an in-memory database, options may replace
// dependencies before the handler is created
func newTestServer(t *testing.T, options ...func(*Dependencies)) *testServer {
	t.Helper()

	cfg := config.Config{
		AppEnv:   config.EnvLocal,
		TestMode: config.TestModeTest,
		AtSecret: "access-secret",
		RtSecret: "refresh-secret",
		Domain:   "localhost",
	}
	database := dbtest.NewTestDB(t)
	tokens := auth.NewTokenIssuer(cfg)
	sender := &fakeSender{}
	images := &fakeImageStore{}

	deps := Dependencies{
		Config: cfg,
		Logger: zaptest.NewLogger(t),
		DB:     database,
		Tokens: tokens,
		Social: externals.FakeVerifier{},
		Mailer: sender,
		SMS:    sender,
		Images: images,
	}
	for _, option := range options {
		option(&deps)
	}

	return &testServer{
		t:      t,
		db:     database,
		router: NewRouter(NewHandler(deps)),
		tokens: tokens,
		sender: sender,
		images: images,
	}
}

// accessToken returns a valid bearer token for user
func (s *testServer) accessToken(user model.User) string {
	s.t.Helper()
	tokens, err := s.tokens.GenerateTokens(user.UserID)
	require.NoError(s.t, err)
	return tokens.AccessToken
}

func (s *testServer) do(method string, path string, body any, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value), rec.Body.String())
	return value
}

// pageResponse mirrors model.PageResult for decoding in tests
type pageResponse[T any] struct {
	PageInfo model.PageInfo `json:"pageInfo"`
	Items    []T            `json:"items"`
}
