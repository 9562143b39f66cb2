// helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/export"
	"go_vocab_sets/internal/handlers"
	"go_vocab_sets/internal/repository"
	"go_vocab_sets/internal/service"
	"go_vocab_sets/internal/view"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

type mockTranslator struct {
	mock.Mock
}

func (m *mockTranslator) Translate(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type testApp struct {
	server     *httptest.Server
	db         *gorm.DB
	translator *mockTranslator
	logs       *syncBuffer
}

// syncBuffer はサーバーのゴルーチンから書かれるログを保持します。
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestApp は sqlite と本物のサービスでルーター全体を起動します。
func newTestApp(t *testing.T, authEnabled bool) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	views, err := view.New()
	require.NoError(t, err)

	logs := &syncBuffer{}
	translator := new(mockTranslator)
	setRepo := repository.NewGormSetRepository()
	entryRepo := repository.NewGormEntryRepository()

	router := handlers.NewRouter(handlers.RouterDeps{
		Logger:  slog.New(slog.NewTextHandler(logs, nil)),
		DB:      db,
		Sets:    service.NewSetService(db, setRepo, entryRepo, export.NewTableRenderer(testFont(t))),
		Entries: service.NewEntryService(db, setRepo, entryRepo, translator, 0),
		Views:   views,
		Auth: config.AuthConfig{
			Enabled:    authEnabled,
			JWTSecret:  testJWTSecret,
			CookieName: "vocabkeep_token",
		},
	})

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = sqlDB.Close()
	})
	return &testApp{server: server, db: db, translator: translator, logs: logs}
}

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Form    url.Values
	User    *testUser
	Cookies []*http.Cookie
	Accept  string
}

type testUser struct {
	ID   uuid.UUID
	Name string
}

func newTestUser(name string) *testUser {
	return &testUser{ID: uuid.New(), Name: name}
}

type testResponse struct {
	Status   int
	Header   http.Header
	Body     string
	Cookies  []*http.Cookie
	Location string
}

// send はリダイレクトを追わずにリクエストを送信します。
func (a *testApp) send(t *testing.T, details httpRequestDetails) testResponse {
	t.Helper()

	var body io.Reader
	if details.Form != nil {
		body = strings.NewReader(details.Form.Encode())
	}
	req, err := http.NewRequest(details.Method, a.server.URL+details.Path, body)
	require.NoError(t, err, "Failed to create request")
	if details.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if details.User != nil {
		req.Header.Set("X-User-ID", details.User.ID.String())
		req.Header.Set("X-User-Name", details.User.Name)
	}
	if details.Accept != "" {
		req.Header.Set("Accept", details.Accept)
	}
	for _, c := range details.Cookies {
		req.AddCookie(c)
	}

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	return testResponse{
		Status:   resp.StatusCode,
		Header:   resp.Header,
		Body:     string(raw),
		Cookies:  resp.Cookies(),
		Location: resp.Header.Get("Location"),
	}
}

// createSet は POST / でセットを作り、そのスラッグを返します。
func (a *testApp) createSet(t *testing.T, user *testUser, title string) string {
	t.Helper()
	res := a.send(t, httpRequestDetails{Method: http.MethodPost, Path: "/", Form: url.Values{"title": {title}}, User: user})
	require.Equal(t, http.StatusSeeOther, res.Status)

	var slug string
	require.NoError(t, a.db.Table("vocabulary_sets").Select("slug").
		Where("owner_id = ? AND title = ?", user.ID, title).Order("created_at DESC").Limit(1).Scan(&slug).Error)
	require.NotEmpty(t, slug)
	return slug
}

func (a *testApp) addEntry(t *testing.T, user *testUser, slug, word, translated string) uuid.UUID {
	t.Helper()
	a.translator.On("Translate", mock.Anything, word).Return(translated, nil).Once()
	res := a.send(t, httpRequestDetails{Method: http.MethodPost, Path: "/" + slug + "/", Form: url.Values{"word": {word}}, User: user})
	require.Equal(t, http.StatusSeeOther, res.Status)

	var id string
	require.NoError(t, a.db.Table("vocab_entries").Select("entry_id").
		Where("word = ?", word).Order("created_at DESC").Limit(1).Scan(&id).Error)
	return uuid.MustParse(id)
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// testFont は export パッケージのテスト用フォントを読み込みます。
func testFont(t *testing.T) []byte {
	t.Helper()
	font, err := export.LoadFont(filepath.Join("..", "export", "testdata", "DejaVuSansCondensed.ttf"))
	require.NoError(t, err)
	return font
}
