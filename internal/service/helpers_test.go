package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"go_vocab_sets/internal/export"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリ sqlite を用意します。
func setupTestDB(t *testing.T) *gorm.DB {
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
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type mockTranslator struct {
	mock.Mock
}

func (m *mockTranslator) Translate(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) RenderSet(doc export.Document) ([]byte, error) {
	args := m.Called(doc)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

type testEnv struct {
	db         *gorm.DB
	sets       SetService
	entries    EntryService
	translator *mockTranslator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	setRepo := repository.NewGormSetRepository()
	entryRepo := repository.NewGormEntryRepository()
	translator := new(mockTranslator)
	return &testEnv{
		db:         db,
		sets:       NewSetService(db, setRepo, entryRepo, export.NewTableRenderer(testFont(t))),
		entries:    NewEntryService(db, setRepo, entryRepo, translator, 0),
		translator: translator,
	}
}

func newRequester(name string) model.Requester {
	return model.Requester{UserID: uuid.New(), Name: name}
}

func (e *testEnv) createSet(t *testing.T, requester model.Requester, title string) *model.VocabularySet {
	t.Helper()
	set, err := e.sets.CreateSet(context.Background(), requester, map[string]string{"title": title})
	require.NoError(t, err)
	return set
}

func (e *testEnv) addEntry(t *testing.T, requester model.Requester, slug, word, translated string) *model.VocabEntry {
	t.Helper()
	e.translator.On("Translate", mock.Anything, word).Return(translated, nil).Once()
	entry, err := e.entries.AddEntry(context.Background(), requester, slug, map[string]string{"word": word})
	require.NoError(t, err)
	return entry
}

// testFont は export パッケージのテスト用フォントを読み込みます。
func testFont(t *testing.T) []byte {
	t.Helper()
	font, err := export.LoadFont(filepath.Join("..", "export", "testdata", "DejaVuSansCondensed.ttf"))
	require.NoError(t, err)
	return font
}
