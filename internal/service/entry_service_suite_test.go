package service

import (
	"context"
	"errors"
	"testing"

	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// EntryServiceTestSuite はリポジトリをモックにして EntryService の分岐を検証します。
type EntryServiceTestSuite struct {
	suite.Suite

	mockSetRepo    *mocks.SetRepository
	mockEntryRepo  *mocks.EntryRepository
	mockTranslator *mockTranslator
	entryService   EntryService

	owner model.Requester
	set   *model.VocabularySet
}

// 各テストの直前にモックを作り直す
func (s *EntryServiceTestSuite) SetupTest() {
	s.mockSetRepo = new(mocks.SetRepository)
	s.mockEntryRepo = new(mocks.EntryRepository)
	s.mockTranslator = new(mockTranslator)
	s.entryService = NewEntryService(nil, s.mockSetRepo, s.mockEntryRepo, s.mockTranslator, 0)

	s.owner = model.Requester{UserID: uuid.New(), Name: "alice"}
	s.set = &model.VocabularySet{SetID: uuid.New(), OwnerID: s.owner.UserID, Title: "Greetings", Slug: "greetings"}
}

func (s *EntryServiceTestSuite) assertMocks() {
	s.mockSetRepo.AssertExpectations(s.T())
	s.mockEntryRepo.AssertExpectations(s.T())
	s.mockTranslator.AssertExpectations(s.T())
}

func TestEntryService(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}

func (s *EntryServiceTestSuite) TestAddEntry() {
	testCases := []struct {
		name        string
		requester   func() model.Requester
		word        string
		setupMocks  func()
		checkResult func(entry *model.VocabEntry, err error)
	}{
		{
			name:      "Success - 翻訳と拼音が保存される",
			requester: func() model.Requester { return s.owner },
			word:      "你好",
			setupMocks: func() {
				s.mockSetRepo.On("FindBySlug", mock.Anything, mock.Anything, "greetings").Return(s.set, nil).Once()
				s.mockTranslator.On("Translate", mock.Anything, "你好").Return("Hello", nil).Once()
				s.mockEntryRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(e *model.VocabEntry) bool {
					return e.SetID == s.set.SetID && e.Translation == "Hello" && e.Phonetic == "nǐ hǎo" && !e.TranslationPending
				})).Return(nil).Once()
			},
			checkResult: func(entry *model.VocabEntry, err error) {
				s.NoError(err)
				s.Equal(s.owner.UserID, entry.AuthorID)
			},
		},
		{
			name:      "Success - 翻訳失敗は保留として保存",
			requester: func() model.Requester { return s.owner },
			word:      "谢谢",
			setupMocks: func() {
				s.mockSetRepo.On("FindBySlug", mock.Anything, mock.Anything, "greetings").Return(s.set, nil).Once()
				s.mockTranslator.On("Translate", mock.Anything, "谢谢").Return("", errors.New("boom")).Once()
				s.mockEntryRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(e *model.VocabEntry) bool {
					return e.Translation == "" && e.TranslationPending && e.Phonetic == "xiè xiè"
				})).Return(nil).Once()
			},
			checkResult: func(entry *model.VocabEntry, err error) {
				s.NoError(err)
				s.True(entry.TranslationPending)
			},
		},
		{
			name:      "Failure - 漢字以外は検証エラーで書き込みなし",
			requester: func() model.Requester { return s.owner },
			word:      "hello",
			setupMocks: func() {
				s.mockSetRepo.On("FindBySlug", mock.Anything, mock.Anything, "greetings").Return(s.set, nil).Once()
			},
			checkResult: func(entry *model.VocabEntry, err error) {
				s.Nil(entry)
				s.ErrorIs(err, model.ErrInvalidInput)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				s.Equal("word", appErr.Detail.Field)
			},
		},
		{
			name:       "Failure - 未ログインはリポジトリに触れない",
			requester:  func() model.Requester { return model.Requester{} },
			word:       "你好",
			setupMocks: func() {},
			checkResult: func(entry *model.VocabEntry, err error) {
				s.Nil(entry)
				s.ErrorIs(err, model.ErrUnauthorized)
			},
		},
		{
			name:      "Failure - 他人のセットは NotFound",
			requester: func() model.Requester { return model.Requester{UserID: uuid.New(), Name: "bob"} },
			word:      "你好",
			setupMocks: func() {
				s.mockSetRepo.On("FindBySlug", mock.Anything, mock.Anything, "greetings").Return(s.set, nil).Once()
			},
			checkResult: func(entry *model.VocabEntry, err error) {
				s.Nil(entry)
				s.ErrorIs(err, model.ErrNotFound)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			entry, err := s.entryService.AddEntry(context.Background(), tc.requester(), "greetings", map[string]string{"word": tc.word})

			tc.checkResult(entry, err)
			s.assertMocks()
		})
	}
}

func (s *EntryServiceTestSuite) TestStar_AlreadyStarred() {
	entry := &model.VocabEntry{EntryID: uuid.New(), SetID: s.set.SetID, Word: "你好", Starred: true}
	s.mockSetRepo.On("FindBySlug", mock.Anything, mock.Anything, "greetings").Return(s.set, nil).Once()
	s.mockEntryRepo.On("FindByID", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()

	got, err := s.entryService.Star(context.Background(), s.owner, "greetings", entry.EntryID)

	s.NoError(err)
	s.True(got.Starred)
	s.mockEntryRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.assertMocks()
}

func (s *EntryServiceTestSuite) TestDeleteEntry_PendingDoesNotDelete() {
	entry := &model.VocabEntry{EntryID: uuid.New(), SetID: s.set.SetID, Word: "你好"}
	s.mockSetRepo.On("FindBySlug", mock.Anything, mock.Anything, "greetings").Return(s.set, nil).Once()
	s.mockEntryRepo.On("FindByID", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()

	outcome, err := s.entryService.DeleteEntry(context.Background(), s.owner, "greetings", entry.EntryID, model.DeletePending)

	s.NoError(err)
	s.False(outcome.Deleted())
	s.Equal(entry, outcome.Entry)
	s.mockEntryRepo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything, mock.Anything)
	s.assertMocks()
}

func (s *EntryServiceTestSuite) TestRetryTranslation_Recovered() {
	entry := &model.VocabEntry{EntryID: uuid.New(), SetID: s.set.SetID, Word: "谢谢", TranslationPending: true}
	s.mockSetRepo.On("FindBySlug", mock.Anything, mock.Anything, "greetings").Return(s.set, nil).Once()
	s.mockEntryRepo.On("FindByID", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()
	s.mockTranslator.On("Translate", mock.Anything, "谢谢").Return("Thanks", nil).Once()
	s.mockEntryRepo.On("Update", mock.Anything, mock.Anything, entry.EntryID,
		map[string]interface{}{"translation": "Thanks", "translation_pending": false}).Return(nil).Once()

	got, err := s.entryService.RetryTranslation(context.Background(), s.owner, "greetings", entry.EntryID)

	s.NoError(err)
	s.Equal("Thanks", got.Translation)
	s.False(got.TranslationPending)
	s.assertMocks()
}
