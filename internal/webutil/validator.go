package webutil

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"go_vocab_sets/internal/model"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/unicode/norm"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

// Charset restricts the characters a field accepts.
type Charset string

const (
	CharsetAny Charset = ""
	CharsetHan Charset = "han"
)

// FieldRule describes the constraints of one form field.
type FieldRule struct {
	Name     string
	Label    string
	Required bool
	MaxLen   int // in characters (runes)
	Charset  Charset
}

// EntityRules is the rule table of one kind of input.
type EntityRules struct {
	Kind   string
	Fields []FieldRule
}

var (
	SetRules = EntityRules{
		Kind: "vocabulary_set",
		Fields: []FieldRule{
			{Name: "title", Label: "Title", Required: true, MaxLen: model.TitleMaxLen},
		},
	}
	EntryRules = EntityRules{
		Kind: "vocab_entry",
		Fields: []FieldRule{
			{Name: "word", Label: "Word", Required: true, MaxLen: model.WordMaxLen, Charset: CharsetHan},
		},
	}
	EditRules = EntityRules{
		Kind: "vocab_entry_edit",
		Fields: []FieldRule{
			{Name: "translation", Label: "Translation", Required: true, MaxLen: model.TranslationMaxLen},
		},
	}
)

func (r FieldRule) tag() string {
	var parts []string
	if r.Required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "omitempty")
	}
	if r.MaxLen > 0 {
		parts = append(parts, "max="+strconv.Itoa(r.MaxLen))
	}
	if r.Charset != CharsetAny {
		parts = append(parts, string(r.Charset))
	}
	return strings.Join(parts, ",")
}

func init() {
	Validator = validator.New()
	if err := Validator.RegisterValidation(string(CharsetHan), isHan); err != nil {
		log.Fatal(err)
	}

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// FieldRule 用のメッセージ ({0}=ラベル, {1}=パラメータ)
	messages := map[string]string{
		"rule-required": "{0} is required.",
		"rule-max":      "{0} must be at most {1} characters.",
		"rule-han":      "{0} only accepts Chinese characters.",
	}
	for key, msg := range messages {
		if err := Trans.Add(key, msg, true); err != nil {
			log.Fatal(err)
		}
	}
}

// isHan accepts strings made only of Han ideographs.
func isHan(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}

// Normalize trims and NFC-normalizes a raw form value.
func Normalize(value string) string {
	return strings.TrimSpace(norm.NFC.String(value))
}

// ValidateFields validates raw against rules and returns the normalized values.
// The first failing field is reported as a *model.AppError wrapping model.ErrInvalidInput.
func ValidateFields(rules EntityRules, raw map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(rules.Fields))
	for _, rule := range rules.Fields {
		value := Normalize(raw[rule.Name])
		if err := Validator.Var(value, rule.tag()); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
				return nil, rule.failure(validationErrors[0])
			}
			return nil, fmt.Errorf("webutil.ValidateFields(%s): %w", rules.Kind, err)
		}
		values[rule.Name] = value
	}
	return values, nil
}

func (r FieldRule) failure(fe validator.FieldError) *model.AppError {
	msg, err := Trans.T("rule-"+fe.Tag(), r.Label, fe.Param())
	if err != nil || msg == "" {
		msg = fe.Translate(Trans)
	}
	return model.NewValidationError(r.Name, fe.Tag(), msg)
}
