package i18n

import "sync/atomic"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	key := data["key"]
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return withKey("必須キーがプランに含まれていません", key)
		case "unknown_key":
			return withKey("スキーマに存在しないキーです", key)
		case "not_in_plan":
			return withKey("プランに含まれないキーです", key)
		case "duplicate_key":
			return withKey("キーが重複しています", key)
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return withKey("型が不正です (期待: "+exp+")", key)
			}
			return withKey("型が不正です", key)
		case "empty_plan":
			return "プランが空です"
		case "finalized":
			return "レコードは既に確定しています"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "required":
			return withKey("missing required key in plan", key)
		case "unknown_key":
			return withKey("key not declared by schema", key)
		case "not_in_plan":
			return withKey("key not in plan", key)
		case "duplicate_key":
			return withKey("duplicate key", key)
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return withKey("invalid type (expected "+exp+")", key)
			}
			return withKey("invalid type", key)
		case "empty_plan":
			return "plan is empty"
		case "finalized":
			return "record already finalized"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

func withKey(msg, key string) string {
	if key == "" {
		return msg
	}
	return msg + ": " + key
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().tr.Message(code, data)
}
