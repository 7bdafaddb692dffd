package i18n

// Translator retrieves localized messages for validation error codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "tag").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "not_in_enum":
			return "列挙値に含まれていません"
		case "not_array":
			return "配列ではありません"
		case "not_object":
			return "オブジェクトではありません"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return withKey("未知のキーです", data)
		case "missing_tag":
			return withTag("判別タグがありません", data)
		case "invalid_tag":
			return withTag("判別タグが文字列ではありません", data)
		case "unknown_tag":
			return withTag("判別タグの値に対応するスキーマがありません", data)
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "not_in_enum":
			return "value not in enum"
		case "not_array":
			return "not an array"
		case "not_object":
			return "not an object"
		case "required":
			return "required property missing"
		case "unknown_key":
			return withKey("unknown key", data)
		case "missing_tag":
			return withTag("discriminator tag missing", data)
		case "invalid_tag":
			return withTag("discriminator tag is not a string", data)
		case "unknown_tag":
			return withTag("discriminator tag has no mapping", data)
		}
	}
	return code
}

func withKey(msg string, data map[string]string) string {
	if k, ok := data["key"]; ok {
		return msg + ": " + k
	}
	return msg
}

func withTag(msg string, data map[string]string) string {
	if k, ok := data["tag"]; ok {
		return msg + ": " + k
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
