package service

import "strings"

// 偏好设置里存的是语言展示名（App 端下拉框的值），
// TMDB 存的是 ISO-639-1 代码，两边都要查，维护一张固定映射表
var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"ml": "Malayalam",
	"kn": "Kannada",
	"bn": "Bengali",
	"mr": "Marathi",
	"pa": "Punjabi",
	"gu": "Gujarati",
	"ur": "Urdu",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"th": "Thai",
	"id": "Indonesian",
	"tr": "Turkish",
	"ar": "Arabic",
	"fa": "Persian",
	"he": "Hebrew",
	"nl": "Dutch",
	"pl": "Polish",
	"sv": "Swedish",
	"da": "Danish",
	"no": "Norwegian",
}

var languageCodes = func() map[string]string {
	m := make(map[string]string, len(languageNames))
	for code, name := range languageNames {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// LanguageName 代码转展示名，未知代码原样返回
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// LanguageCode 展示名转代码，未知名字返回空串
func LanguageCode(name string) string {
	return languageCodes[strings.ToLower(strings.TrimSpace(name))]
}

// LanguageCodesOf 批量转换，跳过无法识别的名字
func LanguageCodesOf(names []string) []string {
	codes := make([]string, 0, len(names))
	for _, name := range names {
		if code := LanguageCode(name); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
