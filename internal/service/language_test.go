package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"java basics", "java"},
		{"JavaScript promises", "javascript"},
		{"js event loop", "javascript"},
		{"typescript generics", "typescript"},
		{"TS decorators", "typescript"},
		{"python list comprehension", "python"},
		{"c++ templates", "c++"},
		{"cpp move semantics", "c++"},
		{"rust ownership", "rust"},
		{"learn golang", "go"},
		{"go channels", "go"},
		{"c pointers", "c"},
		{"c", "c"},
		// "django" 不含独立的 "go" 词元，不应误判。
		{"django forms", ""},
		{"cooking pasta", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.topic), "topic=%q", tt.topic)
	}
}

func TestDetectLanguagePrecedence(t *testing.T) {
	// "javascript" 同时含有 java 前缀，整词匹配下应判为 javascript。
	assert.Equal(t, "javascript", DetectLanguage("javascript"))
	// 多关键词主题按规则顺序取第一个命中的，属于已知的尽力而为行为。
	assert.Equal(t, "typescript", DetectLanguage("typescript vs go"))
}

func TestExcludeOtherLanguages(t *testing.T) {
	s := excludeOtherLanguages("java")
	assert.NotContains(t, s, "-java ")
	assert.Contains(t, s, " -python")
	assert.Contains(t, s, " -rust")

	assert.Equal(t, "", excludeOtherLanguages(""))
}
