// Package service 包含了应用的业务逻辑层。
package service

import "strings"

// languageRule 将主题中出现的关键词映射为语言标签。
type languageRule struct {
	keywords []string
	tag      string
}

// languageRules 按优先级排列：越具体的关键词越靠前，
// 保证 "javascript" 不会被前缀 "java" 抢先匹配。
// 这是一个尽力而为的启发式，多关键词主题可能被误判。
var languageRules = []languageRule{
	{keywords: []string{"typescript", "ts"}, tag: "typescript"},
	{keywords: []string{"javascript", "js"}, tag: "javascript"},
	{keywords: []string{"java"}, tag: "java"},
	{keywords: []string{"python"}, tag: "python"},
	{keywords: []string{"c++", "cpp"}, tag: "c++"},
	{keywords: []string{"rust"}, tag: "rust"},
	{keywords: []string{"golang", "go"}, tag: "go"},
	{keywords: []string{"c"}, tag: "c"},
}

// knownLanguages 用于在搜索词中排除其他语言，降低结果噪音。
var knownLanguages = []string{"java", "python", "javascript", "typescript", "c", "c++", "go", "rust"}

// DetectLanguage 从主题文本中推断编程语言标签，用于偏置资源搜索。
// 按 languageRules 的顺序做整词匹配，首个命中的规则生效；无命中返回空串。
func DetectLanguage(topic string) string {
	tokens := tokenize(topic)
	if len(tokens) == 0 {
		return ""
	}
	for _, rule := range languageRules {
		for _, kw := range rule.keywords {
			if tokens[kw] {
				return rule.tag
			}
		}
	}
	return ""
}

// tokenize 将主题拆分为小写词元集合。'+' 与 '#' 保留在词内，
// 使 "c++" 作为一个整体词元出现。
func tokenize(topic string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#':
			return false
		}
		return true
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[f] = true
	}
	return tokens
}

// excludeOtherLanguages 生成形如 " -java -python" 的排除串，
// 在已知目标语言时追加到搜索词尾部。
func excludeOtherLanguages(lang string) string {
	if lang == "" {
		return ""
	}
	var b strings.Builder
	for _, l := range knownLanguages {
		if l == lang {
			continue
		}
		b.WriteString(" -")
		b.WriteString(l)
	}
	return b.String()
}
