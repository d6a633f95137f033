// Package search 提供关键词匹配：不区分大小写的子串匹配为主，
// 中文关键词另经 gse 分词扩展出词元，任一词元命中即算命中。
package search

import (
	"strings"
	"unicode"

	"github.com/go-ego/gse"
)

// Matcher 关键词匹配器
type Matcher struct {
	segmenter *gse.Segmenter
}

// New 创建匹配器
// 分词器初始化失败时降级为纯子串匹配
func New() *Matcher {
	segmenter, err := gse.New()
	if err != nil {
		return &Matcher{}
	}
	return &Matcher{segmenter: &segmenter}
}

// Plain 纯子串匹配器，测试与轻量部署使用
func Plain() *Matcher {
	return &Matcher{}
}

// Terms 展开关键词：原词 + 中文分词词元（去重，统一小写）
func (m *Matcher) Terms(keyword string) []string {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}
	terms := []string{keyword}
	if m.segmenter != nil && containsCJK(keyword) {
		seen := map[string]bool{keyword: true}
		for _, seg := range m.segmenter.CutSearch(keyword, true) {
			seg = strings.TrimSpace(seg)
			if seg == "" || seen[seg] {
				continue
			}
			seen[seg] = true
			terms = append(terms, seg)
		}
	}
	return terms
}

// Match 任一字段包含任一词元即命中
func (m *Matcher) Match(keyword string, fields ...string) bool {
	terms := m.Terms(keyword)
	if len(terms) == 0 {
		return true
	}
	for _, field := range fields {
		field = strings.ToLower(field)
		for _, term := range terms {
			if strings.Contains(field, term) {
				return true
			}
		}
	}
	return false
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
