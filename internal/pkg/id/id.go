package id

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// IsValid 验证UUID格式是否有效
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// 各实体降级写入时合成 ID 的前缀
const (
	RegionPrefix   = "loc"
	ArticlePrefix  = "topic"
	UserPrefix     = "user"
	RolePrefix     = "role"
	CategoryPrefix = "cat"
	TagPrefix      = "tag"
	VersionPrefix  = "ver"
)

// Sequential 合成 "<prefix>_<三位序号>" 形式的 ID
// 远端不可达时本地写入使用，序号从已有同前缀 ID 的最大值继续
func Sequential(prefix string, existing []string) string {
	re := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `_(\d+)$`)
	max := 0
	for _, id := range existing {
		m := re.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s_%03d", prefix, max+1)
}
