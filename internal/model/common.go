package model

// LocalizedText 多语言文本，key 为语言代码（zh/en/...）
// 关系库中只保存主语言（zh），其余语言由上层补充
type LocalizedText map[string]string

// PrimaryLanguage 主语言代码
const PrimaryLanguage = "zh"

// Primary 取主语言文本；主语言缺失时退回任意一个非空值
func (t LocalizedText) Primary() string {
	if t == nil {
		return ""
	}
	if v, ok := t[PrimaryLanguage]; ok {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Clone 深拷贝
func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	out := make(LocalizedText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Localized 构造只含主语言的文本
func Localized(primary string) LocalizedText {
	return LocalizedText{PrimaryLanguage: primary}
}

// Coordinates 地理坐标（WGS84）
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero 是否为零值坐标
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}
