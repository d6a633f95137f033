package geo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"atlas/internal/model"
)

// WKT POINT 经度在前、纬度在后，坐标为十进制数，允许小数部分
var pointPattern = regexp.MustCompile(`^POINT\s*\(\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s*\)$`)

// EncodePoint 将坐标编码为 WKT POINT 字符串
func EncodePoint(c model.Coordinates) string {
	return fmt.Sprintf("POINT(%s %s)", formatCoord(c.Lng), formatCoord(c.Lat))
}

// DecodePoint 解析 WKT POINT 字符串
// 格式不匹配时返回零值坐标而不是报错，与存量数据的容错行为一致
func DecodePoint(s string) model.Coordinates {
	m := pointPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return model.Coordinates{}
	}
	lng, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return model.Coordinates{}
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return model.Coordinates{}
	}
	return model.Coordinates{Lat: lat, Lng: lng}
}

// formatCoord 输出不带多余零的十进制表示，保证编解码往返无损
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
