package geo

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/model"
)

func TestPointRoundTrip(t *testing.T) {
	Convey("WKT POINT 编解码往返无损", t, func() {
		cases := []model.Coordinates{
			{Lat: 25.0389, Lng: 102.7183},   // 昆明
			{Lat: 39.9042, Lng: 116.4074},   // 北京
			{Lat: -33.8688, Lng: 151.2093},  // 南半球
			{Lat: 0.000001, Lng: -0.000001}, // 六位小数
			{Lat: 90, Lng: 180},
			{Lat: 0, Lng: 0},
		}
		for _, c := range cases {
			So(DecodePoint(EncodePoint(c)), ShouldResemble, c)
		}
	})

	Convey("编码格式为 POINT(lng lat)", t, func() {
		So(EncodePoint(model.Coordinates{Lat: 25.04, Lng: 102.72}), ShouldEqual, "POINT(102.72 25.04)")
	})
}

func TestDecodePointFallback(t *testing.T) {
	Convey("非法输入退回零值坐标", t, func() {
		for _, s := range []string{
			"",
			"POINT()",
			"POINT(abc def)",
			"LINESTRING(1 2, 3 4)",
			"102.72 25.04",
			"POINT(102.72)",
		} {
			So(DecodePoint(s), ShouldResemble, model.Coordinates{})
		}
	})

	Convey("容忍空白差异", t, func() {
		So(DecodePoint("  POINT( 102.72   25.04 )  "), ShouldResemble, model.Coordinates{Lat: 25.04, Lng: 102.72})
	})
}
