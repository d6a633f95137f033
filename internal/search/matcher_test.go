package search

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPlainMatch(t *testing.T) {
	Convey("子串匹配不区分大小写", t, func() {
		m := Plain()
		So(m.Match("Tea", "the ancient tea horse road"), ShouldBeTrue)
		So(m.Match("古道", "茶马古道：从普洱到拉萨"), ShouldBeTrue)
		So(m.Match("骑行", "茶马古道"), ShouldBeFalse)
	})

	Convey("多字段 OR 匹配", t, func() {
		m := Plain()
		So(m.Match("洱海", "环湖骑行", "洱海一百二十公里湖岸线"), ShouldBeTrue)
	})

	Convey("空关键词命中一切", t, func() {
		So(Plain().Match("", "anything"), ShouldBeTrue)
		So(Plain().Match("   ", "anything"), ShouldBeTrue)
	})
}

func TestTerms(t *testing.T) {
	Convey("原词永远是第一个词元", t, func() {
		m := Plain()
		terms := m.Terms("茶马古道")
		So(len(terms), ShouldBeGreaterThanOrEqualTo, 1)
		So(terms[0], ShouldEqual, "茶马古道")
	})

	Convey("非中文关键词不做分词扩展", t, func() {
		m := New()
		So(m.Terms("Cycling"), ShouldResemble, []string{"cycling"})
	})
}
