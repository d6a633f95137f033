package codec

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/model"
)

func TestRegionRoundTrip(t *testing.T) {
	Convey("地区实体经行编码后可无损还原", t, func() {
		pop := int64(8500000)
		now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		region := &model.Region{
			ID:          "loc_001",
			Name:        model.Localized("云南"),
			ParentID:    "loc_000",
			Coordinates: model.Coordinates{Lat: 25.0389, Lng: 102.7183},
			Population:  &pop,
			Language:    "zh",
			Description: model.Localized("彩云之南"),
			Layer:       model.DefaultRegionLayer,
			Type:        model.DefaultRegionType,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		So(RegionToEntity(RegionToRow(region)), ShouldResemble, region)
	})

	Convey("nil 行返回 nil 实体", t, func() {
		So(RegionToEntity(nil), ShouldBeNil)
		So(RegionToRow(nil), ShouldBeNil)
	})

	Convey("缺失坐标解码为零值", t, func() {
		e := RegionToEntity(&RegionRow{RegionID: "loc_002", RegionName: "大理"})
		So(e.Coordinates, ShouldResemble, model.Coordinates{})
		So(e.Layer, ShouldEqual, model.DefaultRegionLayer)
		So(e.Type, ShouldEqual, model.DefaultRegionType)
	})
}

func TestArticleRoundTrip(t *testing.T) {
	Convey("文章实体经行编码后可无损还原", t, func() {
		now := time.Date(2025, 4, 12, 8, 30, 0, 0, time.UTC)
		article := &model.Article{
			ID:          "topic_001",
			Title:       model.Localized("茶马古道"),
			CoverURL:    "https://cdn.example.com/cover.jpg",
			Content:     model.Localized("从普洱到拉萨的千年商道。"),
			RegionID:    "loc_001",
			AuthorID:    "user_001",
			Status:      model.StatusPublished,
			Coordinates: &model.Coordinates{Lat: 22.78, Lng: 100.97},
			TrackData: []model.Coordinates{
				{Lat: 22.78, Lng: 100.97},
				{Lat: 25.04, Lng: 102.72},
				{Lat: 29.65, Lng: 91.13},
			},
			CategoryID: "cat_001",
			TagIDs:     []string{"tag_001", "tag_002"},
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		So(ArticleToEntity(ArticleToRow(article)), ShouldResemble, article)
	})

	Convey("非法状态解码为 draft", t, func() {
		e := ArticleToEntity(&TopicRow{TopicID: "topic_002", Status: "archived"})
		So(e.Status, ShouldEqual, model.StatusDraft)
	})

	Convey("损坏的 JSON 文本列按缺失处理", t, func() {
		bad := "{not json"
		e := ArticleToEntity(&TopicRow{TopicID: "topic_003", Status: "draft", Coordinates: &bad, TrackData: &bad, Tags: &bad})
		So(e.Coordinates, ShouldBeNil)
		So(e.TrackData, ShouldBeNil)
		So(e.TagIDs, ShouldBeNil)
	})
}

func TestUserRoundTrip(t *testing.T) {
	Convey("空手机号归一化为 NULL 列", t, func() {
		row := UserToRow(&model.User{ID: "user_001", Username: "shanmin", Email: "sm@example.com"})
		So(row.Phone, ShouldBeNil)

		back := UserToEntity(row)
		So(back.Phone, ShouldEqual, "")
	})

	Convey("非空手机号原样往返", t, func() {
		u := &model.User{ID: "user_002", Username: "luyao", Email: "ly@example.com", Phone: "13800138000", Role: model.RoleWriter}
		So(UserToEntity(UserToRow(u)), ShouldResemble, u)
	})
}
