package manager_test

import (
	"context"
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/seed"
)

func TestRegionManagerDegraded(t *testing.T) {
	Convey("远端不可达时地区管理器降级", t, func() {
		ctx := context.Background()
		m := manager.New(newStub(true), seed.Empty(), nil)

		Convey("创建降级为纯缓存写入，生成顺延 ID", func() {
			r, durable, err := m.Regions.Create(ctx, &model.Region{Name: model.Localized("云南")})
			So(err, ShouldBeNil)
			So(durable, ShouldBeFalse)
			So(r.ID, ShouldNotBeEmpty)
			So(regexp.MustCompile(`^loc_\d{3}$`).MatchString(r.ID), ShouldBeTrue)

			Convey("后续 getAll 能看到降级写入的记录", func() {
				all := m.Regions.GetAll(ctx)
				So(len(all), ShouldEqual, 1)
				So(all[0].ID, ShouldEqual, r.ID)
				So(all[0].Layer, ShouldEqual, model.DefaultRegionLayer)
			})

			Convey("从未同步成功过时 LastUpdated 不可用", func() {
				_, ok := m.Regions.LastUpdated()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("连续降级创建的 ID 依次递增", func() {
			a, _, _ := m.Regions.Create(ctx, &model.Region{Name: model.Localized("甲")})
			b, _, _ := m.Regions.Create(ctx, &model.Region{Name: model.Localized("乙")})
			So(a.ID, ShouldEqual, "loc_001")
			So(b.ID, ShouldEqual, "loc_002")
		})

		Convey("名称为空拒绝创建", func() {
			_, _, err := m.Regions.Create(ctx, &model.Region{})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("人口数为负拒绝创建", func() {
			pop := int64(-1)
			_, _, err := m.Regions.Create(ctx, &model.Region{Name: model.Localized("丙"), Population: &pop})
			So(manager.IsValidation(err), ShouldBeTrue)
		})
	})
}

func TestRegionManagerFallbackSeed(t *testing.T) {
	Convey("兜底快照与引用完整性守卫", t, func() {
		ctx := context.Background()
		src, err := seed.Embedded()
		So(err, ShouldBeNil)
		m := manager.New(newStub(true), src, nil)

		Convey("缓存从未填充时读取回落到兜底数据", func() {
			all := m.Regions.GetAll(ctx)
			So(len(all), ShouldBeGreaterThanOrEqualTo, 5)
			So(m.Regions.GetByID(ctx, "loc_001"), ShouldNotBeNil)
		})

		Convey("有子地区的地区不能删除", func() {
			removed, _, err := m.Regions.Delete(ctx, "loc_001")
			So(manager.IsValidation(err), ShouldBeTrue)
			So(removed, ShouldBeFalse)
			So(m.Regions.GetByID(ctx, "loc_001"), ShouldNotBeNil)
		})

		Convey("有文章引用的地区不能删除", func() {
			removed, _, err := m.Regions.Delete(ctx, "loc_003")
			So(manager.IsValidation(err), ShouldBeTrue)
			So(removed, ShouldBeFalse)
		})

		Convey("无引用的地区可以降级删除", func() {
			removed, durable, err := m.Regions.Delete(ctx, "loc_005")
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)
			So(durable, ShouldBeFalse)
			So(m.Regions.GetByID(ctx, "loc_005"), ShouldBeNil)
		})

		Convey("父链成环的更新被拒绝", func() {
			parent := "loc_002"
			_, _, err := m.Regions.Update(ctx, "loc_001", &model.RegionPatch{ParentID: &parent})
			So(manager.IsValidation(err), ShouldBeTrue)

			self := "loc_001"
			_, _, err = m.Regions.Update(ctx, "loc_001", &model.RegionPatch{ParentID: &self})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("合并更新只改 patch 中出现的字段", func() {
			lang := "藏语"
			before := m.Regions.GetByID(ctx, "loc_005")
			after, durable, err := m.Regions.Update(ctx, "loc_005", &model.RegionPatch{Language: &lang})
			So(err, ShouldBeNil)
			So(durable, ShouldBeFalse)
			So(after.Language, ShouldEqual, "藏语")
			So(after.Name.Primary(), ShouldEqual, before.Name.Primary())
			So(after.ParentID, ShouldEqual, before.ParentID)
		})
	})
}

func TestRegionManagerDurable(t *testing.T) {
	Convey("远端可达时写入持久化", t, func() {
		ctx := context.Background()
		m := manager.New(newStub(false), seed.Empty(), nil)

		r, durable, err := m.Regions.Create(ctx, &model.Region{Name: model.Localized("云南")})
		So(err, ShouldBeNil)
		So(durable, ShouldBeTrue)
		So(r.ID, ShouldNotBeEmpty)

		Convey("列表同步成功后 LastUpdated 可用", func() {
			So(len(m.Regions.GetAll(ctx)), ShouldEqual, 1)
			_, ok := m.Regions.LastUpdated()
			So(ok, ShouldBeTrue)
		})

		Convey("删除返回确有删除", func() {
			removed, durable, err := m.Regions.Delete(ctx, r.ID)
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)
			So(durable, ShouldBeTrue)

			removed, _, err = m.Regions.Delete(ctx, r.ID)
			So(err, ShouldBeNil)
			So(removed, ShouldBeFalse)
		})
	})
}
