package manager_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/seed"
)

func TestRoleManager(t *testing.T) {
	Convey("角色管理", t, func() {
		ctx := context.Background()
		src, err := seed.Embedded()
		So(err, ShouldBeNil)
		m := manager.New(newStub(true), src, nil)

		Convey("兜底快照带四个内置角色", func() {
			So(len(m.Roles.GetAll(ctx)), ShouldEqual, 4)
			So(len(m.Roles.Permissions(ctx)), ShouldBeGreaterThan, 0)
		})

		Convey("降级时角色-权限关联不可用，返回空列表", func() {
			So(m.Roles.PermissionsOf(ctx, "role_001"), ShouldBeEmpty)
		})

		Convey("角色名重复被拒绝", func() {
			_, _, err := m.Roles.Create(ctx, &model.Role{Name: "admin"})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("系统角色不能删除", func() {
			removed, _, err := m.Roles.Delete(ctx, "role_001")
			So(manager.IsValidation(err), ShouldBeTrue)
			So(removed, ShouldBeFalse)
			So(m.Roles.GetByID(ctx, "role_001"), ShouldNotBeNil)
		})

		Convey("系统角色不能降级为非系统角色", func() {
			system := false
			_, _, err := m.Roles.Update(ctx, "role_002", &model.RolePatch{IsSystem: &system})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("仍分配给用户的角色不能删除", func() {
			r, _, err := m.Roles.Create(ctx, &model.Role{Name: "guide", Description: "导览员"})
			So(err, ShouldBeNil)
			_, _, err = m.Users.Create(ctx, &model.User{
				Username: "daoyou", Email: "daoyou@atlas.example", Role: "guide",
			})
			So(err, ShouldBeNil)

			removed, _, err := m.Roles.Delete(ctx, r.ID)
			So(manager.IsValidation(err), ShouldBeTrue)
			So(removed, ShouldBeFalse)
		})

		Convey("无人使用的非系统角色可以删除", func() {
			removed, durable, err := m.Roles.Delete(ctx, "role_004")
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)
			So(durable, ShouldBeFalse)
		})

		Convey("删除不存在的角色不算错误", func() {
			removed, _, err := m.Roles.Delete(ctx, "role_999")
			So(err, ShouldBeNil)
			So(removed, ShouldBeFalse)
		})
	})
}
