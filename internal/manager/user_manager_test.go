package manager_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/seed"
)

func TestUserManagerCreate(t *testing.T) {
	Convey("用户创建与唯一性约束", t, func() {
		ctx := context.Background()
		src, err := seed.Embedded()
		So(err, ShouldBeNil)
		m := manager.New(newStub(true), src, nil)

		Convey("角色缺省为 viewer", func() {
			u, durable, err := m.Users.Create(ctx, &model.User{
				Username: "xiaowang",
				Email:    "xiaowang@atlas.example",
			})
			So(err, ShouldBeNil)
			So(durable, ShouldBeFalse)
			So(u.Role, ShouldEqual, model.RoleViewer)
		})

		Convey("用户名重复被拒绝", func() {
			_, _, err := m.Users.Create(ctx, &model.User{
				Username: "shanmin",
				Email:    "other@atlas.example",
			})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("邮箱重复被拒绝", func() {
			_, _, err := m.Users.Create(ctx, &model.User{
				Username: "other",
				Email:    "shanmin@atlas.example",
			})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("手机号重复被拒绝", func() {
			_, _, err := m.Users.Create(ctx, &model.User{
				Username: "other",
				Email:    "other@atlas.example",
				Phone:    "13800138001",
			})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("空白手机号归一化为缺失，互相不算冲突", func() {
			u1, _, err := m.Users.Create(ctx, &model.User{
				Username: "first", Email: "first@atlas.example", Phone: "  ",
			})
			So(err, ShouldBeNil)
			So(u1.Phone, ShouldBeEmpty)

			_, _, err = m.Users.Create(ctx, &model.User{
				Username: "second", Email: "second@atlas.example", Phone: "",
			})
			So(err, ShouldBeNil)
		})

		Convey("用户名或邮箱为空被拒绝", func() {
			_, _, err := m.Users.Create(ctx, &model.User{Email: "x@atlas.example"})
			So(manager.IsValidation(err), ShouldBeTrue)
			_, _, err = m.Users.Create(ctx, &model.User{Username: "x"})
			So(manager.IsValidation(err), ShouldBeTrue)
		})
	})
}

func TestUserManagerUpdate(t *testing.T) {
	Convey("用户合并更新", t, func() {
		ctx := context.Background()
		src, err := seed.Embedded()
		So(err, ShouldBeNil)
		m := manager.New(newStub(true), src, nil)

		Convey("改邮箱不影响其它字段", func() {
			email := "luyao2@atlas.example"
			u, durable, err := m.Users.Update(ctx, "user_003", &model.UserPatch{Email: &email})
			So(err, ShouldBeNil)
			So(durable, ShouldBeFalse)
			So(u.Email, ShouldEqual, email)
			So(u.Username, ShouldEqual, "luyao")
			So(u.Role, ShouldEqual, model.RoleWriter)
		})

		Convey("改成已占用的邮箱被拒绝", func() {
			email := "admin@atlas.example"
			_, _, err := m.Users.Update(ctx, "user_003", &model.UserPatch{Email: &email})
			So(manager.IsValidation(err), ShouldBeTrue)
		})

		Convey("改自己现有的邮箱不算冲突", func() {
			email := "luyao@atlas.example"
			_, _, err := m.Users.Update(ctx, "user_003", &model.UserPatch{Email: &email})
			So(err, ShouldBeNil)
		})

		Convey("按用户名查询", func() {
			So(m.Users.GetByUsername(ctx, "admin"), ShouldNotBeNil)
			So(m.Users.GetByUsername(ctx, "nobody"), ShouldBeNil)
		})

		Convey("按角色过滤", func() {
			So(len(m.Users.ByRole(ctx, model.RoleEditor)), ShouldEqual, 1)
			So(m.Users.ByRole(ctx, "ghost"), ShouldBeEmpty)
		})
	})
}
