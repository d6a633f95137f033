package permission

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/model"
)

func TestFailClosed(t *testing.T) {
	Convey("未知角色一律拒绝", t, func() {
		e := NewEvaluator(nil)
		ghost := &model.User{ID: "u1", Role: "superhero"}

		So(e.CheckPage(ghost, "dashboard"), ShouldBeFalse)
		for _, module := range []string{ModuleRegions, ModuleArticles, ModuleUsers, ModuleRoles, ModuleCategories, ModuleTags} {
			for _, action := range []string{ActionCreate, ActionEdit, ActionDelete, ActionPublish, ActionManage} {
				So(e.CheckAction(ghost, module, action), ShouldBeFalse)
			}
		}
	})

	Convey("角色名区分大小写", t, func() {
		e := NewEvaluator(nil)
		So(e.CheckAction(&model.User{Role: "Admin"}, ModuleUsers, ActionManage), ShouldBeFalse)
		So(e.CheckAction(&model.User{Role: model.RoleAdmin}, ModuleUsers, ActionManage), ShouldBeTrue)
	})

	Convey("nil 用户拒绝", t, func() {
		e := NewEvaluator(nil)
		So(e.CheckPage(nil, "dashboard"), ShouldBeFalse)
		So(e.CheckAction(nil, ModuleArticles, ActionEdit), ShouldBeFalse)
	})
}

func TestStaticMatrix(t *testing.T) {
	Convey("内置权限表", t, func() {
		e := NewEvaluator(nil)
		editor := &model.User{ID: "u2", Role: model.RoleEditor}
		viewer := &model.User{ID: "u3", Role: model.RoleViewer}

		So(e.CheckAction(editor, ModuleArticles, ActionPublish), ShouldBeTrue)
		So(e.CheckAction(editor, ModuleUsers, ActionManage), ShouldBeFalse)
		So(e.CheckAction(viewer, ModuleArticles, ActionEdit), ShouldBeFalse)
		So(e.CheckPage(viewer, "dashboard"), ShouldBeTrue)
		So(e.CheckPage(viewer, "users"), ShouldBeFalse)
	})
}

func TestRecordLevelOverride(t *testing.T) {
	Convey("writer 只能动自己的文章", t, func() {
		writer := &model.User{ID: "42", Role: model.RoleWriter}
		own := &model.Article{ID: "a1", AuthorID: "42"}
		other := &model.Article{ID: "a2", AuthorID: "7"}

		So(CanEditArticle(writer, own), ShouldBeTrue)
		So(CanDeleteArticle(writer, own), ShouldBeTrue)
		So(CanEditArticle(writer, other), ShouldBeFalse)
		So(CanDeleteArticle(writer, other), ShouldBeFalse)
	})

	Convey("editor 及以上不受作者限制", t, func() {
		editor := &model.User{ID: "9", Role: model.RoleEditor}
		admin := &model.User{ID: "1", Role: model.RoleAdmin}
		other := &model.Article{ID: "a2", AuthorID: "7"}

		So(CanEditArticle(editor, other), ShouldBeTrue)
		So(CanEditArticle(admin, other), ShouldBeTrue)
	})

	Convey("viewer 与未知角色即便静态表放行也拒绝", t, func() {
		viewer := &model.User{ID: "7", Role: model.RoleViewer}
		own := &model.Article{ID: "a3", AuthorID: "7"}
		So(CanEditArticle(viewer, own), ShouldBeFalse)
		So(CanEditArticle(&model.User{ID: "7", Role: "ghost"}, own), ShouldBeFalse)
	})
}

func TestTierOrder(t *testing.T) {
	Convey("角色层级谓词", t, func() {
		So(IsAdmin(&model.User{Role: model.RoleAdmin}), ShouldBeTrue)
		So(IsAdmin(&model.User{Role: model.RoleEditor}), ShouldBeFalse)
		So(IsEditorOrHigher(&model.User{Role: model.RoleAdmin}), ShouldBeTrue)
		So(IsEditorOrHigher(&model.User{Role: model.RoleWriter}), ShouldBeFalse)
		So(IsWriterOrHigher(&model.User{Role: model.RoleWriter}), ShouldBeTrue)
		So(IsWriterOrHigher(&model.User{Role: "user"}), ShouldBeFalse)
		So(IsWriterOrHigher(nil), ShouldBeFalse)
	})
}
