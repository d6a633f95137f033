package permission

import "atlas/internal/model"

// 记录级规则：静态权限表之外，按具体记录判定。
// editor 及以上对任意文章放行；writer 只对自己的文章放行；其余角色
// 无论静态表怎么写都拒绝。

// CanEditArticle 是否可编辑指定文章
func CanEditArticle(user *model.User, article *model.Article) bool {
	return canTouchArticle(user, article)
}

// CanDeleteArticle 是否可删除指定文章
func CanDeleteArticle(user *model.User, article *model.Article) bool {
	return canTouchArticle(user, article)
}

func canTouchArticle(user *model.User, article *model.Article) bool {
	if user == nil || article == nil {
		return false
	}
	if IsEditorOrHigher(user) {
		return true
	}
	if user.Role == model.RoleWriter {
		return article.AuthorID == user.ID
	}
	return false
}
