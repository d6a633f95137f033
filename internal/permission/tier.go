package permission

import "atlas/internal/model"

// 角色层级全序：admin > editor > writer > viewer
// 新角色必须在这里显式排位，层级不会从权限表推断
var tierOf = map[string]int{
	model.RoleAdmin:  4,
	model.RoleEditor: 3,
	model.RoleWriter: 2,
	model.RoleViewer: 1,
	"user":           1, // viewer 的历史别名
}

func tier(role string) int {
	return tierOf[role] // 未知角色为 0，低于一切
}

// IsAdmin 是否管理员
func IsAdmin(user *model.User) bool {
	return user != nil && tier(user.Role) >= tierOf[model.RoleAdmin]
}

// IsEditorOrHigher 是否编辑及以上
func IsEditorOrHigher(user *model.User) bool {
	return user != nil && tier(user.Role) >= tierOf[model.RoleEditor]
}

// IsWriterOrHigher 是否作者及以上
func IsWriterOrHigher(user *model.User) bool {
	return user != nil && tier(user.Role) >= tierOf[model.RoleWriter]
}
