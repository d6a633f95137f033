// Package permission 实现角色 × 模块 × 操作的静态权限表与记录级规则。
// 角色名区分大小写精确匹配；表中不存在的角色一律拒绝（fail-closed）。
package permission

import "atlas/internal/model"

// ActionSet 某模块下的操作开关
type ActionSet map[string]bool

// RolePolicy 单个角色的页面与操作权限
type RolePolicy struct {
	Pages   map[string]bool
	Actions map[string]ActionSet
}

// Matrix 角色名 → 权限策略
type Matrix map[string]RolePolicy

// 模块名
const (
	ModuleRegions    = "regions"
	ModuleArticles   = "articles"
	ModuleUsers      = "users"
	ModuleRoles      = "roles"
	ModuleCategories = "categories"
	ModuleTags       = "tags"
)

// 操作名
const (
	ActionCreate  = "create"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionPublish = "publish"
	ActionManage  = "manage"
)

// DefaultMatrix 内置权限表
// 新增角色必须显式加表项并在 tierOf 中排位，没有推断规则
func DefaultMatrix() Matrix {
	return Matrix{
		model.RoleAdmin: {
			Pages: map[string]bool{
				"dashboard": true, "regions": true, "articles": true,
				"users": true, "roles": true, "settings": true,
			},
			Actions: map[string]ActionSet{
				ModuleRegions:    {ActionCreate: true, ActionEdit: true, ActionDelete: true},
				ModuleArticles:   {ActionCreate: true, ActionEdit: true, ActionDelete: true, ActionPublish: true},
				ModuleUsers:      {ActionManage: true},
				ModuleRoles:      {ActionManage: true},
				ModuleCategories: {ActionCreate: true, ActionEdit: true, ActionDelete: true},
				ModuleTags:       {ActionCreate: true, ActionDelete: true},
			},
		},
		model.RoleEditor: {
			Pages: map[string]bool{
				"dashboard": true, "regions": true, "articles": true,
			},
			Actions: map[string]ActionSet{
				ModuleRegions:    {ActionCreate: true, ActionEdit: true},
				ModuleArticles:   {ActionCreate: true, ActionEdit: true, ActionDelete: true, ActionPublish: true},
				ModuleCategories: {ActionCreate: true, ActionEdit: true},
				ModuleTags:       {ActionCreate: true},
			},
		},
		model.RoleWriter: {
			Pages: map[string]bool{
				"dashboard": true, "articles": true,
			},
			Actions: map[string]ActionSet{
				ModuleArticles: {ActionCreate: true, ActionEdit: true, ActionDelete: true},
				ModuleTags:     {ActionCreate: true},
			},
		},
		model.RoleViewer: {
			Pages: map[string]bool{
				"dashboard": true,
			},
			Actions: map[string]ActionSet{},
		},
	}
}

// Evaluator 权限判定器
type Evaluator struct {
	matrix Matrix
}

// NewEvaluator 创建判定器；matrix 为 nil 时使用内置表
func NewEvaluator(matrix Matrix) *Evaluator {
	if matrix == nil {
		matrix = DefaultMatrix()
	}
	return &Evaluator{matrix: matrix}
}

// CheckPage 页面权限；未知角色一律拒绝
func (e *Evaluator) CheckPage(user *model.User, page string) bool {
	if user == nil {
		return false
	}
	policy, ok := e.matrix[user.Role]
	if !ok {
		return false
	}
	return policy.Pages[page]
}

// CheckAction 操作权限；未知角色或未登记的模块/操作一律拒绝
func (e *Evaluator) CheckAction(user *model.User, module, action string) bool {
	if user == nil {
		return false
	}
	policy, ok := e.matrix[user.Role]
	if !ok {
		return false
	}
	actions, ok := policy.Actions[module]
	if !ok {
		return false
	}
	return actions[action]
}
