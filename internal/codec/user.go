package codec

import "atlas/internal/model"

// UserToEntity 用户行 → 实体
func UserToEntity(row *UserRow) *model.User {
	if row == nil {
		return nil
	}
	u := &model.User{
		ID:           row.UserID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		CreatedAt:    row.CreateTime,
		UpdatedAt:    row.UpdateTime,
	}
	if row.Phone != nil {
		u.Phone = *row.Phone
	}
	return u
}

// UserToRow 用户实体 → 行
// 空串手机号归一化为 NULL
func UserToRow(e *model.User) *UserRow {
	if e == nil {
		return nil
	}
	row := &UserRow{
		UserID:       e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Role:         e.Role,
		CreateTime:   e.CreatedAt,
		UpdateTime:   e.UpdatedAt,
	}
	if e.Phone != "" {
		row.Phone = strPtr(e.Phone)
	}
	return row
}

// RoleToEntity 角色行 → 实体
func RoleToEntity(row *RoleRow) *model.Role {
	if row == nil {
		return nil
	}
	return &model.Role{
		ID:          row.RoleID,
		Name:        row.Name,
		Description: row.Description,
		IsSystem:    row.IsSystem,
		CreatedAt:   row.CreateTime,
		UpdatedAt:   row.UpdateTime,
	}
}

// RoleToRow 角色实体 → 行
func RoleToRow(e *model.Role) *RoleRow {
	if e == nil {
		return nil
	}
	return &RoleRow{
		RoleID:      e.ID,
		Name:        e.Name,
		Description: e.Description,
		IsSystem:    e.IsSystem,
		CreateTime:  e.CreatedAt,
		UpdateTime:  e.UpdatedAt,
	}
}

// PermissionToEntity 权限行 → 实体
func PermissionToEntity(row *PermissionRow) *model.Permission {
	if row == nil {
		return nil
	}
	return &model.Permission{
		ID:          row.PermissionID,
		Module:      row.Module,
		Name:        row.Name,
		Description: row.Description,
	}
}

// PermissionToRow 权限实体 → 行
func PermissionToRow(e *model.Permission) *PermissionRow {
	if e == nil {
		return nil
	}
	return &PermissionRow{
		PermissionID: e.ID,
		Module:       e.Module,
		Name:         e.Name,
		Description:  e.Description,
	}
}
