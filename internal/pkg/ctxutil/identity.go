package ctxutil

import "context"

// Identity 请求方身份，认证中间件解析 JWT 后注入
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// identityKeyType 使用私有类型避免与其他 context key 冲突
type identityKeyType struct{}

var identityKey = identityKeyType{}

// WithIdentity 将身份注入到 context 中
// 说明：建议在认证中间件中调用，例如在解析 JWT 成功后：
//
//	ctx := ctxutil.WithIdentity(c.Request.Context(), ident)
//	c.Request = c.Request.WithContext(ctx)
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity 从 context 中解析身份
func GetIdentity(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	ident, ok := ctx.Value(identityKey).(Identity)
	if !ok || ident.UserID == "" {
		return Identity{}, false
	}
	return ident, true
}
