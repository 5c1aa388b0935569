package auth

import "context"

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type ctxKey struct{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the user put into the request context by the auth middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*User)
	if !ok || user == nil || user.ID == "" {
		return nil, false
	}
	return user, true
}
