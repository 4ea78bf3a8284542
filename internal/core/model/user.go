package model

type User interface {
	Subject() string
	Email() string
	DisplayName() string
	Claims() map[string]any
}

type BaseUser struct {
	subject     string
	email       string
	displayName string
	claims      map[string]any
}

// Claims implements User.
func (u *BaseUser) Claims() map[string]any {
	return u.claims
}

// DisplayName implements User.
func (u *BaseUser) DisplayName() string {
	return u.displayName
}

// Email implements User.
func (u *BaseUser) Email() string {
	return u.email
}

// Subject implements User.
func (u *BaseUser) Subject() string {
	return u.subject
}

var _ User = &BaseUser{}

func NewUser(subject, email, displayName string, claims map[string]any) *BaseUser {
	if claims == nil {
		claims = map[string]any{}
	}

	return &BaseUser{
		subject:     subject,
		email:       email,
		displayName: displayName,
		claims:      claims,
	}
}
