package models

// Role is a closed enumeration of the role kinds a user can hold.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleAdmin      Role = "admin"
	RoleFranchisee Role = "franchisee"
)

// User represents a registered user of the pizza shop.
type User struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Name     string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email    string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Roles    []UserRole `json:"roles" gorm:"foreignKey:UserID"`
}

// UserRole is a single role assignment. ObjectID scopes a franchisee role to
// the franchise it administers and is zero for the other role kinds.
type UserRole struct {
	ID       uint `json:"-" gorm:"primaryKey"`
	UserID   uint `json:"-" gorm:"index"`
	Role     Role `json:"role" gorm:"type:varchar(20)"`
	ObjectID uint `json:"objectId,omitempty"`
}

// RoleAssignment is the inbound shape of a role request. A franchisee role
// names its franchise by Object (the franchise name); the repository resolves
// the name to an id.
type RoleAssignment struct {
	Role   Role   `json:"role" validate:"required,oneof=diner admin franchisee"`
	Object string `json:"object,omitempty"`
}

// HasRole reports whether the user holds the given role, regardless of scope.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// HasRoleFor reports whether the user holds the given role scoped to objectID.
func (u *User) HasRoleFor(role Role, objectID uint) bool {
	for _, r := range u.Roles {
		if r.Role == role && r.ObjectID == objectID {
			return true
		}
	}
	return false
}

// MayActOn reports whether the user may act on the user resource identified by
// userID: holders of the admin role may act on anyone, everyone else only on
// themselves.
func (u *User) MayActOn(userID uint) bool {
	return u.ID == userID || u.HasRole(RoleAdmin)
}
