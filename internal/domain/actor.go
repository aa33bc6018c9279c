package domain

// Role of the caller
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64
	Role   Role
	ShopID string // set for admins only
}

// IsAdminOf reports whether the actor administers the given shop
func (a Actor) IsAdminOf(shopID string) bool {
	return a.Role == RoleAdmin && a.ShopID != "" && a.ShopID == shopID
}
