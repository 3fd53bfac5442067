package rbac

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Default dashboard policy. Viewers are read-only.
var RolePermissions = map[string][]string{
	RoleViewer: {
		"results:list",
		"results:view",
		"analytics:view",
	},
	RoleAdmin: {
		"*", // everything
	},
}
