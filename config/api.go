package config

// PublicRoute is a method and route pattern served without authentication.
type PublicRoute struct {
	Method string
	Path   string
}

// GetAuthSkipperRoutes returns the routes that skip authentication.
func GetAuthSkipperRoutes() []PublicRoute {
	// Storefront reads and the read-only catalog GraphQL are public
	return []PublicRoute{
		{Method: "GET", Path: "/api/products"},
		{Method: "GET", Path: "/api/products/:id"},
		{Method: "GET", Path: "/api/products/:id/variants"},
		{Method: "GET", Path: "/api/bundles"},
		{Method: "GET", Path: "/api/bundles/:id"},
		{Method: "*", Path: "/graphql"},
		{Method: "*", Path: "/health"},
	}
}
