// Package router mirrors the app's navigation table and the auth guard
// applied before every navigation.
package router

type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
}

// Routes is the full navigation table. Public routes live under "/",
// protected ones under "/dashboard".
var Routes = []Route{
	{Name: "deals", Path: "/"},
	{Name: "front_deal", Path: "/:id"},
	{Name: "login", Path: "/login"},
	{Name: "register", Path: "/register"},
	{Name: "password_reset", Path: "/password_reset"},
	{Name: "password-reset-confirm", Path: "/password-reset-confirm/:uidb64/:token"},

	{Name: "dashboard", Path: "/dashboard", RequiresAuth: true},
	{Name: "deal", Path: "/dashboard/:id", RequiresAuth: true},
	{Name: "cart", Path: "/dashboard/cart", RequiresAuth: true},
	{Name: "requests", Path: "/dashboard/requests", RequiresAuth: true},
	{Name: "buddy", Path: "/dashboard/buddy", RequiresAuth: true},
	{Name: "chat", Path: "/dashboard/buddy/:id", RequiresAuth: true},
	{Name: "account", Path: "/dashboard/account", RequiresAuth: true},
	{Name: "profile", Path: "/dashboard/profile", RequiresAuth: true},
	{Name: "change_password", Path: "/dashboard/change_password", RequiresAuth: true},
}

func Find(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Guard resolves where a navigation actually lands. Unauthenticated access
// to a protected route is redirected to the public landing page;
// authenticated access to a public route is redirected to the dashboard.
func Guard(to Route, isAuthenticated bool) Route {
	if to.RequiresAuth && !isAuthenticated {
		landing, _ := Find("deals")
		return landing
	}
	if !to.RequiresAuth && isAuthenticated {
		dashboard, _ := Find("dashboard")
		return dashboard
	}
	return to
}
