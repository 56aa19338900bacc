package router

import "testing"

func TestGuard(t *testing.T) {
	cases := []struct {
		name          string
		to            string
		authenticated bool
		want          string
	}{
		{"anonymous reaches landing page", "deals", false, "deals"},
		{"anonymous reaches login", "login", false, "login"},
		{"anonymous blocked from dashboard", "dashboard", false, "deals"},
		{"anonymous blocked from chat", "chat", false, "deals"},
		{"authenticated reaches dashboard", "dashboard", true, "dashboard"},
		{"authenticated reaches cart", "cart", true, "cart"},
		{"authenticated redirected off login", "login", true, "dashboard"},
		{"authenticated redirected off landing", "deals", true, "dashboard"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			to, ok := Find(tc.to)
			if !ok {
				t.Fatalf("route %q not in table", tc.to)
			}
			got := Guard(to, tc.authenticated)
			if got.Name != tc.want {
				t.Fatalf("Guard(%q, auth=%v) = %q, want %q", tc.to, tc.authenticated, got.Name, tc.want)
			}
		})
	}
}

func TestFindUnknownRoute(t *testing.T) {
	if _, ok := Find("nope"); ok {
		t.Fatal("Find returned a route for an unknown name")
	}
}

func TestEveryDashboardRouteRequiresAuth(t *testing.T) {
	for _, r := range Routes {
		protected := len(r.Path) >= len("/dashboard") && r.Path[:len("/dashboard")] == "/dashboard"
		if protected != r.RequiresAuth {
			t.Errorf("route %q: RequiresAuth = %v for path %q", r.Name, r.RequiresAuth, r.Path)
		}
	}
}
