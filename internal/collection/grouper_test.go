package collection

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-postman/internal/config"
	"route-postman/internal/model"
	"route-postman/internal/sample"
)

type stubModels map[string][]string

func (m stubModels) ResolveModelFields(controller string) ([]string, bool) {
	fields, ok := m[controller]
	return fields, ok
}

func route(method, uri, controller, action string, middleware ...string) model.RouteDescriptor {
	return model.RouteDescriptor{
		URI:        uri,
		Methods:    []string{method},
		Controller: controller,
		Action:     action,
		Middleware: middleware,
	}
}

func newGrouper(cfg *config.Config, models sample.ModelResolver) *Grouper {
	policy := NewAuthPolicy(cfg.Auth, cfg.Routes.Prefix)
	headers := NewHeaderBuilder(cfg.Headers, cfg.Auth, policy)
	var opts []sample.Option
	if models != nil {
		opts = append(opts, sample.WithModelResolver(models))
	}
	bodies := sample.New(sample.Settings{
		DefaultBodyType: cfg.RequestBody.DefaultBodyType,
		DefaultValues:   cfg.DefaultValueMap(),
	}, opts...)
	return NewGrouper(cfg, policy, headers, bodies)
}

func withStrategy(strategy string, depth int) *config.Config {
	cfg := config.Default()
	cfg.Collection.GroupingStrategy = strategy
	cfg.Collection.MaxNestingDepth = depth
	return cfg
}

func folderNames(items []model.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsFolder() {
			names = append(names, it.Name())
		}
	}
	return names
}

func findFolder(t *testing.T, items []model.Item, name string) *model.Folder {
	t.Helper()
	var found *model.Folder
	for _, it := range items {
		if it.Folder != nil && it.Folder.Name == name {
			require.Nil(t, found, "duplicate folder %q", name)
			found = it.Folder
		}
	}
	require.NotNil(t, found, "folder %q not found", name)
	return found
}

func countRequests(items []model.Item) int {
	c := model.Collection{Item: items}
	return c.CountRequests()
}

func sampleRoutes() []model.RouteDescriptor {
	return []model.RouteDescriptor{
		route("GET", "api/users", `App\Http\Controllers\UserController`, "index", "api"),
		route("POST", "api/users", `App\Http\Controllers\UserController`, "store", "api", "auth:sanctum"),
		route("GET", "api/users/{id}/posts", `App\Http\Controllers\PostController`, "userPosts", "api"),
		route("GET", "api/users/{id}/posts/{post}/comments", `App\Http\Controllers\CommentController`, "index"),
		route("POST", "api/auth/login", `App\Http\Controllers\AuthController`, "login", "api"),
		route("GET", "api/health", "", "", "api"),                                   // unsupported
		{URI: "api/ping", Controller: `App\Http\Controllers\PingController`, Action: "ping"}, // no method
		{URI: "api/status", Methods: []string{"GET"}, Closure: true},
	}
}

func TestRequestCountExcludesUnsupported(t *testing.T) {
	routes := sampleRoutes()
	for _, strategy := range []string{config.StrategyPrefix, config.StrategyNestedPath, config.StrategyController} {
		t.Run(strategy, func(t *testing.T) {
			items := newGrouper(withStrategy(strategy, 10), nil).Group(routes)
			assert.Equal(t, len(routes)-2, countRequests(items))
		})
	}
}

func TestGroupByPrefix(t *testing.T) {
	items := newGrouper(withStrategy(config.StrategyPrefix, 10), nil).Group(sampleRoutes())

	assert.Equal(t, []string{"users", "auth", "status"}, folderNames(items))

	users := findFolder(t, items, "users")
	require.Len(t, users.Items, 4)
	for _, it := range users.Items {
		assert.False(t, it.IsFolder(), "prefix grouping never nests")
	}
	assert.Equal(t, []string{"Index", "Store", "UserPosts", "Index"}, []string{
		users.Items[0].Name(), users.Items[1].Name(), users.Items[2].Name(), users.Items[3].Name(),
	})
}

func TestGroupByPrefixOtherFolder(t *testing.T) {
	routes := []model.RouteDescriptor{
		route("GET", "api", `App\Http\Controllers\HomeController`, "index"),
		route("GET", "api/", `App\Http\Controllers\HomeController`, "show"),
	}
	items := newGrouper(withStrategy(config.StrategyPrefix, 10), nil).Group(routes)

	assert.Equal(t, []string{OtherFolder}, folderNames(items))
	assert.Len(t, findFolder(t, items, OtherFolder).Items, 2)
}

func TestUnknownStrategyFallsBackToPrefix(t *testing.T) {
	g := newGrouper(withStrategy("by_verb", 10), nil)
	assert.Equal(t, config.StrategyPrefix, g.Strategy())
}

func TestGroupByNestedPath(t *testing.T) {
	items := newGrouper(withStrategy(config.StrategyNestedPath, 10), nil).Group(sampleRoutes())

	users := findFolder(t, items, "users")
	// index and store sit directly in users, next to the posts folder
	posts := findFolder(t, users.Items, "posts")
	comments := findFolder(t, posts.Items, "comments")

	assert.Equal(t, 1, countRequests(comments.Items))
	assert.Equal(t, 2, countRequests(posts.Items))
	assert.Equal(t, 4, countRequests(users.Items))

	auth := findFolder(t, items, "auth")
	login := findFolder(t, auth.Items, "login")
	assert.Equal(t, "Login", login.Items[0].Name())
}

func TestGroupByNestedPathDepthBound(t *testing.T) {
	routes := []model.RouteDescriptor{
		route("GET", "api/a/b/c/d", "C", "deep"),
		route("GET", "api/a/b/x", "C", "other"),
		route("GET", "api/a", "C", "top"),
	}
	items := newGrouper(withStrategy(config.StrategyNestedPath, 2), nil).Group(routes)

	require.Equal(t, []string{"a"}, folderNames(items))
	a := findFolder(t, items, "a")
	b := findFolder(t, a.Items, "b")

	// Segments beyond depth 2 are dropped; both requests attach at a/b
	require.Len(t, b.Items, 2)
	assert.Equal(t, "Deep", b.Items[0].Name())
	assert.Equal(t, "Other", b.Items[1].Name())
	assert.Empty(t, folderNames(b.Items))

	assert.Equal(t, "Top", a.Items[1].Name())
}

func TestGroupByNestedPathSharedAncestors(t *testing.T) {
	routes := []model.RouteDescriptor{
		route("GET", "api/shop/orders/{id}", "C", "show"),
		route("GET", "api/shop/orders/{id}/items", "C", "items"),
		route("GET", "api/shop/carts", "C", "carts"),
		route("GET", "api/shop/orders", "C", "list"),
	}
	items := newGrouper(withStrategy(config.StrategyNestedPath, 3), nil).Group(routes)

	shop := findFolder(t, items, "shop")
	assert.Equal(t, []string{"orders", "carts"}, folderNames(shop.Items))

	orders := findFolder(t, shop.Items, "orders")
	findFolder(t, orders.Items, "items")
	assert.Equal(t, 3, countRequests(orders.Items))
}

func TestGroupByNestedPathRootAttach(t *testing.T) {
	routes := []model.RouteDescriptor{
		route("GET", "api/{locale}", "C", "home"),
	}
	items := newGrouper(withStrategy(config.StrategyNestedPath, 3), nil).Group(routes)

	require.Len(t, items, 1)
	assert.False(t, items[0].IsFolder())
	assert.Equal(t, "Home", items[0].Name())
}

func TestNonPositiveDepthDefaults(t *testing.T) {
	g := newGrouper(withStrategy(config.StrategyNestedPath, 0), nil)
	assert.Equal(t, defaultNestingDepth, g.maxDepth)
}

func TestGroupByController(t *testing.T) {
	items := newGrouper(withStrategy(config.StrategyController, 10), nil).Group(sampleRoutes())

	assert.Equal(t, []string{"User", "Post", "Comment", "Auth", UndefinedFolder}, folderNames(items))
	assert.Len(t, findFolder(t, items, "User").Items, 2)
	assert.Len(t, findFolder(t, items, UndefinedFolder).Items, 1)
}

func TestControllerFolderName(t *testing.T) {
	assert.Equal(t, "User", ControllerFolderName(`App\Http\Controllers\UserController`))
	assert.Equal(t, "Report", ControllerFolderName("Admin/ReportController"))
	assert.Equal(t, "Billing", ControllerFolderName("Billing"))
	assert.Equal(t, UndefinedFolder, ControllerFolderName(""))
	assert.Equal(t, UndefinedFolder, ControllerFolderName("Controller"))
}

func TestBuildRequestAuth(t *testing.T) {
	g := newGrouper(config.Default(), nil)

	t.Run("api middleware only", func(t *testing.T) {
		r := route("GET", "api/users", "C", "index", "api")
		assert.Equal(t, model.AuthTypeNone, g.BuildRequest(&r).Request.Auth.Type)
	})

	t.Run("sanctum", func(t *testing.T) {
		r := route("GET", "api/users", "C", "index", "api", "auth:sanctum")
		item := g.BuildRequest(&r)
		require.NotNil(t, item.Request.Auth)
		assert.Equal(t, model.AuthTypeBearer, item.Request.Auth.Type)
		assert.Empty(t, item.Event)
	})

	t.Run("login", func(t *testing.T) {
		r := route("POST", "api/auth/login", "C", "login", "api", "auth:sanctum")
		item := g.BuildRequest(&r)
		assert.Equal(t, model.AuthTypeNone, item.Request.Auth.Type)
		require.Len(t, item.Event, 1)
		assert.Equal(t, "test", item.Event[0].Listen)
		script := strings.Join(item.Event[0].Script.Exec, "\n")
		assert.Contains(t, script, "response.data.token")
		assert.Contains(t, script, `pm.environment.set("token"`)
	})
}

func TestBuildRequestFields(t *testing.T) {
	g := newGrouper(config.Default(), nil)

	r := route("GET", "api/users/{id}", "C", "show_user-profile")
	item := g.BuildRequest(&r)

	assert.Equal(t, "ShowUserProfile", item.Name)
	assert.Equal(t, "GET", item.Request.Method)
	assert.Equal(t, "{{base_url}}/api/users/{id}", item.Request.URL.Raw)
	assert.Equal(t, []string{"api", "users", "{id}"}, item.Request.URL.Path)
	assert.Equal(t, []model.Header{
		{Key: "Accept", Value: "application/json", Type: "text"},
		{Key: "Content-Type", Value: "application/json", Type: "text"},
	}, item.Request.Header)
	assert.Nil(t, item.Request.Body)
}

func TestBuildRequestBody(t *testing.T) {
	models := stubModels{"UserController": {"name", "email"}}
	g := newGrouper(config.Default(), models)

	t.Run("validator", func(t *testing.T) {
		r := route("POST", "api/users", "UserController", "store")
		r.Validator = &model.Validator{Name: "StoreUserRequest", Rules: []model.FieldRule{
			{Field: "email", Rules: []string{"required", "email"}},
		}}
		body := g.BuildRequest(&r).Request.Body
		require.NotNil(t, body)
		assert.JSONEq(t, `{"email": "user@user.com"}`, body.Raw)
	})

	t.Run("validator with unreadable rules", func(t *testing.T) {
		r := route("GET", "api/users", "UserController", "index")
		r.Validator = &model.Validator{Name: "Broken", Rules: []model.FieldRule{}}
		body := g.BuildRequest(&r).Request.Body
		require.NotNil(t, body)
		assert.Equal(t, "{}", body.Raw)
	})

	t.Run("model fallback", func(t *testing.T) {
		r := route("PUT", "api/users/{id}", "UserController", "update")
		body := g.BuildRequest(&r).Request.Body
		require.NotNil(t, body)
		assert.JSONEq(t, `{"name": "", "email": ""}`, body.Raw)
	})

	t.Run("unresolved model", func(t *testing.T) {
		r := route("PATCH", "api/posts/{id}", "PostController", "update")
		body := g.BuildRequest(&r).Request.Body
		require.NotNil(t, body)
		assert.Equal(t, "{}", body.Raw)
	})

	t.Run("read-only method", func(t *testing.T) {
		r := route("DELETE", "api/users/{id}", "UserController", "destroy")
		assert.Nil(t, g.BuildRequest(&r).Request.Body)
	})

	t.Run("closure without validator", func(t *testing.T) {
		r := model.RouteDescriptor{URI: "api/hooks", Methods: []string{"POST"}, Closure: true}
		assert.Nil(t, g.BuildRequest(&r).Request.Body)
	})
}

func TestBuildRequestFormData(t *testing.T) {
	cfg := config.Default()
	cfg.RequestBody.DefaultBodyType = config.BodyFormData
	g := newGrouper(cfg, nil)

	r := route("POST", "api/users", "UserController", "store")
	r.Validator = &model.Validator{Rules: []model.FieldRule{
		{Field: "profile.name", Rules: []string{"required"}},
	}}

	body := g.BuildRequest(&r).Request.Body
	require.NotNil(t, body)
	assert.Equal(t, model.BodyModeFormData, body.Mode)
	assert.Equal(t, "profile[name]", body.FormData[0].Key)
}

func TestGroupedTreeSerializes(t *testing.T) {
	items := newGrouper(withStrategy(config.StrategyNestedPath, 10), nil).Group(sampleRoutes())

	b, err := json.Marshal(items)
	require.NoError(t, err)

	var decoded []model.Item
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, folderNames(items), folderNames(decoded))
	assert.Equal(t, countRequests(items), countRequests(decoded))
}
