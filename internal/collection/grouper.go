package collection

import (
	"strings"

	"route-postman/internal/config"
	"route-postman/internal/logger"
	"route-postman/internal/model"
	"route-postman/internal/sample"
	"route-postman/internal/utils"
)

// Folder names for routes that have nothing to group by
const (
	OtherFolder     = "other"
	UndefinedFolder = "Undefined"
)

const defaultNestingDepth = 2

// Captures the issued token from a login response for later requests
var loginScript = []string{
	"let response = pm.response.json();",
	"let token = (response.data && response.data.token) || response.token;",
	"",
	"if (token) {",
	`    pm.environment.set("token", token);`,
	"}",
}

// Grouper arranges request nodes into a folder tree
type Grouper struct {
	strategy string
	prefix   string
	maxDepth int

	policy  *AuthPolicy
	headers *HeaderBuilder
	bodies  *sample.Synthesizer
}

// NewGrouper creates a Grouper. Unknown strategies fall back to prefix grouping.
func NewGrouper(cfg *config.Config, policy *AuthPolicy, headers *HeaderBuilder, bodies *sample.Synthesizer) *Grouper {
	strategy := cfg.Collection.GroupingStrategy
	switch strategy {
	case config.StrategyPrefix, config.StrategyNestedPath, config.StrategyController:
	default:
		if strategy != "" {
			logger.Warn("Unknown grouping strategy %q, using %q", strategy, config.StrategyPrefix)
		}
		strategy = config.StrategyPrefix
	}

	maxDepth := cfg.Collection.MaxNestingDepth
	if maxDepth <= 0 {
		maxDepth = defaultNestingDepth
	}

	return &Grouper{
		strategy: strategy,
		prefix:   strings.Trim(cfg.Routes.Prefix, "/"),
		maxDepth: maxDepth,
		policy:   policy,
		headers:  headers,
		bodies:   bodies,
	}
}

// Strategy returns the grouping strategy in use
func (g *Grouper) Strategy() string {
	return g.strategy
}

// Group builds the folder tree. Unsupported routes are logged and left out.
func (g *Grouper) Group(routes []model.RouteDescriptor) []model.Item {
	supported := make([]*model.RouteDescriptor, 0, len(routes))
	for i := range routes {
		route := &routes[i]
		if reason := route.Unsupported(); reason != "" {
			logger.LogSkippedRoute(route.URI, reason)
			continue
		}
		supported = append(supported, route)
	}

	switch g.strategy {
	case config.StrategyNestedPath:
		return g.groupByNestedPath(supported)
	case config.StrategyController:
		return g.groupByController(supported)
	default:
		return g.groupByPrefix(supported)
	}
}

// folderSet keeps top-level folders in first-seen order
type folderSet struct {
	order  []*model.Folder
	byName map[string]*model.Folder
}

func newFolderSet() *folderSet {
	return &folderSet{byName: make(map[string]*model.Folder)}
}

func (s *folderSet) get(name string) *model.Folder {
	if f, ok := s.byName[name]; ok {
		return f
	}
	f := model.NewFolder(name)
	s.byName[name] = f
	s.order = append(s.order, f)
	return f
}

func (s *folderSet) items() []model.Item {
	items := make([]model.Item, 0, len(s.order))
	for _, f := range s.order {
		items = append(items, model.FolderItem(f))
	}
	return items
}

func (g *Grouper) groupByPrefix(routes []*model.RouteDescriptor) []model.Item {
	folders := newFolderSet()
	for _, route := range routes {
		segments := strings.Split(g.stripPrefix(route.URI), "/")
		name := segments[0]
		if name == "" {
			name = OtherFolder
		}
		f := folders.get(name)
		f.Items = append(f.Items, model.RequestNode(g.BuildRequest(route)))
	}
	return folders.items()
}

func (g *Grouper) groupByController(routes []*model.RouteDescriptor) []model.Item {
	folders := newFolderSet()
	for _, route := range routes {
		f := folders.get(ControllerFolderName(route.Controller))
		f.Items = append(f.Items, model.RequestNode(g.BuildRequest(route)))
	}
	return folders.items()
}

func (g *Grouper) groupByNestedPath(routes []*model.RouteDescriptor) []model.Item {
	root := model.NewFolder("")
	for _, route := range routes {
		segments := pathSegments(g.stripPrefix(route.URI))
		if len(segments) > g.maxDepth {
			segments = segments[:g.maxDepth]
		}

		current := root
		for _, segment := range segments {
			current = childFolder(current, segment)
		}
		current.Items = append(current.Items, model.RequestNode(g.BuildRequest(route)))
	}
	return root.Items
}

// childFolder returns the sub-folder of parent named name, creating it when missing
func childFolder(parent *model.Folder, name string) *model.Folder {
	for _, it := range parent.Items {
		if it.Folder != nil && it.Folder.Name == name {
			return it.Folder
		}
	}
	f := model.NewFolder(name)
	parent.Items = append(parent.Items, model.FolderItem(f))
	return f
}

// pathSegments returns the non-empty, non-parameter segments of a path
func pathSegments(path string) []string {
	segments := make([]string, 0)
	for _, s := range strings.Split(path, "/") {
		if s == "" || (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

func (g *Grouper) stripPrefix(uri string) string {
	uri = strings.Trim(uri, "/")
	if g.prefix == "" {
		return uri
	}
	if uri == g.prefix {
		return ""
	}
	return strings.TrimPrefix(uri, g.prefix+"/")
}

// ControllerFolderName returns the handler base name without its "Controller" suffix
func ControllerFolderName(controller string) string {
	if strings.TrimSpace(controller) == "" {
		return UndefinedFolder
	}
	name := strings.TrimSuffix(utils.BaseName(controller), "Controller")
	if name == "" {
		return UndefinedFolder
	}
	return name
}

// BuildRequest builds the request node of one route
func (g *Grouper) BuildRequest(route *model.RouteDescriptor) *model.RequestItem {
	method := route.Method()
	item := &model.RequestItem{
		Name: RequestName(route.Action),
		Request: model.Request{
			Method: method,
			Header: g.headers.Build(route),
			URL:    BuildURL(route.URI),
			Body:   g.buildBody(route, method),
		},
	}

	switch {
	case g.policy.IsRouteExcluded(route.URI):
		item.Request.Auth = model.NoAuth()
		item.Event = []model.Event{{
			Listen: "test",
			Script: model.Script{
				Exec: append([]string(nil), loginScript...),
				Type: "text/javascript",
			},
		}}
	case g.policy.ShouldAttachAuth(route):
		item.Request.Auth = g.policy.RequestAuth()
		if item.Request.Auth == nil {
			item.Request.Auth = model.NoAuth()
		}
	default:
		item.Request.Auth = model.NoAuth()
	}

	return item
}

func (g *Grouper) buildBody(route *model.RouteDescriptor, method string) *model.Body {
	var (
		body *model.Body
		err  error
	)

	switch {
	case route.HasValidator():
		body, err = g.bodies.FromRules(route.Validator.Rules, method)
	case route.IsMutating() && route.Controller != "":
		body, err = g.bodies.FromModel(route.Controller, method)
	default:
		return nil
	}

	if err != nil {
		logger.Warn("Failed to build sample body for %s: %v", route, err)
		return nil
	}
	return body
}
