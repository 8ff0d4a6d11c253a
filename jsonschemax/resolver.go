package jsonschemax

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Resolver turns a schema URI requested during compilation into a decoded
// JSON document. Implementations must be safe for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, uri string) (any, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(ctx context.Context, uri string) (any, error)

func (f ResolverFunc) Resolve(ctx context.Context, uri string) (any, error) {
	return f(ctx, uri)
}

// UnknownSchemaURIError is returned when no route matches a URI.
type UnknownSchemaURIError struct {
	URI string
}

func (e *UnknownSchemaURIError) Error() string {
	return fmt.Sprintf("Unknown schema URI: %s", e.URI)
}

// Route is one entry of the routing table. Match decides whether the route is
// responsible for a URI and Load produces the document.
type Route struct {
	Name  string
	Match func(uri string) bool
	Load  func(ctx context.Context, uri string) (any, error)
}

// RouteResolver evaluates its routes in order. The first matching route wins;
// when none matches, resolution fails with *UnknownSchemaURIError.
type RouteResolver struct {
	routes []Route
}

var _ Resolver = (*RouteResolver)(nil)

// NewRouteResolver returns a resolver for the given routes, in priority order.
func NewRouteResolver(routes ...Route) *RouteResolver {
	return &RouteResolver{routes: append([]Route(nil), routes...)}
}

func (r *RouteResolver) Resolve(ctx context.Context, uri string) (any, error) {
	for _, route := range r.routes {
		if !route.Match(uri) {
			continue
		}

		doc, err := route.Load(ctx, uri)
		if err != nil {
			return nil, errors.Wrapf(err, "route %s failed to load %s", route.Name, uri)
		}
		return doc, nil
	}

	return nil, errors.WithStack(&UnknownSchemaURIError{URI: uri})
}

// Routes returns the route names in evaluation order.
func (r *RouteResolver) Routes() []string {
	names := make([]string, len(r.routes))
	for i, route := range r.routes {
		names[i] = route.Name
	}
	return names
}
