package jsonschemax

import (
	"context"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// URLLoader plugs a Resolver into the validation engine.
//
// The engine's loader interface carries no context, so the context of the
// compilation is captured when the loader is created.
type URLLoader struct {
	ctx context.Context
	r   Resolver
}

var _ jsonschema.URLLoader = (*URLLoader)(nil)

func NewURLLoader(ctx context.Context, r Resolver) *URLLoader {
	return &URLLoader{ctx: ctx, r: r}
}

// Load implements jsonschema.URLLoader
func (l *URLLoader) Load(url string) (any, error) {
	return l.r.Resolve(l.ctx, url)
}
