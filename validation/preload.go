package validation

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/xbrlgl/glvalidate/jsonschemax"
)

// SchemaNotRegisteredError is returned when a schema is requested by an
// identifier nothing was registered under.
type SchemaNotRegisteredError struct {
	ID string
}

func (e *SchemaNotRegisteredError) Error() string {
	return fmt.Sprintf("no schema has been registered for %s", e.ID)
}

// Registry compiles schemas from documents registered under fixed
// identifiers. References to anything else are refused. A Registry is not
// safe for concurrent use.
type Registry struct {
	c      *jsonschema.Compiler
	loader *recordingLoader
	ids    map[string]struct{}
}

func NewRegistry(opts ...Option) *Registry {
	loader := &recordingLoader{l: refusingLoader{}}
	return &Registry{
		c:      newOptions(opts).compiler(loader),
		loader: loader,
		ids:    map[string]struct{}{},
	}
}

func (r *Registry) Register(id string, doc any) error {
	if err := r.c.AddResource(id, doc); err != nil {
		return errors.Wrapf(err, "unable to register schema %s", id)
	}
	r.ids[id] = struct{}{}
	return nil
}

// IDs returns the registered identifiers, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Schema compiles the schema registered under id.
func (r *Registry) Schema(id string) (*jsonschema.Schema, error) {
	if _, ok := r.ids[id]; !ok {
		return nil, errors.WithStack(&SchemaNotRegisteredError{ID: id})
	}

	s, err := r.c.Compile(id)
	if err != nil {
		return nil, r.loader.compileError(err, id)
	}
	return s, nil
}

type refusingLoader struct{}

func (refusingLoader) Load(url string) (any, error) {
	return nil, &SchemaNotRegisteredError{ID: url}
}

// Document is a schema file registered under ID.
type Document struct {
	ID       string
	Location string
}

// Preloader validates instances against schemas that are all registered up front.
type Preloader struct {
	f    jsonschemax.Fetcher
	opts []Option
	o    *options
}

func NewPreloader(f jsonschemax.Fetcher, opts ...Option) *Preloader {
	return &Preloader{f: f, opts: opts, o: newOptions(opts)}
}

// Run registers docs, reads the instance and validates it against the schema
// registered under target.
func (p *Preloader) Run(ctx context.Context, docs []Document, target, instanceLocation string) (*Result, error) {
	l := p.o.l.WithField("target", target).WithField("instance", instanceLocation)

	reg := NewRegistry(p.opts...)
	for _, d := range docs {
		_, doc, err := read(ctx, p.f, d.Location)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(d.ID, doc); err != nil {
			return nil, err
		}
		l.WithField("id", d.ID).WithField("location", d.Location).Debug("Schema registered.")
	}

	raw, instance, err := read(ctx, p.f, instanceLocation)
	if err != nil {
		return nil, err
	}

	s, err := reg.Schema(target)
	if err != nil {
		return nil, err
	}

	res, err := NewResult(s.Validate(instance), p.o.printer(), raw)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to validate %s", instanceLocation)
	}

	l.WithField("valid", res.Valid).WithField("errors", len(res.Errors)).Debug("Validation finished.")
	return res, nil
}
