package validation

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/xbrlgl/glvalidate/jsonschemax"
	"github.com/xbrlgl/glvalidate/jsonx"
)

// Fetcher reads user supplied locations. *fetcher.Fetcher implements it.
type Fetcher interface {
	jsonschemax.Fetcher
	Path(source string) string
}

// Driver compiles a root schema with a resolver plugged into the engine and
// validates one instance against it.
type Driver struct {
	f Fetcher
	r jsonschemax.Resolver
	o *options
}

func NewDriver(f Fetcher, r jsonschemax.Resolver, opts ...Option) *Driver {
	return &Driver{f: f, r: r, o: newOptions(opts)}
}

// Run reads the root schema and the instance, compiles the schema and
// validates the instance. Every reference the engine cannot find on its own is
// resolved through the driver's resolver.
//
// A non-conforming instance is not an error: it yields a Result with Valid set
// to false. Errors are returned for I/O, parse and compilation failures.
func (d *Driver) Run(ctx context.Context, schemaLocation, instanceLocation string) (*Result, error) {
	l := d.o.l.WithField("schema", schemaLocation).WithField("instance", instanceLocation)

	_, schema, err := read(ctx, d.f, schemaLocation)
	if err != nil {
		return nil, err
	}

	raw, instance, err := read(ctx, d.f, instanceLocation)
	if err != nil {
		return nil, err
	}

	root, err := d.rootURL(schemaLocation)
	if err != nil {
		return nil, err
	}

	loader := &recordingLoader{l: jsonschemax.NewURLLoader(ctx, &loggingResolver{r: d.r, l: l})}
	c := d.o.compiler(loader)
	if err := c.AddResource(root, schema); err != nil {
		return nil, errors.Wrapf(err, "unable to add schema %s", schemaLocation)
	}

	compiled, err := c.Compile(root)
	if err != nil {
		return nil, loader.compileError(err, schemaLocation)
	}
	l.WithField("url", root).Debug("Schema compiled.")

	res, err := NewResult(compiled.Validate(instance), d.o.printer(), raw)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to validate %s", instanceLocation)
	}

	l.WithField("valid", res.Valid).WithField("errors", len(res.Errors)).Debug("Validation finished.")
	return res, nil
}

// rootURL is the URL the root schema is registered under. Relative references
// in the schema resolve against it.
func (d *Driver) rootURL(location string) (string, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"), strings.HasPrefix(location, "file://"):
		return location, nil
	case strings.HasPrefix(location, "base64://"):
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.WithStack(err)
		}
		return fileURL(filepath.Join(wd, "schema.json")), nil
	default:
		abs, err := filepath.Abs(d.f.Path(location))
		if err != nil {
			return "", errors.Wrapf(err, "unable to resolve schema path %s", location)
		}
		return fileURL(abs), nil
	}
}

func fileURL(p string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(p)}).String()
}

// read fetches a document and returns its JSON encoding next to the decoded value.
func read(ctx context.Context, f jsonschemax.Fetcher, location string) ([]byte, any, error) {
	buf, err := f.FetchContext(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	raw, err := jsonx.ToJSON(location, buf.Bytes())
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to parse %s", location)
	}

	doc, err := jsonx.DecodeBytes(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to parse %s", location)
	}
	return raw, doc, nil
}

// recordingLoader remembers the first error its loader returned. The engine
// wraps loader errors into its own types, which hides them from errors.As.
type recordingLoader struct {
	sync.Mutex
	l   jsonschema.URLLoader
	err error
}

func (r *recordingLoader) Load(url string) (any, error) {
	doc, err := r.l.Load(url)
	if err != nil {
		r.Lock()
		if r.err == nil {
			r.err = err
		}
		r.Unlock()
	}
	return doc, err
}

// compileError returns the loader's error, if any, in place of err and resets it.
func (r *recordingLoader) compileError(err error, location string) error {
	r.Lock()
	defer r.Unlock()

	cause := err
	if r.err != nil {
		cause, r.err = r.err, nil
	}
	return errors.Wrapf(cause, "unable to compile schema %s", location)
}
