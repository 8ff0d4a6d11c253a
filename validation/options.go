package validation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xbrlgl/glvalidate/jsonschemax"
	"github.com/xbrlgl/glvalidate/logrusx"
)

type (
	options struct {
		assertFormat bool
		lang         language.Tag
		l            *logrusx.Logger
	}
	Option func(*options)
)

// WithFormatAssertion toggles validation of the "format" keyword. It is on by default.
func WithFormatAssertion(enabled bool) Option {
	return func(o *options) {
		o.assertFormat = enabled
	}
}

// WithLanguage sets the language error messages are rendered in.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

func WithLogger(l *logrusx.Logger) Option {
	return func(o *options) {
		o.l = l
	}
}

// ParseLanguage parses a BCP 47 language tag such as "en" or "ja-JP".
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, errors.Wrapf(err, "invalid language tag %q", s)
	}
	return tag, nil
}

func newOptions(opts []Option) *options {
	o := &options{
		assertFormat: true,
		lang:         language.English,
		l:            logrusx.NewDiscarding(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) compiler(loader jsonschema.URLLoader) *jsonschema.Compiler {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if o.assertFormat {
		c.AssertFormat()
	}
	c.UseLoader(loader)
	return c
}

func (o *options) printer() *message.Printer {
	return message.NewPrinter(o.lang)
}

type loggingResolver struct {
	r jsonschemax.Resolver
	l *logrusx.Logger
}

func (r *loggingResolver) Resolve(ctx context.Context, uri string) (any, error) {
	l := r.l.WithField("uri", uri)
	l.Debug("Resolving schema URI.")

	doc, err := r.r.Resolve(ctx, uri)
	if err != nil {
		l.WithError(err).Debug("Unable to resolve schema URI.")
		return nil, err
	}
	return doc, nil
}
