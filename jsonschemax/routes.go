package jsonschemax

import (
	"bytes"
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/xbrlgl/glvalidate/jsonx"
)

const (
	// MetaSchemaURI identifies the draft 2020-12 meta-schema.
	MetaSchemaURI = "http://json-schema.org/draft/2020-12/schema"
	// VocabularyURIPrefix prefixes every draft 2020-12 vocabulary meta-schema.
	VocabularyURIPrefix = "http://json-schema.org/draft/2020-12/meta/"

	// BasicComponentsFile is the UN/CEFACT basic components library file name.
	BasicComponentsFile = "UNECE-BasicComponents.json"
	// CodelistSegment marks URIs that point into the UN/CEFACT codelist directory.
	CodelistSegment = "codelists/"
)

// Vocabularies lists the draft 2020-12 vocabularies served from disk.
var Vocabularies = []string{
	"core",
	"applicator",
	"unevaluated",
	"validation",
	"meta-data",
	"format-annotation",
	"content",
}

// Fetcher reads raw bytes for a location. *fetcher.Fetcher implements it.
type Fetcher interface {
	FetchContext(ctx context.Context, source string) (*bytes.Buffer, error)
}

// Layout tells the XBRL-GL resolver where its documents live.
type Layout struct {
	// MetaSchema is the draft 2020-12 meta-schema file.
	MetaSchema string
	// Vocabularies is the directory holding <vocabulary>.json files.
	Vocabularies string
	// BasicComponents is the UNECE-BasicComponents.json file.
	BasicComponents string
	// Codelists is the directory holding codelist files.
	Codelists string
}

// NewXBRLGLResolver returns the resolver used when compiling XBRL-GL schemas:
//
//  1. the draft 2020-12 meta-schema, with $id removed
//  2. the seven draft 2020-12 vocabularies, with $id removed
//  3. any URI containing UNECE-BasicComponents.json, as-is
//  4. any URI containing codelists/, by file name, as-is
//
// Anything else fails with *UnknownSchemaURIError.
func NewXBRLGLResolver(f Fetcher, l Layout) *RouteResolver {
	routes := []Route{
		{
			Name:  "meta-schema",
			Match: exact(MetaSchemaURI),
			Load:  loadFile(f, constant(l.MetaSchema), true),
		},
	}

	for _, name := range Vocabularies {
		routes = append(routes, Route{
			Name:  "vocabulary/" + name,
			Match: exact(VocabularyURIPrefix + name),
			Load:  loadFile(f, constant(filepath.Join(l.Vocabularies, name+".json")), true),
		})
	}

	routes = append(routes,
		Route{
			Name:  "basic-components",
			Match: contains(BasicComponentsFile),
			Load:  loadFile(f, constant(l.BasicComponents), false),
		},
		Route{
			Name:  "codelist",
			Match: contains(CodelistSegment),
			Load: loadFile(f, func(uri string) (string, error) {
				name, err := CodelistFileName(uri)
				if err != nil {
					return "", err
				}
				return filepath.Join(l.Codelists, name), nil
			}, false),
		},
	)

	return NewRouteResolver(routes...)
}

// CodelistFileName returns the final path component of a codelist URI.
func CodelistFileName(uri string) (string, error) {
	p := uri
	if i := strings.IndexAny(p, "#?"); i >= 0 {
		p = p[:i]
	}

	name := path.Base(p)
	if strings.HasSuffix(p, "/") || name == "." || name == ".." {
		return "", errors.WithStack(&UnknownSchemaURIError{URI: uri})
	}
	return name, nil
}

// StripID removes the top-level $id of a schema document, if any.
func StripID(doc any) any {
	if m, ok := doc.(map[string]any); ok {
		delete(m, "$id")
	}
	return doc
}

func exact(want string) func(string) bool {
	return func(uri string) bool {
		return uri == want
	}
}

func contains(needle string) func(string) bool {
	return func(uri string) bool {
		return strings.Contains(uri, needle)
	}
}

func constant(p string) func(string) (string, error) {
	return func(string) (string, error) {
		return p, nil
	}
}

func loadFile(f Fetcher, locate func(uri string) (string, error), stripID bool) func(context.Context, string) (any, error) {
	return func(ctx context.Context, uri string) (any, error) {
		p, err := locate(uri)
		if err != nil {
			return nil, err
		}

		raw, err := f.FetchContext(ctx, p)
		if err != nil {
			return nil, err
		}

		doc, err := jsonx.DecodeBytes(raw.Bytes())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse %s", p)
		}

		if stripID {
			doc = StripID(doc)
		}
		return doc, nil
	}
}
