package jsonschemax

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/xbrlgl/glvalidate/fetcher"
	"github.com/xbrlgl/glvalidate/jsonx"
)

var testLayout = Layout{
	MetaSchema:      "schemas/draft2020-12.json",
	Vocabularies:    "schemas/meta",
	BasicComponents: "uncefact/D23B/UNECE-BasicComponents.json",
	Codelists:       "uncefact/D23B/codelists",
}

func newTestResolver() *RouteResolver {
	return NewXBRLGLResolver(fetcher.NewFetcher(fetcher.WithBaseDir("testdata")), testLayout)
}

func readFixture(t *testing.T, name string) map[string]any {
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	doc, err := jsonx.DecodeBytes(raw)
	require.NoError(t, err)
	m, ok := doc.(map[string]any)
	require.True(t, ok)
	return m
}

func TestXBRLGLResolver(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver()

	t.Run("case=meta-schema is loaded without $id", func(t *testing.T) {
		doc, err := r.Resolve(ctx, MetaSchemaURI)
		require.NoError(t, err)

		m, ok := doc.(map[string]any)
		require.True(t, ok)
		assert.NotContains(t, m, "$id")

		expected := readFixture(t, "schemas/draft2020-12.json")
		delete(expected, "$id")
		assert.Equal(t, expected, m)
	})

	t.Run("case=vocabularies are loaded without $id", func(t *testing.T) {
		for _, name := range Vocabularies {
			t.Run("vocabulary="+name, func(t *testing.T) {
				doc, err := r.Resolve(ctx, VocabularyURIPrefix+name)
				require.NoError(t, err)

				expected := readFixture(t, filepath.Join("schemas/meta", name+".json"))
				require.Contains(t, expected, "$id")
				delete(expected, "$id")
				assert.Equal(t, expected, doc)
			})
		}
	})

	t.Run("case=meta-schema match is exact", func(t *testing.T) {
		for _, uri := range []string{
			"https://json-schema.org/draft/2020-12/schema",
			MetaSchemaURI + "#",
			VocabularyURIPrefix + "hyper-schema",
			VocabularyURIPrefix + "core/",
		} {
			_, err := r.Resolve(ctx, uri)
			var unknown *UnknownSchemaURIError
			require.True(t, errors.As(err, &unknown), "%s: %+v", uri, err)
			assert.Equal(t, uri, unknown.URI)
		}
	})

	t.Run("case=basic components are returned as-is", func(t *testing.T) {
		for _, uri := range []string{
			"https://example.com/UNECE-BasicComponents.json",
			"file:///somewhere/else/D23B/UNECE-BasicComponents.json",
			"urn:x:UNECE-BasicComponents.json#/$defs/amountType",
		} {
			doc, err := r.Resolve(ctx, uri)
			require.NoError(t, err, uri)
			assert.Equal(t, readFixture(t, "uncefact/D23B/UNECE-BasicComponents.json"), doc, uri)
			assert.Contains(t, doc, "$id")
		}
	})

	t.Run("case=codelists are found by file name", func(t *testing.T) {
		expected := readFixture(t, "uncefact/D23B/codelists/ISO_ISO3AlphaCurrencyCode.json")
		for _, uri := range []string{
			"https://example.com/codelists/ISO_ISO3AlphaCurrencyCode.json",
			"file:///a/b/c/codelists/ISO_ISO3AlphaCurrencyCode.json",
			"https://unece.org/some/deep/path/codelists/ISO_ISO3AlphaCurrencyCode.json",
		} {
			doc, err := r.Resolve(ctx, uri)
			require.NoError(t, err, uri)
			assert.Equal(t, expected, doc, uri)
		}

		doc, err := r.Resolve(ctx, "https://example.com/codelists/UNECE_DocumentNameCode.json")
		require.NoError(t, err)
		assert.Equal(t, readFixture(t, "uncefact/D23B/codelists/UNECE_DocumentNameCode.json"), doc)
	})

	t.Run("case=basic components take precedence over codelists", func(t *testing.T) {
		doc, err := r.Resolve(ctx, "https://example.com/codelists/UNECE-BasicComponents.json")
		require.NoError(t, err)
		assert.Equal(t, readFixture(t, "uncefact/D23B/UNECE-BasicComponents.json"), doc)
	})

	t.Run("case=unknown URIs fail with the exact URI", func(t *testing.T) {
		uri := "https://xbrl.org/XBRL-GL-YYYY-MM-DD/schemas/gl-bus.json"
		_, err := r.Resolve(ctx, uri)
		require.Error(t, err)

		var unknown *UnknownSchemaURIError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, uri, unknown.URI)
		assert.Equal(t, "Unknown schema URI: "+uri, err.Error())
	})

	t.Run("case=missing files are not reported as unknown URIs", func(t *testing.T) {
		_, err := r.Resolve(ctx, "https://example.com/codelists/DoesNotExist.json")
		require.Error(t, err)

		var unknown *UnknownSchemaURIError
		assert.False(t, errors.As(err, &unknown))
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), "codelist")
	})

	t.Run("case=resolution is idempotent", func(t *testing.T) {
		for _, uri := range []string{
			MetaSchemaURI,
			VocabularyURIPrefix + "core",
			"https://example.com/UNECE-BasicComponents.json",
			"https://example.com/codelists/ISO_ISO3AlphaCurrencyCode.json",
		} {
			first, err := r.Resolve(ctx, uri)
			require.NoError(t, err)

			first.(map[string]any)["$id"] = "mutated"
			first.(map[string]any)["title"] = "mutated"

			second, err := r.Resolve(ctx, uri)
			require.NoError(t, err)
			third, err := r.Resolve(ctx, uri)
			require.NoError(t, err)

			assert.Equal(t, second, third, uri)
			assert.NotEqual(t, "mutated", second.(map[string]any)["title"], uri)
		}
	})

	t.Run("case=concurrent resolution", func(t *testing.T) {
		uris := []string{MetaSchemaURI, "https://example.com/UNECE-BasicComponents.json"}
		for _, name := range Vocabularies {
			uris = append(uris, VocabularyURIPrefix+name)
		}

		results := make([]any, len(uris)*4)
		var eg errgroup.Group
		for i := range results {
			i := i
			eg.Go(func() (err error) {
				results[i], err = r.Resolve(ctx, uris[i%len(uris)])
				return err
			})
		}
		require.NoError(t, eg.Wait())

		for i := range results {
			assert.Equal(t, results[i%len(uris)], results[i])
		}
	})

	t.Run("case=cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.Resolve(ctx, MetaSchemaURI)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestRouteResolver(t *testing.T) {
	t.Run("case=routes are evaluated in order", func(t *testing.T) {
		var called []string
		route := func(name string, match bool) Route {
			return Route{
				Name:  name,
				Match: func(string) bool { called = append(called, name); return match },
				Load: func(context.Context, string) (any, error) {
					return name, nil
				},
			}
		}

		r := NewRouteResolver(route("a", false), route("b", true), route("c", true))
		doc, err := r.Resolve(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, "b", doc)
		assert.Equal(t, []string{"a", "b"}, called)
		assert.Equal(t, []string{"a", "b", "c"}, r.Routes())
	})

	t.Run("case=empty table rejects everything", func(t *testing.T) {
		_, err := NewRouteResolver().Resolve(context.Background(), "x")
		var unknown *UnknownSchemaURIError
		assert.True(t, errors.As(err, &unknown))
	})

	t.Run("case=xbrl-gl route names", func(t *testing.T) {
		assert.Equal(t, []string{
			"meta-schema",
			"vocabulary/core",
			"vocabulary/applicator",
			"vocabulary/unevaluated",
			"vocabulary/validation",
			"vocabulary/meta-data",
			"vocabulary/format-annotation",
			"vocabulary/content",
			"basic-components",
			"codelist",
		}, newTestResolver().Routes())
	})
}

func TestCodelistFileName(t *testing.T) {
	for uri, expected := range map[string]string{
		"https://example.com/codelists/A.json":         "A.json",
		"https://example.com/codelists/A.json#/$defs/x": "A.json",
		"file:///codelists/nested/B.json?v=1":           "B.json",
	} {
		actual, err := CodelistFileName(uri)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}

	for _, uri := range []string{"https://example.com/codelists/..", "codelists/"} {
		_, err := CodelistFileName(uri)
		var unknown *UnknownSchemaURIError
		assert.True(t, errors.As(err, &unknown), uri)
	}
}

func TestURLLoader(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "compile")

	l := NewURLLoader(ctx, ResolverFunc(func(ctx context.Context, uri string) (any, error) {
		return map[string]any{"uri": uri, "ctx": ctx.Value(ctxKey{})}, nil
	}))

	doc, err := l.Load("https://example.com/codelists/A.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"uri": "https://example.com/codelists/A.json", "ctx": "compile"}, doc)
}
