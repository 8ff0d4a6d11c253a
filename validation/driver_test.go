package validation

import (
	"context"
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/xbrlgl/glvalidate/assertx"
	"github.com/xbrlgl/glvalidate/fetcher"
	"github.com/xbrlgl/glvalidate/jsonschemax"
)

func newTestDriver(opts ...Option) *Driver {
	f := fetcher.NewFetcher(fetcher.WithBaseDir("testdata"))
	r := jsonschemax.NewXBRLGLResolver(f, jsonschemax.Layout{
		MetaSchema:      "schemas/draft2020-12.json",
		Vocabularies:    "schemas/meta",
		BasicComponents: "uncefact/UNECE-BasicComponents.json",
		Codelists:       "uncefact/codelists",
	})
	return NewDriver(f, r, opts...)
}

func TestDriver(t *testing.T) {
	ctx := context.Background()
	d := newTestDriver()

	t.Run("case=valid instance", func(t *testing.T) {
		for _, instance := range []string{"samples/valid.json", "samples/valid.yaml"} {
			res, err := d.Run(ctx, "schemas/gl-cor.json", instance)
			require.NoError(t, err, instance)
			assert.True(t, res.Valid, instance)
			assert.Empty(t, res.Errors, instance)
		}
	})

	t.Run("case=missing required property", func(t *testing.T) {
		res, err := d.Run(ctx, "schemas/gl-cor.json", "samples/missing-required.json")
		require.NoError(t, err)
		require.False(t, res.Valid)
		require.Len(t, res.Errors, 1)

		record := res.Errors[0]
		assert.Equal(t, "/documentInfo", record.InstanceLocation)
		assert.True(t, strings.HasPrefix(record.SchemaLocation, "file://"), record.SchemaLocation)
		assert.True(t, strings.HasSuffix(record.SchemaLocation, "gl-cor.json#/properties/documentInfo/required"), record.SchemaLocation)
		assert.Contains(t, record.Message, "documentType")
		assert.Contains(t, record.Value, "creationDate")
	})

	t.Run("case=codelist values are enforced through nested references", func(t *testing.T) {
		res, err := d.Run(ctx, "schemas/gl-cor.json", "samples/bad-currency.json")
		require.NoError(t, err)
		require.False(t, res.Valid)
		require.Len(t, res.Errors, 1)

		record := res.Errors[0]
		assert.Equal(t, "/entryHeader/0/amount/currencyCode", record.InstanceLocation)
		assert.True(t, strings.HasSuffix(record.SchemaLocation, "codelists/ISO_ISO3AlphaCurrencyCode.json#/enum"), record.SchemaLocation)
		assert.Equal(t, `"XYZ"`, record.Value)

		assertx.EqualAsJSONFile(t, "testdata/results/bad-currency.json", res, []string{"errors.0.schemaLocation", "errors.0.message"})
	})

	t.Run("case=format assertions can be disabled", func(t *testing.T) {
		res, err := d.Run(ctx, "schemas/gl-cor.json", "samples/bad-date.json")
		require.NoError(t, err)
		require.False(t, res.Valid)
		assert.Equal(t, "/documentInfo/creationDate", res.Errors[0].InstanceLocation)

		res, err = newTestDriver(WithFormatAssertion(false)).Run(ctx, "schemas/gl-cor.json", "samples/bad-date.json")
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("case=unknown schema URI aborts compilation", func(t *testing.T) {
		_, err := d.Run(ctx, "schemas/gl-unknown-ref.json", "samples/valid.json")
		require.Error(t, err)

		var unknown *jsonschemax.UnknownSchemaURIError
		require.True(t, errors.As(err, &unknown), "%+v", err)
		assert.True(t, strings.HasSuffix(unknown.URI, "testdata/schemas/gl-bus.json"), unknown.URI)
		assert.Contains(t, err.Error(), "Unknown schema URI: "+unknown.URI)
	})

	t.Run("case=unreadable and malformed inputs", func(t *testing.T) {
		_, err := d.Run(ctx, "schemas/does-not-exist.json", "samples/valid.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))

		_, err = d.Run(ctx, "schemas/gl-cor.json", "samples/broken.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "samples/broken.json")
	})

	t.Run("case=inline documents", func(t *testing.T) {
		encode := func(s string) string {
			return "base64://" + base64.StdEncoding.EncodeToString([]byte(s))
		}

		res, err := d.Run(ctx, encode(`{"type":"object","required":["ledger"]}`), encode(`{}`))
		require.NoError(t, err)
		require.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "", res.Errors[0].InstanceLocation)
		assert.Contains(t, res.Errors[0].Message, "ledger")
		assert.Equal(t, "{}", res.Errors[0].Value)
	})

	t.Run("case=cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := d.Run(ctx, "schemas/gl-cor.json", "samples/valid.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("case=results are stable across runs", func(t *testing.T) {
		first, err := d.Run(ctx, "schemas/gl-cor.json", "samples/bad-currency.json")
		require.NoError(t, err)
		second, err := newTestDriver(WithLanguage(language.English)).Run(ctx, "schemas/gl-cor.json", "samples/bad-currency.json")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestParseLanguage(t *testing.T) {
	tag, err := ParseLanguage("ja-JP")
	require.NoError(t, err)
	assert.Equal(t, "ja-JP", tag.String())

	_, err = ParseLanguage("not a language")
	require.Error(t, err)
}
