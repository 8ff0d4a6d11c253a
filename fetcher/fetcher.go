package fetcher

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/xbrlgl/glvalidate/httpx"
)

// Fetcher is able to load file contents from plain paths and from file, base64,
// http, and https locations. Remote locations are refused unless enabled.
type Fetcher struct {
	hc          *retryablehttp.Client
	base        string
	allowRemote bool
}

type opts struct {
	hc          *retryablehttp.Client
	base        string
	allowRemote bool
}

var (
	ErrUnknownScheme   = stderrors.New("unknown scheme")
	ErrRemoteForbidden = stderrors.New("remote locations are disabled")
)

// WithClient sets the http.Client the fetcher uses.
func WithClient(hc *retryablehttp.Client) func(*opts) {
	return func(o *opts) {
		o.hc = hc
	}
}

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) func(*opts) {
	return func(o *opts) {
		o.base = dir
	}
}

// WithRemote allows fetching http and https locations.
func WithRemote(allow bool) func(*opts) {
	return func(o *opts) {
		o.allowRemote = allow
	}
}

func newOpts() *opts {
	return &opts{
		hc: httpx.NewResilientClient(),
	}
}

// NewFetcher creates a new fetcher instance.
func NewFetcher(opts ...func(*opts)) *Fetcher {
	o := newOpts()
	for _, f := range opts {
		f(o)
	}
	return &Fetcher{hc: o.hc, base: o.base, allowRemote: o.allowRemote}
}

// Fetch fetches the file contents from the source.
func (f *Fetcher) Fetch(source string) (*bytes.Buffer, error) {
	return f.FetchContext(context.Background(), source)
}

// FetchContext fetches the file contents from the source and allows to pass a
// context that is used for HTTP requests.
func (f *Fetcher) FetchContext(ctx context.Context, source string) (*bytes.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		if !f.allowRemote {
			return nil, errors.Wrapf(ErrRemoteForbidden, "unable to fetch from source: %s", source)
		}
		return f.fetchRemote(ctx, source)
	case strings.HasPrefix(source, "file://"):
		return f.fetchFile(strings.Replace(source, "file://", "", 1))
	case strings.HasPrefix(source, "base64://"):
		src, err := base64.StdEncoding.DecodeString(strings.Replace(source, "base64://", "", 1))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to decode source: %s", source)
		}
		return bytes.NewBuffer(src), nil
	case strings.Contains(source, "://"):
		return nil, errors.Wrapf(ErrUnknownScheme, "unable to fetch from source: %s", source)
	default:
		return f.fetchFile(f.Path(source))
	}
}

// Path returns the on-disk path for a plain source, resolved against the base directory.
func (f *Fetcher) Path(source string) string {
	if filepath.IsAbs(source) || f.base == "" {
		return filepath.Clean(source)
	}
	return filepath.Join(f.base, source)
}

func (f *Fetcher) fetchRemote(ctx context.Context, source string) (*bytes.Buffer, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch from source: %s", source)
	}
	res, err := f.hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch from source: %s", source)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("expected http response status code 200 but got %d when fetching: %s", res.StatusCode, source)
	}

	return f.decode(res.Body)
}

func (f *Fetcher) fetchFile(source string) (*bytes.Buffer, error) {
	fp, err := os.Open(source) // #nosec:G304
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch from source: %s", source)
	}
	defer func() {
		_ = fp.Close()
	}()

	return f.decode(fp)
}

func (f *Fetcher) decode(r io.Reader) (*bytes.Buffer, error) {
	var b bytes.Buffer
	if _, err := io.Copy(&b, r); err != nil {
		return nil, errors.WithStack(err)
	}
	return &b, nil
}
