package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// BaseImagePath is the conventional path of the base map artwork.
const BaseImagePath = "map.png"

// ErrAssetLoad wraps every failure to fetch or decode a raster asset.
var ErrAssetLoad = errors.New("asset load failed")

// IconPath returns the conventional marker path of a category.
func IconPath(category string) string {
	return "markers/" + category + ".png"
}

// Loader loads one raster asset by path.
type Loader interface {
	Load(ctx context.Context, path string) (image.Image, error)
}

// Open returns an HTTPLoader when root is an http(s) URL and a DirLoader over
// the directory root otherwise.
func Open(root string, logger *zap.SugaredLogger) (Loader, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return NewHTTPLoader(root, nil, logger)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "opening asset root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("asset root %s is not a directory", root)
	}
	return NewDirLoader(os.DirFS(root)), nil
}

// DirLoader loads assets from a file tree, usually os.DirFS of the public directory.
type DirLoader struct {
	fsys fs.FS
}

func NewDirLoader(fsys fs.FS) *DirLoader {
	return &DirLoader{fsys: fsys}
}

func (l *DirLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(path, err)
	}
	f, err := l.fsys.Open(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, loadErr(path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, loadErr(path, err)
	}
	return img, nil
}

// HTTPLoader loads assets relative to a base URL.
type HTTPLoader struct {
	base   *url.URL
	client *http.Client
	logger *zap.SugaredLogger
}

func NewHTTPLoader(baseURL string, client *http.Client, logger *zap.SugaredLogger) (*HTTPLoader, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing asset base url %q", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HTTPLoader{base: u, client: client, logger: logger}, nil
}

// URL returns the absolute URL of an asset path.
func (l *HTTPLoader) URL(path string) string {
	return l.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")}).String()
}

func (l *HTTPLoader) Load(ctx context.Context, path string) (image.Image, error) {
	u := l.URL(path)
	l.logger.Debugw("requesting asset", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, loadErr(path, err)
	}
	req.Header.Set("Accept", "image/png,image/webp,image/*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, loadErr(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, loadErr(path, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, loadErr(path, err)
	}
	return img, nil
}

func loadErr(path string, cause error) error {
	return errors.Wrapf(&pathError{path: path, cause: cause}, "%s", path)
}

// pathError keeps both ErrAssetLoad and the underlying cause reachable with errors.Is.
type pathError struct {
	path  string
	cause error
}

func (e *pathError) Error() string {
	return ErrAssetLoad.Error() + ": " + e.cause.Error()
}

func (e *pathError) Is(target error) bool { return target == ErrAssetLoad }

func (e *pathError) Unwrap() error { return e.cause }
