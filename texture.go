package scratchcard

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	// Decoders for cover textures.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedTexture is returned by the default loader for sources it
// cannot resolve.
var ErrUnsupportedTexture = errors.New("scratchcard: unsupported texture source")

// maxTextureBytes bounds how much of a texture response is read.
const maxTextureBytes = 32 << 20

// TextureLoader resolves a cover texture source into an image.
// Load is called on its own goroutine and must honour ctx.
type TextureLoader interface {
	Load(ctx context.Context, source string) (image.Image, error)
}

// TextureLoaderFunc adapts a function to TextureLoader.
type TextureLoaderFunc func(ctx context.Context, source string) (image.Image, error)

// Load implements TextureLoader.
func (f TextureLoaderFunc) Load(ctx context.Context, source string) (image.Image, error) {
	return f(ctx, source)
}

// DefaultTextureLoader reads textures from local paths, file:// URLs and
// http(s) URLs. PNG, JPEG, GIF, BMP, TIFF and WebP are decoded.
type DefaultTextureLoader struct {
	// Client is used for http(s) sources. Nil uses a client with a 10s timeout.
	Client *http.Client
}

var defaultTextureClient = &http.Client{Timeout: 10 * time.Second}

// Load implements TextureLoader.
func (l DefaultTextureLoader) Load(ctx context.Context, source string) (image.Image, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedTexture)
	}
	u, err := url.Parse(source)
	if err != nil {
		return loadTextureFile(source)
	}
	switch u.Scheme {
	case "http", "https":
		return l.fetch(ctx, source)
	case "file":
		return loadTextureFile(u.Path)
	case "":
		return loadTextureFile(source)
	default:
		// Single-letter schemes are Windows drive letters.
		if len(u.Scheme) == 1 {
			return loadTextureFile(source)
		}
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedTexture, u.Scheme)
	}
}

func (l DefaultTextureLoader) fetch(ctx context.Context, source string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = defaultTextureClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("texture request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture fetch: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture fetch: %s: status %d", source, resp.StatusCode)
	}
	return decodeTexture(io.LimitReader(resp.Body, maxTextureBytes))
}

func loadTextureFile(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the card config
	if err != nil {
		return nil, fmt.Errorf("texture open: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return decodeTexture(f)
}

func decodeTexture(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture decode: %w", err)
	}
	Logger().Debug("scratchcard: texture decoded", "format", format, "bounds", img.Bounds())
	return img, nil
}

// textureResult is what a background load hands back to the card.
type textureResult struct {
	source string
	img    image.Image
	err    error
}

// textureLoad is one in-flight load. A reconfigure abandons it by
// cancelling and dropping the channel, so stale results are never applied.
type textureLoad struct {
	done   chan textureResult
	cancel context.CancelFunc
}

func startTextureLoad(loader TextureLoader, source string) *textureLoad {
	ctx, cancel := context.WithCancel(context.Background())
	tl := &textureLoad{
		done:   make(chan textureResult, 1),
		cancel: cancel,
	}
	go func() {
		img, err := loader.Load(ctx, source)
		tl.done <- textureResult{source: source, img: img, err: err}
	}()
	return tl
}
