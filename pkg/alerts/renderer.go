package alerts

import (
	"context"
	"io"
)

// Renderer turns a single alert into markup.
// Implementations decide on escaping; HTMLContent is expected to be written verbatim.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, alert Alert) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, w io.Writer, alert Alert) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, w io.Writer, alert Alert) error {
	return f(ctx, w, alert)
}
