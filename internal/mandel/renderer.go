package mandel

import "context"

// Renderer computes the escape-time image for a view.
type Renderer interface {
	// Render fills a new pixel buffer for view.
	Render(ctx context.Context, view View) (*Pixels, error)

	// Name identifies the backend in logs.
	Name() string
}
