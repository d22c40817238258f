package gen

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"stageai/api/internal/config"
)

// Backend is a loaded image model. Render is not guaranteed reentrant;
// the pipeline serializes all calls to it.
type Backend interface {
	Render(ctx context.Context, prompt string) ([]byte, error)
}

// BackendLoader performs the one-time expensive initialization.
type BackendLoader func() (Backend, error)

// LoaderFor picks the backend named by the configuration.
func LoaderFor(cfg config.ImageConfig) BackendLoader {
	switch cfg.Backend {
	case "diffusion":
		return func() (Backend, error) { return newDiffusionBackend(cfg) }
	default:
		return func() (Backend, error) { return newBuiltinBackend(cfg), nil }
	}
}

// ImagePipeline owns the single heavyweight image backend. The backend
// is loaded lazily on first use; concurrent first callers all block on
// the same load and observe the same instance or the same sticky error.
// Synthesis runs under a mutex, so concurrent callers queue rather than
// race the shared model.
type ImagePipeline struct {
	load BackendLoader
	log  zerolog.Logger

	once    sync.Once
	backend Backend
	initErr error

	mu sync.Mutex
}

func NewImagePipeline(load BackendLoader, log zerolog.Logger) *ImagePipeline {
	return &ImagePipeline{load: load, log: log}
}

// Synthesize renders prompt to PNG bytes. Empty prompts are rejected
// before the backend is touched, so bad input never pays the cold start.
func (p *ImagePipeline) Synthesize(ctx context.Context, prompt string) ([]byte, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	p.once.Do(func() {
		start := time.Now()
		p.log.Info().Msg("loading image backend")
		p.backend, p.initErr = p.load()
		if p.initErr != nil {
			p.log.Error().Err(p.initErr).Msg("image backend load failed")
			return
		}
		p.log.Info().Dur("elapsed", time.Since(start)).Msg("image backend ready")
	})
	if p.initErr != nil {
		return nil, fmt.Errorf("%w: load backend: %v", ErrGeneration, p.initErr)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := p.backend.Render(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return data, nil
}
