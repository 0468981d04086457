package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ImageLoader resolves a single image reference. An error marks the image as
// broken in the exported view.
type ImageLoader interface {
	Load(ctx context.Context, ref string) error
}

// HTTPImageLoader fetches image refs over HTTP and discards the bytes; the
// renderer fetches them again itself, this only proves they resolve.
type HTTPImageLoader struct {
	httpClient *http.Client
}

// NewHTTPImageLoader builds the production image loader.
func NewHTTPImageLoader(timeout time.Duration) *HTTPImageLoader {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPImageLoader{httpClient: &http.Client{Timeout: timeout}}
}

func (l *HTTPImageLoader) Load(ctx context.Context, ref string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}
	_, err = io.Copy(io.Discard, io.LimitReader(resp.Body, 16<<20))
	return err
}

// resolveImages loads every distinct ref in parallel and waits up to the
// bound for the known count of loads to finish. Refs that fail or are still
// in flight at the deadline are reported as broken; the export proceeds with
// whatever loaded.
func resolveImages(ctx context.Context, loader ImageLoader, refs []string, wait time.Duration) map[string]ImageState {
	states := make(map[string]ImageState, len(refs))
	distinct := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, seen := states[ref]; seen {
			continue
		}
		states[ref] = ImageStateBroken
		distinct = append(distinct, ref)
	}
	if len(distinct) == 0 || loader == nil {
		return states
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ref := range distinct {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			if err := loader.Load(ctx, ref); err != nil {
				return
			}
			mu.Lock()
			states[ref] = ImageStateLoaded
			mu.Unlock()
		}(ref)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// deadline hit: leave the stragglers marked broken
	}

	mu.Lock()
	defer mu.Unlock()
	snapshot := make(map[string]ImageState, len(states))
	for ref, state := range states {
		snapshot[ref] = state
	}
	return snapshot
}
