// Package loader fetches and decodes sound assets into a bank, substituting
// synthesized tones when an asset cannot be loaded.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"golang.org/x/sync/errgroup"

	"github.com/arlobryn/soundbank/bank"
	"github.com/arlobryn/soundbank/tone"
)

const (
	// maxConcurrentLoads caps parallel fetch/decode work in a batch.
	maxConcurrentLoads = 4

	// fetchTimeout bounds a single asset fetch when no client is supplied.
	fetchTimeout = 10 * time.Second

	// resampleQuality is the beep resampler quality used when an asset's
	// rate differs from the bank's.
	resampleQuality = 4
)

// Sentinel errors
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrBadStatus         = errors.New("unexpected response status")
)

// Asset names a sound and where its bytes live. The locator is an http(s)
// URL or a local file path.
type Asset struct {
	Name    string
	Locator string
}

// Loader populates a bank from asset locators. Every requested name ends up
// bound to something playable: a decoded asset, or a category-pitched
// fallback tone when fetch or decode fails.
type Loader struct {
	bank   *bank.Bank
	client *http.Client
}

// New creates a loader writing into b. A nil client gets a default with a
// fetch timeout.
func New(b *bank.Bank, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Loader{
		bank:   b,
		client: client,
	}
}

// Load fetches, decodes and registers one sound. Failure is non-fatal: it is
// logged and a synthesized fallback tone is registered under the same name.
// Returns true only when the real asset was decoded.
func (l *Loader) Load(ctx context.Context, name, locator string) bool {
	data, err := l.fetch(ctx, locator)
	if err != nil {
		log.Printf("sound %q: fetch %s failed, using fallback tone: %v", name, locator, err)
		l.fallback(name)
		return false
	}

	buf, err := decode(locator, data, l.bank.SampleRate())
	if err != nil {
		log.Printf("sound %q: decode %s failed, using fallback tone: %v", name, locator, err)
		l.fallback(name)
		return false
	}

	l.bank.Set(name, buf)
	return true
}

// LoadAll loads a batch of assets concurrently. All loads settle before it
// returns; individual failures fall back to synthesized tones and never
// abort the batch. Returns the number of assets actually decoded.
func (l *Loader) LoadAll(ctx context.Context, assets []Asset) int {
	var decoded atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for _, a := range assets {
		g.Go(func() error {
			if l.Load(ctx, a.Name, a.Locator) {
				decoded.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	return int(decoded.Load())
}

// fetch retrieves raw asset bytes from an http(s) URL or a local path.
func (l *Loader) fetch(ctx context.Context, locator string) ([]byte, error) {
	if !strings.Contains(locator, "://") {
		return os.ReadFile(locator)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// fallback binds name to a synthesized tone pitched by its name category.
func (l *Loader) fallback(name string) {
	rate := l.bank.SampleRate()
	samples := tone.Fallback(name, int(rate))
	l.bank.Set(name, tone.Buffer(samples, rate))
}

// decode turns raw asset bytes into a buffer at the bank's sample rate.
// The container format is chosen by the locator's extension.
func decode(locator string, data []byte, rate beep.SampleRate) (*beep.Buffer, error) {
	rc := io.NopCloser(bytes.NewReader(data))

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext(locator) {
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(rc)
	case ".flac":
		streamer, format, err = flac.Decode(rc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext(locator))
	}
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  rate,
		NumChannels: 2,
		Precision:   2,
	})
	buf.Append(s)
	return buf, nil
}

// ext extracts a lowercased file extension from a URL or path locator.
func ext(locator string) string {
	p := locator
	if u, err := url.Parse(locator); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}
