package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"resumebot/resume/model"
)

const (
	healthCacheWindow  = 60 * time.Second
	healthProbeTimeout = 2 * time.Second
)

// RemoteStrategy delegates rendering to a headless Chrome instance reachable
// over the network (DevTools protocol). A short health probe gates every use
// and its result is cached for healthCacheWindow so the probe does not run on
// every call.
type RemoteStrategy struct {
	serviceURL string
	httpClient *http.Client
	log        *zap.Logger

	mu          sync.Mutex
	lastProbe   time.Time
	lastHealthy bool
}

// NewRemoteStrategy constructs the remote renderer for a service URL such as
// "http://renderer:9222". An empty URL yields a strategy that is always
// unavailable.
func NewRemoteStrategy(serviceURL string, log *zap.Logger) *RemoteStrategy {
	return &RemoteStrategy{
		serviceURL: strings.TrimRight(strings.TrimSpace(serviceURL), "/"),
		httpClient: &http.Client{Timeout: healthProbeTimeout},
		log:        log,
	}
}

func (s *RemoteStrategy) Name() string { return "remote" }

// Render converts the document's markup representation to PDF via the remote
// browser. Unreachable or unhealthy services fail fast with ErrUnavailable.
func (s *RemoteStrategy) Render(ctx context.Context, doc model.ResumeDocument) (Artifact, error) {
	if s.serviceURL == "" {
		return Artifact{}, ErrUnavailable
	}
	if !s.healthy(ctx) {
		return Artifact{}, ErrUnavailable
	}

	wsURL, err := s.debuggerURL(ctx)
	if err != nil {
		return Artifact{}, fmt.Errorf("resolve debugger url: %w", err)
	}

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, wsURL)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	html := documentHTML(doc)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm in inches.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return Artifact{}, fmt.Errorf("remote render: %w", err)
	}
	return newArtifact(pdfBuf)
}

// healthy probes GET /json/version on the remote browser, caching the result.
func (s *RemoteStrategy) healthy(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.lastProbe) < healthCacheWindow {
		return s.lastHealthy
	}

	s.lastProbe = time.Now()
	s.lastHealthy = s.probe(ctx)
	if !s.lastHealthy {
		s.log.Debug("remote renderer unhealthy", zap.String("url", s.serviceURL))
	}
	return s.lastHealthy
}

func (s *RemoteStrategy) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, s.serviceURL+"/json/version", nil)
	if err != nil {
		return false
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// debuggerURL derives the websocket endpoint from the configured service URL.
func (s *RemoteStrategy) debuggerURL(ctx context.Context) (string, error) {
	parsed, err := url.Parse(s.serviceURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if parsed.Scheme == "https" {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s", scheme, parsed.Host), nil
}

var _ Strategy = (*RemoteStrategy)(nil)
