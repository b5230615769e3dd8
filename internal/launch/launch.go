// Package launch resolves the start URL for the attribution shell.
//
// The sequence runs once per start: a previously saved URL wins outright.
// Otherwise consent is requested, the attribution source races a fixed timer
// for campaign data, and a bootstrap document is fetched. A bootstrap body
// containing the marker becomes the start URL, with the identifiers and
// campaign appended. Anything else resolves to no URL.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/herdbook/herdbook/internal/kvstore"
)

// SavedURLKey is the kv key holding the first resolved URL.
const SavedURLKey = "launch/saved-url"

// ZeroAdvertisingID is sent when tracking consent is not granted.
const ZeroAdvertisingID = "00000000-0000-0000-0000-000000000000"

// maxBodyBytes caps how much of the bootstrap response is read.
const maxBodyBytes = 1 << 20

// Defaults applied by New to zero Config fields.
const (
	DefaultConsentDelay       = time.Second
	DefaultAttributionTimeout = 7 * time.Second
	DefaultRequestTimeout     = 10 * time.Second
	DefaultFetchTimeout       = 20 * time.Second
)

// Source says where a Result's URL came from.
type Source string

const (
	SourceSaved   Source = "saved"
	SourceFetched Source = "fetched"
	SourceNone    Source = "none"
)

// Attribution says how the campaign race ended.
type Attribution string

const (
	AttributionCampaign Attribution = "campaign"
	AttributionOrganic  Attribution = "organic"
	AttributionTimeout  Attribution = "timeout"
	AttributionError    Attribution = "error"
)

// Consent is the outcome of a tracking consent request.
type Consent struct {
	Authorized    bool
	AdvertisingID string
}

// ConsentProvider asks the user for tracking consent.
type ConsentProvider interface {
	RequestConsent(ctx context.Context) (Consent, error)
}

// AttributionSource supplies install identity and campaign data.
type AttributionSource interface {
	// InstallID returns the attribution install id. It may be empty.
	InstallID(ctx context.Context) (string, error)

	// Campaign blocks until campaign data is delivered or ctx ends.
	// ok is false for organic installs.
	Campaign(ctx context.Context) (campaign string, ok bool, err error)
}

// Config controls the sequence. BootstrapURL and Marker are required.
// A negative ConsentDelay skips the pause before the consent request.
type Config struct {
	BootstrapURL       string
	Marker             string
	ConsentDelay       time.Duration
	AttributionTimeout time.Duration
	RequestTimeout     time.Duration
	FetchTimeout       time.Duration
}

// Result is the resolved start URL. URL is empty when Source is SourceNone.
type Result struct {
	URL         string      `json:"url"`
	Source      Source      `json:"source"`
	Attribution Attribution `json:"attribution,omitempty"`
	Reason      string      `json:"reason,omitempty"`
}

// Launcher runs the start sequence.
type Launcher struct {
	cfg         Config
	store       kvstore.Store
	consent     ConsentProvider
	attribution AttributionSource
	client      *http.Client
	log         *slog.Logger
}

// New builds a Launcher. A nil log uses slog.Default.
func New(cfg Config, store kvstore.Store, consent ConsentProvider, attribution AttributionSource, log *slog.Logger) (*Launcher, error) {
	if cfg.BootstrapURL == "" {
		return nil, errors.New("launch.New: bootstrap url is required")
	}
	if cfg.Marker == "" {
		return nil, errors.New("launch.New: marker is required")
	}
	if cfg.ConsentDelay == 0 {
		cfg.ConsentDelay = DefaultConsentDelay
	}
	if cfg.AttributionTimeout <= 0 {
		cfg.AttributionTimeout = DefaultAttributionTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Launcher{
		cfg:         cfg,
		store:       store,
		consent:     consent,
		attribution: attribution,
		client:      &http.Client{Timeout: cfg.RequestTimeout},
		log:         log,
	}, nil
}

// Run resolves the start URL. Failures along the way end in a SourceNone
// result; only a failure to persist a fetched URL is returned as an error,
// together with the fetched result.
func (l *Launcher) Run(ctx context.Context) (Result, error) {
	saved, err := l.store.Get(ctx, SavedURLKey)
	switch {
	case err == nil && len(saved) > 0:
		return Result{URL: string(saved), Source: SourceSaved}, nil
	case err != nil && !errors.Is(err, kvstore.ErrNotFound):
		l.log.WarnContext(ctx, "launch: reading saved url", "error", err)
	}

	if l.cfg.ConsentDelay > 0 {
		select {
		case <-time.After(l.cfg.ConsentDelay):
		case <-ctx.Done():
			return Result{Source: SourceNone, Reason: ctx.Err().Error()}, nil
		}
	}

	adID := l.advertisingID(ctx)
	installID, err := l.attribution.InstallID(ctx)
	if err != nil {
		l.log.WarnContext(ctx, "launch: install id unavailable", "error", err)
		installID = ""
	}

	campaign, how := awaitCampaign(ctx, l.attribution, l.cfg.AttributionTimeout)
	l.log.InfoContext(ctx, "launch: attribution settled", "attribution", how)

	body, reason := l.fetch(ctx)
	if reason != "" {
		l.log.InfoContext(ctx, "launch: no start url", "reason", reason)
		return Result{Source: SourceNone, Attribution: how, Reason: reason}, nil
	}

	final := BuildURL(body, adID, installID, campaign)
	if _, err := url.Parse(final); err != nil {
		return Result{Source: SourceNone, Attribution: how, Reason: "invalid url: " + err.Error()}, nil
	}

	res := Result{URL: final, Source: SourceFetched, Attribution: how}
	if err := l.store.Put(ctx, SavedURLKey, []byte(final)); err != nil {
		return res, fmt.Errorf("launch.Launcher.Run: save url: %w", err)
	}
	return res, nil
}

func (l *Launcher) advertisingID(ctx context.Context) string {
	c, err := l.consent.RequestConsent(ctx)
	if err != nil {
		l.log.WarnContext(ctx, "launch: consent request failed", "error", err)
		return ZeroAdvertisingID
	}
	if !c.Authorized || c.AdvertisingID == "" {
		return ZeroAdvertisingID
	}
	return c.AdvertisingID
}

// awaitCampaign races src.Campaign against timeout. The first to finish
// wins; a late delivery is dropped.
func awaitCampaign(ctx context.Context, src AttributionSource, timeout time.Duration) (string, Attribution) {
	type delivery struct {
		campaign string
		ok       bool
		err      error
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan delivery, 1)
	go func() {
		c, ok, err := src.Campaign(raceCtx)
		done <- delivery{campaign: c, ok: ok, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case d := <-done:
		switch {
		case d.err != nil:
			return "", AttributionError
		case !d.ok:
			return "", AttributionOrganic
		default:
			return d.campaign, AttributionCampaign
		}
	case <-timer.C:
		return "", AttributionTimeout
	case <-ctx.Done():
		return "", AttributionTimeout
	}
}

// fetch GETs the bootstrap document. A non-empty reason means no URL.
func (l *Launcher) fetch(ctx context.Context) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.BootstrapURL, nil)
	if err != nil {
		return "", "bad bootstrap url: " + err.Error()
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", "fetch failed: " + err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Sprintf("bootstrap returned status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "read failed: " + err.Error()
	}
	text := strings.TrimSpace(string(raw))
	if !strings.Contains(text, l.cfg.Marker) {
		return "", "marker missing"
	}
	return text, ""
}

// BuildURL appends the identifiers and the campaign sub-parameters to base.
func BuildURL(base, adID, installID, campaign string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("?idfa=")
	b.WriteString(url.QueryEscape(adID))
	b.WriteString("&gaid=")
	b.WriteString(url.QueryEscape(installID))
	b.WriteString(CampaignQuery(campaign))
	return b.String()
}

// CampaignQuery turns "a_b_c" into "&sub1=a&sub2=b&sub3=c". Empty parts
// are skipped, so "a__b" numbers only a and b. An empty campaign yields "".
func CampaignQuery(campaign string) string {
	parts := strings.FieldsFunc(campaign, func(r rune) bool { return r == '_' })
	var b strings.Builder
	for i, part := range parts {
		fmt.Fprintf(&b, "&sub%d=%s", i+1, url.QueryEscape(part))
	}
	return b.String()
}
