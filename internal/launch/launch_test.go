package launch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/herdbook/herdbook/internal/kvstore"
)

// ---- fakes ----

type mockConsent struct {
	requestConsent func(ctx context.Context) (Consent, error)
}

var _ ConsentProvider = (*mockConsent)(nil)

func (m *mockConsent) RequestConsent(ctx context.Context) (Consent, error) {
	return m.requestConsent(ctx)
}

type mockAttribution struct {
	installID func(ctx context.Context) (string, error)
	campaign  func(ctx context.Context) (string, bool, error)
}

var _ AttributionSource = (*mockAttribution)(nil)

func (m *mockAttribution) InstallID(ctx context.Context) (string, error) { return m.installID(ctx) }
func (m *mockAttribution) Campaign(ctx context.Context) (string, bool, error) {
	return m.campaign(ctx)
}

// silentAttribution never delivers a campaign; it returns only when its
// context ends.
func silentAttribution() *mockAttribution {
	return &mockAttribution{
		installID: func(context.Context) (string, error) { return "af-1", nil },
		campaign: func(ctx context.Context) (string, bool, error) {
			<-ctx.Done()
			return "", false, ctx.Err()
		},
	}
}

func bootstrapServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newLauncher(t *testing.T, bootstrap string, store kvstore.Store, consent ConsentProvider, attr AttributionSource) *Launcher {
	t.Helper()
	l, err := New(Config{
		BootstrapURL:       bootstrap,
		Marker:             "herd",
		ConsentDelay:       -1,
		AttributionTimeout: 50 * time.Millisecond,
	}, store, consent, attr, nil)
	require.NoError(t, err)
	return l
}

func authorized(id string) *mockConsent {
	return &mockConsent{requestConsent: func(context.Context) (Consent, error) {
		return Consent{Authorized: true, AdvertisingID: id}, nil
	}}
}

// ---- URL assembly ----

func TestCampaignQuery(t *testing.T) {
	assert.Equal(t, "&sub1=a&sub2=b&sub3=c", CampaignQuery("a_b_c"))
	assert.Equal(t, "&sub1=solo", CampaignQuery("solo"))
	assert.Equal(t, "", CampaignQuery(""))
}

func TestCampaignQuery_SkipsEmptyParts(t *testing.T) {
	cases := map[string]string{
		"a__b":  "&sub1=a&sub2=b",
		"_a":    "&sub1=a",
		"a_":    "&sub1=a",
		"_":     "",
		"__x__": "&sub1=x",
	}
	for in, want := range cases {
		assert.Equal(t, want, CampaignQuery(in), in)
	}
}

func TestBuildURL(t *testing.T) {
	got := BuildURL("https://example.test/herd", ZeroAdvertisingID, "af-1", "x_y")
	assert.Equal(t, "https://example.test/herd?idfa=00000000-0000-0000-0000-000000000000&gaid=af-1&sub1=x&sub2=y", got)
}

// ---- Run ----

func TestRun_SavedURLShortCircuits(t *testing.T) {
	srv, hits := bootstrapServer(t, http.StatusOK, "https://example.test/herd")
	store := kvstore.NewMemory()
	require.NoError(t, store.Put(context.Background(), SavedURLKey, []byte("https://saved.test")))
	consent := &mockConsent{requestConsent: func(context.Context) (Consent, error) {
		t.Fatal("consent must not be requested when a url is saved")
		return Consent{}, nil
	}}

	res, err := newLauncher(t, srv.URL, store, consent, silentAttribution()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{URL: "https://saved.test", Source: SourceSaved}, res)
	assert.Zero(t, hits.Load())
}

func TestRun_FetchesAndSaves(t *testing.T) {
	srv, _ := bootstrapServer(t, http.StatusOK, "  https://example.test/herd\n")
	store := kvstore.NewMemory()
	attr := &mockAttribution{
		installID: func(context.Context) (string, error) { return "af-1", nil },
		campaign:  func(context.Context) (string, bool, error) { return "spring_promo", true, nil },
	}

	res, err := newLauncher(t, srv.URL, store, authorized("AD-1"), attr).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SourceFetched, res.Source)
	assert.Equal(t, AttributionCampaign, res.Attribution)
	assert.Equal(t, "https://example.test/herd?idfa=AD-1&gaid=af-1&sub1=spring&sub2=promo", res.URL)

	saved, err := store.Get(context.Background(), SavedURLKey)
	require.NoError(t, err)
	assert.Equal(t, res.URL, string(saved))

	// the second start reuses the saved url
	again, err := newLauncher(t, srv.URL, store, authorized("AD-2"), attr).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceSaved, again.Source)
	assert.Equal(t, res.URL, again.URL)
}

func TestRun_TimerWinsWhenAttributionIsSilent(t *testing.T) {
	srv, _ := bootstrapServer(t, http.StatusOK, "https://example.test/herd")
	denied := &mockConsent{requestConsent: func(context.Context) (Consent, error) {
		return Consent{Authorized: false, AdvertisingID: "ignored"}, nil
	}}

	start := time.Now()
	res, err := newLauncher(t, srv.URL, kvstore.NewMemory(), denied, silentAttribution()).Run(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, AttributionTimeout, res.Attribution)
	assert.Equal(t, "https://example.test/herd?idfa="+ZeroAdvertisingID+"&gaid=af-1", res.URL)
}

func TestRun_NoURL(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{"marker missing", http.StatusOK, "https://example.test/other", "marker missing"},
		{"server error", http.StatusInternalServerError, "https://example.test/herd", "bootstrap returned status 500"},
		{"empty body", http.StatusNoContent, "", "marker missing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := bootstrapServer(t, tc.status, tc.body)
			store := kvstore.NewMemory()

			res, err := newLauncher(t, srv.URL, store, authorized("AD"), silentAttribution()).Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, SourceNone, res.Source)
			assert.Empty(t, res.URL)
			assert.Equal(t, tc.reason, res.Reason)
			_, err = store.Get(context.Background(), SavedURLKey)
			assert.ErrorIs(t, err, kvstore.ErrNotFound)
		})
	}
}

func TestRun_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	res, err := newLauncher(t, addr, kvstore.NewMemory(), authorized("AD"), silentAttribution()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SourceNone, res.Source)
	assert.Contains(t, res.Reason, "fetch failed")
}

func TestRun_ConsentErrorUsesZeroID(t *testing.T) {
	srv, _ := bootstrapServer(t, http.StatusOK, "https://example.test/herd")
	failing := &mockConsent{requestConsent: func(context.Context) (Consent, error) {
		return Consent{}, errors.New("prompt dismissed")
	}}

	res, err := newLauncher(t, srv.URL, kvstore.NewMemory(), failing, silentAttribution()).Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, res.URL, "idfa="+ZeroAdvertisingID)
}

func TestNew_RequiresBootstrapAndMarker(t *testing.T) {
	_, err := New(Config{Marker: "m"}, kvstore.NewMemory(), authorized("a"), silentAttribution(), nil)
	assert.Error(t, err)
	_, err = New(Config{BootstrapURL: "http://x"}, kvstore.NewMemory(), authorized("a"), silentAttribution(), nil)
	assert.Error(t, err)
}

// ---- race ----

func TestAwaitCampaign_AttributionWins(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fast := &mockAttribution{campaign: func(context.Context) (string, bool, error) { return "a_b", true, nil }}
	campaign, how := awaitCampaign(context.Background(), fast, time.Second)

	assert.Equal(t, "a_b", campaign)
	assert.Equal(t, AttributionCampaign, how)
}

func TestAwaitCampaign_TimerWins(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	campaign, how := awaitCampaign(context.Background(), silentAttribution(), 20*time.Millisecond)

	assert.Empty(t, campaign)
	assert.Equal(t, AttributionTimeout, how)
}

func TestAwaitCampaign_LateDeliveryIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	release := make(chan struct{})
	late := &mockAttribution{campaign: func(context.Context) (string, bool, error) {
		<-release
		return "late_one", true, nil
	}}

	campaign, how := awaitCampaign(context.Background(), late, 10*time.Millisecond)
	close(release)

	assert.Empty(t, campaign)
	assert.Equal(t, AttributionTimeout, how)
}

func TestAwaitCampaign_Organic(t *testing.T) {
	src := StaticAttribution{Install: "af"}
	campaign, how := awaitCampaign(context.Background(), src, time.Second)
	assert.Empty(t, campaign)
	assert.Equal(t, AttributionOrganic, how)
}
