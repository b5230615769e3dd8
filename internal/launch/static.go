package launch

import (
	"context"
	"time"
)

// StaticConsent answers every consent request with the same Consent.
type StaticConsent Consent

func (s StaticConsent) RequestConsent(context.Context) (Consent, error) {
	return Consent(s), nil
}

// StaticAttribution delivers a fixed campaign after Delay. An empty
// CampaignName is delivered as an organic install.
type StaticAttribution struct {
	Install      string
	CampaignName string
	Delay        time.Duration
}

func (s StaticAttribution) InstallID(context.Context) (string, error) {
	return s.Install, nil
}

func (s StaticAttribution) Campaign(ctx context.Context) (string, bool, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
	return s.CampaignName, s.CampaignName != "", nil
}
