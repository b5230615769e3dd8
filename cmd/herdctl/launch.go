package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/herdbook/herdbook/internal/app"
	"github.com/herdbook/herdbook/internal/config"
	"github.com/herdbook/herdbook/internal/launch"
)

type launchFlags struct {
	authorized         bool
	advertisingID      string
	installID          string
	campaign           string
	campaignDelay      time.Duration
	consentDelay       time.Duration
	attributionTimeout time.Duration
	reset              bool
}

func (c *cli) launchCmd() *cobra.Command {
	var f launchFlags
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Resolve the attribution shell start URL",
		Long: `Run the start URL sequence against LAUNCH_BOOTSTRAP_URL and print the
result as JSON. Consent and attribution answers come from the flags.

A URL saved by an earlier run is returned without contacting the
bootstrap server unless --reset is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(a *app.App, cfg config.Config) error {
				ctx := cmd.Context()
				if f.reset {
					if err := a.Store.Delete(ctx, launch.SavedURLKey); err != nil {
						return err
					}
				}
				l, err := launch.New(launch.Config{
					BootstrapURL:       cfg.Launch.BootstrapURL,
					Marker:             cfg.Launch.Marker,
					ConsentDelay:       f.consentDelay,
					AttributionTimeout: f.attributionTimeout,
				},
					a.Store,
					launch.StaticConsent{Authorized: f.authorized, AdvertisingID: f.advertisingID},
					launch.StaticAttribution{Install: f.installID, CampaignName: f.campaign, Delay: f.campaignDelay},
					c.log,
				)
				if err != nil {
					return err
				}
				res, runErr := l.Run(ctx)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
				return runErr
			})
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&f.authorized, "authorized", false, "grant tracking consent")
	fl.StringVar(&f.advertisingID, "ad-id", "", "advertising id sent when consent is granted")
	fl.StringVar(&f.installID, "install-id", "", "attribution install id")
	fl.StringVar(&f.campaign, "campaign", "", "campaign name delivered by attribution; empty means organic")
	fl.DurationVar(&f.campaignDelay, "campaign-delay", 0, "delay before attribution delivers")
	fl.DurationVar(&f.consentDelay, "consent-delay", launch.DefaultConsentDelay, "pause before the consent request; negative skips it")
	fl.DurationVar(&f.attributionTimeout, "attribution-timeout", launch.DefaultAttributionTimeout, "how long to wait for attribution")
	fl.BoolVar(&f.reset, "reset", false, "forget any saved start url first")
	return cmd
}
