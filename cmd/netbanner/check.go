package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samsmith08/netbanner/internal/core/connbanner"
	"github.com/samsmith08/netbanner/internal/core/netconfig"
)

func newCheckConfigCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "校验配置并列出网络",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			registry, err := netconfig.FromUnified(cfg)
			if err != nil {
				return err
			}

			enabled := make(map[string]bool, len(cfg.EnabledNetworks))
			for _, id := range cfg.EnabledNetworks {
				enabled[id] = true
			}
			reporter := connbanner.ReporterConfigFromUnified(cfg)
			classifier := connbanner.NewEndpointClassifier(
				reporter.InfuraProjectID, reporter.QuicknodeEndpoints, reporter.KnownPublicEndpoints)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "banner: slow=%s unavailable=%s\n",
				cfg.Banner.SlowDelay, cfg.Banner.UnavailableDelay)
			fmt.Fprintf(out, "telemetry: enabled=%t project_id_set=%t\n",
				reporter.Enabled, reporter.InfuraProjectID != "")

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CHAIN\tCAIP\tNAME\tDEFAULT CLIENT\tTELEMETRY URL\tENABLED")
			for _, id := range registry.ChainIDs() {
				nc, _ := registry.Get(id)
				ep, _ := nc.DefaultRpcEndpoint()
				caip, err := id.CAIP()
				if err != nil {
					caip = "invalid"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n",
					id, caip, nc.Name, ep.NetworkClientID, classifier.Sanitize(ep.URL), enabled[string(id)])
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, "config ok")
			return nil
		},
	}
}
