package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ykhdr/hash-bruteforce/internal/dispatcher"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
	"github.com/ykhdr/hash-bruteforce/internal/metrics"
	"github.com/ykhdr/hash-bruteforce/internal/server/api"
	"github.com/ykhdr/hash-bruteforce/internal/store/requeststore"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Accept search requests over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(reg)
			coordinator := hashcrack.NewCoordinator(cfg.Search.CoordinatorConfig(), hashcrack.WithObserver(m))
			requestStore := requeststore.NewRequestStore()
			dispatcherSrv := dispatcher.NewDispatcher(cfg.Server, cfg.Search, log.Logger, coordinator, requestStore)
			apiSrv := api.NewServer(cfg.Server, dispatcherSrv, requestStore, metrics.Handler(reg))

			group, gCtx := errgroup.WithContext(cmd.Context())
			group.Go(func() error {
				return dispatcherSrv.Start(gCtx)
			})
			group.Go(func() error {
				return apiSrv.Start(gCtx)
			})
			if err = group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("Server failed")
				return err
			}
			return nil
		},
	}
}
