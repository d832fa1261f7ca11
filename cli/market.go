package cli

import (
	"context"
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lukehollenback/fcsapi/exchange"
	"github.com/lukehollenback/fcsapi/export"
	"github.com/lukehollenback/fcsapi/fcs"
)

// markets is the slice of query builders every market shares and the CLI exposes.
type markets interface {
	LatestPrice(ctx context.Context, symbol string, opts fcs.LatestOptions) (exchange.Response, error)
	History(ctx context.Context, symbol string, opts fcs.HistoryOptions) (exchange.Response, error)
	Profile(ctx context.Context, symbol string) (exchange.Response, error)
	Search(ctx context.Context, query string, opts fcs.ListOptions) (exchange.Response, error)
}

// converter is implemented by markets with a currency converter.
type converter interface {
	Convert(ctx context.Context, pair1 string, pair2 string, amount decimal.Decimal) (exchange.Response, error)
}

func newMarketCmd(st *state, name string, short string, pick func(*fcs.Client) markets) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}

	warnExpiring := func() {
		if !st.client.IsTokenValid() {
			logger.Warn("The configured token is missing or expires within a minute. Requests will likely be rejected.")
		}
	}

	//
	// latest SYMBOL
	//
	var latestPeriod string

	latest := &cobra.Command{
		Use:   "latest SYMBOL",
		Short: "Fetch the latest quote of a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parsePeriod(latestPeriod)
			if err != nil {
				return err
			}

			warnExpiring()

			resp, err := pick(st.client).LatestPrice(cmd.Context(), args[0], fcs.LatestOptions{Period: period})

			return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, err)
		},
	}
	latest.Flags().StringVar(&latestPeriod, "period", "", "Candle period (1m, 5m, 15m, 30m, 1h, 4h, 1D, 1W, 1M)")

	//
	// history SYMBOL
	//
	var (
		historyPeriod string
		historyLength int
		historyCSV    string
	)

	history := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "Fetch historical candles of a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parsePeriod(historyPeriod)
			if err != nil {
				return err
			}

			warnExpiring()

			resp, err := pick(st.client).History(cmd.Context(), args[0], fcs.HistoryOptions{Period: period, Length: historyLength})
			if err != nil || historyCSV == "" {
				return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, err)
			}

			candles, err := resp.Candles()
			if err != nil {
				return err
			}

			if err := export.WriteFile(historyCSV, candles); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s candles to %s.\n", aurora.Bold(aurora.Green(len(candles))), historyCSV)

			return nil
		},
	}
	history.Flags().StringVar(&historyPeriod, "period", "", "Candle period (default 1D)")
	history.Flags().IntVar(&historyLength, "length", fcs.DefaultHistoryLength, "Number of candles")
	history.Flags().StringVar(&historyCSV, "csv", "", "Write the candles to this CSV file instead of printing the response")

	profile := &cobra.Command{
		Use:   "profile SYMBOL",
		Short: "Fetch the profile of a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnExpiring()

			resp, err := pick(st.client).Profile(cmd.Context(), args[0])

			return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, err)
		},
	}

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnExpiring()

			resp, err := pick(st.client).Search(cmd.Context(), args[0], fcs.ListOptions{})

			return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, err)
		},
	}

	cmd.AddCommand(latest, history, profile, search)

	//
	// convert FROM TO [AMOUNT], for markets that have a converter.
	//
	if _, ok := pick(&fcs.Client{}).(converter); ok {
		cmd.AddCommand(&cobra.Command{
			Use:   "convert FROM TO [AMOUNT]",
			Short: "Convert an amount between two currencies (one unit by default)",
			Args:  cobra.RangeArgs(2, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount := decimal.Zero

				if len(args) == 3 {
					var err error

					amount, err = decimal.NewFromString(args[2])
					if err != nil {
						return fmt.Errorf("invalid amount %q (%s)", args[2], err)
					}
				}

				warnExpiring()

				resp, err := pick(st.client).(converter).Convert(cmd.Context(), args[0], args[1], amount)

				return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, err)
			},
		})
	}

	return cmd
}

func parsePeriod(s string) (exchange.Period, error) {
	if s == "" {
		return exchange.NoPeriod, nil
	}

	return exchange.ParsePeriod(s)
}
