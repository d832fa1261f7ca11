package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newRawCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "raw ENDPOINT [KEY=VALUE...]",
		Short: "Call any endpoint with hand-written parameters",
		Example: "  fcsapi raw forex/latest symbol=EURUSD,USDJPY\n" +
			"  fcsapi raw crypto/history symbol=BTCUSDT period=1h length=24",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}

			for _, arg := range args[1:] {
				k, v, ok := strings.Cut(arg, "=")
				if !ok || k == "" {
					return fmt.Errorf("parameter %q is not of the form KEY=VALUE", arg)
				}

				params.Add(k, v)
			}

			resp, err := st.client.Request(cmd.Context(), strings.TrimPrefix(args[0], "/"), params)

			return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, err)
		},
	}
}
