package cli

import (
	"encoding/json"
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/lukehollenback/fcsapi/auth"
	"github.com/lukehollenback/fcsapi/constants"
)

const (
	FormatJSON = "json"
	FormatMeta = "meta"
	FormatText = "text"
)

func newTokenCmd(st *state) *cobra.Command {
	var (
		window int64
		format string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a time-limited token for frontend use",
		Long: "Mint a time-limited HMAC token from the access key and public key. The access key never " +
			"leaves this machine; only the token, its expiry, and the public key are printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.cfg.AccessKey == "" || st.cfg.PublicKey == "" {
				return fmt.Errorf("%w: minting a token needs --%s and --%s", auth.ErrIncompleteCredentials, AccessKeyFlag, PublicKeyFlag)
			}

			switch format {
			case FormatJSON, FormatMeta, FormatText:
			default:
				return fmt.Errorf("%w: unknown format %q (want %s, %s, or %s)", auth.ErrInvalidArgument, format, FormatJSON, FormatMeta, FormatText)
			}

			gen, err := auth.NewGenerator(st.cfg.AccessKey, st.cfg.PublicKey, window)
			if err != nil {
				return err
			}

			t := gen.Generate()
			out := cmd.OutOrStdout()

			switch format {
			case FormatJSON:
				data, err := json.MarshalIndent(t, "", "  ")
				if err != nil {
					return err
				}

				fmt.Fprintln(out, string(data))

			case FormatMeta:
				fmt.Fprintln(out, auth.MetaTags(t))

			case FormatText:
				fmt.Fprintf(out, "%s %s\n", aurora.Bold("token:     "), aurora.Green(t.Token))
				fmt.Fprintf(out, "%s %s\n", aurora.Bold("expiry:    "), aurora.Yellow(t.Expiry))
				fmt.Fprintf(out, "%s %s\n", aurora.Bold("public key:"), aurora.Blue(t.PublicKey))
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&window, "window", constants.DefaultTokenWindow, "Seconds the token stays valid")
	cmd.Flags().StringVar(&format, "format", FormatJSON, "Output format: json, meta, or text")

	return cmd
}
