package cli

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lukehollenback/fcsapi/constants"
	"github.com/lukehollenback/fcsapi/fcs"
)

var logger = logrus.WithField(constants.ComponentKey, "cli")

// state carries what the persistent pre-run resolved down to the subcommands.
type state struct {
	cfg    *Config
	client *fcs.Client
}

// NewCommand builds the fcsapi command tree. Each call returns an independent tree with its own
// configuration registry.
func NewCommand() *cobra.Command {
	st := &state{}
	v := viper.New()

	root := &cobra.Command{
		Use:           "fcsapi",
		Short:         "Query forex, crypto, and stock market data and mint frontend auth tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(v, cmd.Flags())
			if err != nil {
				return err
			}

			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = logrus.WarnLevel
			}

			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

			authCfg, err := cfg.Auth()
			if err != nil {
				return err
			}

			st.cfg = cfg
			st.client = fcs.NewClient(authCfg, fcs.WithBaseURL(cfg.BaseURL))

			logger.WithField("method", authCfg.Method().String()).Debug("Configuration loaded.")

			return nil
		},
	}

	bindFlags(root.PersistentFlags())

	root.AddCommand(
		newTokenCmd(st),
		newMarketCmd(st, "forex", "Forex and commodity data", func(c *fcs.Client) markets { return c.Forex }),
		newMarketCmd(st, "crypto", "Cryptocurrency data", func(c *fcs.Client) markets { return c.Crypto }),
		newMarketCmd(st, "stock", "Stock and index data", func(c *fcs.Client) markets { return c.Stock }),
		newRawCmd(st),
	)

	return root
}

// Execute runs the command tree against os.Args and exits with status 1 on failure.
func Execute() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}
