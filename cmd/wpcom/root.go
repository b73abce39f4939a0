package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samvad-hq/wpcom-harvester/internal/config"
	"github.com/samvad-hq/wpcom-harvester/internal/logger"
	"github.com/samvad-hq/wpcom-harvester/pkg/httpclient"
	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
	"github.com/spf13/cobra"
)

// errReported marks failures whose details were already written to stderr.
var errReported = errors.New("reported")

type rootOptions struct {
	token   string
	cfgFile string
	baseURI string
	output  string
	timeout time.Duration
	verbose bool

	stdout io.Writer
	stderr io.Writer
	client *wpcom.Client
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "wpcom",
		Short: "Call the WordPress.com REST API v1.1 from the terminal",
		Long: `wpcom sends authenticated requests to the WordPress.com REST API v1.1 and
prints the decoded response. The OAuth token comes from --token, the
WPCOM_OAUTH_TOKEN environment variable, configs/.env or --config.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.init,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.token, "token", "", "OAuth bearer token (overrides WPCOM_OAUTH_TOKEN)")
	flags.StringVar(&opts.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&opts.baseURI, "base-uri", "", "API root (default "+wpcom.DefaultBaseURI+")")
	flags.StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout (default from config, 30s)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		newCallCmd(opts),
		newSitesCmd(opts),
		newPostsCmd(opts),
		newStatsCmd(opts),
		newMediaCmd(opts),
		newMenusCmd(opts),
		newUsersCmd(opts),
	)
	return cmd
}

// init resolves configuration and builds the client shared by subcommands.
func (o *rootOptions) init(_ *cobra.Command, _ []string) error {
	if _, err := formatter(o.output); err != nil {
		return err
	}

	cfg, err := config.LoadFile(o.cfgFile)
	if err != nil {
		return err
	}

	token := cfg.OAuthToken
	if t := strings.TrimSpace(o.token); t != "" {
		token = t
	}
	baseURI := cfg.BaseURI
	if o.baseURI != "" {
		baseURI = o.baseURI
	}
	timeout := cfg.RequestTimeout
	if o.timeout > 0 {
		timeout = o.timeout
	}

	transport := httpclient.NewRestyClient(timeout)
	if o.verbose {
		transport = transport.WithLogger(logger.InitWriter("debug", o.stderr))
	}

	client, err := wpcom.NewClient(token,
		wpcom.WithBaseURI(baseURI),
		wpcom.WithTimeout(timeout),
		wpcom.WithTransport(transport),
	)
	if err != nil {
		return fmt.Errorf("%w (set --token or WPCOM_OAUTH_TOKEN)", err)
	}
	o.client = client
	return nil
}

// print renders a successful payload, or the status and body of a failed one.
func (o *rootOptions) print(payload any, err error) error {
	if err != nil {
		var re *wpcom.ResponseError
		if !errors.As(err, &re) {
			return err
		}
		if re.Status == 0 {
			return fmt.Errorf("%s: %w", re.Message(), re.Unwrap())
		}
		fmt.Fprintln(o.stderr, re.Message())
		if re.Body != nil {
			if werr := render(o.stderr, o.output, re.Body); werr != nil {
				return werr
			}
		}
		return errReported
	}
	return render(o.stdout, o.output, payload)
}
