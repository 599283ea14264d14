package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cg3io/prior/internal/api"
	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/auth"
	"github.com/cg3io/prior/internal/branding"
	"github.com/cg3io/prior/internal/config"
	"github.com/cg3io/prior/internal/credentials"
	"github.com/cg3io/prior/internal/knowledge"
	"github.com/cg3io/prior/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// app holds the dependencies of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	client *api.Client
	auth   *auth.Bootstrap
}

func newApp(settings *config.Settings, stdout, stderr io.Writer, logger *slog.Logger, opts ...api.Option) *app {
	store := credentials.NewStore(settings.CredentialsPath, credentials.WithLogger(logger))
	resolver := auth.NewResolver(settings.APIKey, store)

	clientOpts := []api.Option{
		api.WithKeySource(resolver),
		api.WithUserAgent(branding.UserAgent(buildVersion)),
		api.WithLogger(logger),
	}
	client := api.New(settings.BaseURL, append(clientOpts, opts...)...)

	return &app{
		stdout: stdout,
		stderr: stderr,
		client: client,
		auth:   auth.New(resolver, store, client, auth.WithStderr(stderr), auth.WithLogger(logger)),
	}
}

// render prints the response on stdout and each hint on stderr.
func (a *app) render(resp *api.Response, hints []string) error {
	out, err := resp.Indent()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, string(out))
	for _, h := range hints {
		fmt.Fprintf(a.stderr, "\n%s\n", h)
	}
	return nil
}

// report prints err once. Usage and registration errors are shown verbatim,
// anything else gets an "Error:" prefix.
func (a *app) report(err error) {
	var usageErr *knowledge.UsageError
	var regErr *auth.RegistrationError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintln(a.stderr, usageErr.Error())
	case errors.As(err, &regErr):
		fmt.Fprintln(a.stderr, regErr.Error())
	default:
		fmt.Fprintln(a.stderr, "Error:", err)
	}
}

// newAPICommand builds a command that receives its tokens unparsed by Cobra.
func newAPICommand(use, short string, run func(ctx context.Context, p args.Parsed) error) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, tokens []string) error {
			return run(cmd.Context(), args.Parse(tokens))
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:                branding.CLIName(),
		Short:              branding.Description(),
		Long:               branding.DisplayName() + ` lets AI agents search, contribute to, and rate a shared knowledge base.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, tokens []string) error {
			if len(tokens) == 0 || isHelp(tokens[0]) {
				printUsage(a.stdout)
				return nil
			}
			return &knowledge.UsageError{Lines: []string{
				fmt.Sprintf("Unknown command: %s. Run without arguments for help.", tokens[0]),
			}}
		},
	}
	root.SetHelpFunc(func(*cobra.Command, []string) {
		printUsage(a.stdout)
	})

	root.AddCommand(
		newSearchCmd(a),
		newContributeCmd(a),
		newFeedbackCmd(a),
		newGetCmd(a),
		newRetractCmd(a),
		newStatusCmd(a),
		newCreditsCmd(a),
		newClaimCmd(a),
		newVerifyCmd(a),
		newVersionCmd(a),
	)
	return root
}

func isHelp(tok string) bool {
	return tok == "--help" || tok == "-h"
}

func run(ctx context.Context, a *app, argv []string) error {
	if argv == nil {
		// Cobra falls back to os.Args when given nil.
		argv = []string{}
	}
	root := newRootCmd(a)
	root.SetArgs(argv)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.report(err)
	}
	return err
}

// Run executes one CLI invocation with settings taken from the environment.
// Errors have already been printed to stderr when it returns.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	settings := config.Load()
	logger, closer := logging.New(settings.LogLevel, settings.LogFile)
	defer closer.Close()

	return run(ctx, newApp(settings, stdout, stderr, logger), argv)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}
