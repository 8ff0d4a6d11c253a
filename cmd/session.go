package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xbrlgl/glvalidate/cmdx"
	"github.com/xbrlgl/glvalidate/configx"
	"github.com/xbrlgl/glvalidate/fetcher"
	"github.com/xbrlgl/glvalidate/httpx"
	"github.com/xbrlgl/glvalidate/jsonschemax"
	"github.com/xbrlgl/glvalidate/logrusx"
	"github.com/xbrlgl/glvalidate/validation"
)

// session holds what a single command invocation is configured with.
type session struct {
	cmd *cobra.Command
	cfg *configx.Provider
	l   *logrusx.Logger
}

func newSession(cmd *cobra.Command, keys map[string]string, opts ...configx.OptionModifier) (*session, error) {
	flagKeys := make(map[string]string, len(globalFlagKeys)+len(keys))
	for k, v := range globalFlagKeys {
		flagKeys[k] = v
	}
	for k, v := range keys {
		flagKeys[k] = v
	}

	cfg, err := configx.New(append([]configx.OptionModifier{
		configx.WithFlags(cmd.Flags(), flagKeys),
		configx.WithValidationErrorReporter(cmd.ErrOrStderr()),
	}, opts...)...)
	if err != nil {
		return nil, err
	}

	l := logrusx.New("glvalidate", Version,
		logrusx.WithConfigurator(cfg),
		logrusx.WithOutput(cmd.ErrOrStderr()),
	)
	l.WithField("base_dir", cfg.BaseDir()).Debug("Configuration loaded.")

	return &session{cmd: cmd, cfg: cfg, l: l}, nil
}

func (s *session) validationOptions() ([]validation.Option, error) {
	tag, err := validation.ParseLanguage(s.cfg.Language())
	if err != nil {
		return nil, err
	}

	return []validation.Option{
		validation.WithFormatAssertion(s.cfg.AssertFormat()),
		validation.WithLanguage(tag),
		validation.WithLogger(s.l),
	}, nil
}

// inputFetcher reads the documents named by the user. Only these may be remote.
func (s *session) inputFetcher() *fetcher.Fetcher {
	return fetcher.NewFetcher(
		fetcher.WithRemote(s.cfg.AllowRemote()),
		fetcher.WithClient(httpx.NewResilientClient(
			httpx.ResilientClientWithConnectionTimeout(s.cfg.RemoteTimeout()),
			httpx.ResilientClientWithLogger(s.l),
		)),
	)
}

// resolver serves schema references from local files only.
func (s *session) resolver() *jsonschemax.RouteResolver {
	return jsonschemax.NewXBRLGLResolver(fetcher.NewFetcher(), s.cfg.Layout())
}

func (s *session) printer() (*cmdx.Printer, error) {
	return cmdx.NewPrinter(s.cmd, s.cfg.OutputFormat())
}

// report prints res and turns an invalid result into ExitInvalid.
func (s *session) report(res *validation.Result) error {
	p, err := s.printer()
	if err != nil {
		return err
	}

	if err := p.PrintReport(&outputReport{Result: res}); err != nil {
		return err
	}

	if !res.Valid {
		return cmdx.FailSilently(cmdx.ExitInvalid)
	}
	return nil
}

func (s *session) fail(err error, msg string) error {
	s.l.WithError(err).Debug(msg)
	return err
}
