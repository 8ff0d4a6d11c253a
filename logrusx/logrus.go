package logrusx

import (
	"io"

	"github.com/sirupsen/logrus"
)

type configurator interface {
	String(key string) string
}

func newLogger(o *options) *logrus.Logger {
	l := o.l
	if l == nil {
		l = logrus.New()
	}

	if o.out != nil {
		l.Out = o.out
	}

	if o.exitFunc != nil {
		l.ExitFunc = o.exitFunc
	}

	if o.level != nil {
		l.Level = *o.level
	} else {
		var err error
		l.Level, err = logrus.ParseLevel(o.c.String("log.level"))
		if err != nil {
			l.Level = logrus.InfoLevel
		}
	}

	if o.formatter != nil {
		l.Formatter = o.formatter
	} else {
		format := o.format
		if format == "" {
			format = o.c.String("log.format")
		}

		switch format {
		case "json":
			l.Formatter = &logrus.JSONFormatter{PrettyPrint: false}
		case "json_pretty":
			l.Formatter = &logrus.JSONFormatter{PrettyPrint: true}
		default:
			l.Formatter = &logrus.TextFormatter{
				DisableQuote:     true,
				DisableTimestamp: false,
				FullTimestamp:    true,
			}
		}
	}

	for _, hook := range o.hooks {
		l.AddHook(hook)
	}

	l.ReportCaller = o.reportCaller || l.IsLevelEnabled(logrus.TraceLevel)
	return l
}

type options struct {
	l            *logrus.Logger
	level        *logrus.Level
	formatter    logrus.Formatter
	format       string
	out          io.Writer
	reportCaller bool
	exitFunc     func(int)
	hooks        []logrus.Hook
	c            configurator
}

type Option func(*options)

func ForceLevel(level logrus.Level) Option {
	return func(o *options) {
		o.level = &level
	}
}

func ForceFormatter(formatter logrus.Formatter) Option {
	return func(o *options) {
		o.formatter = formatter
	}
}

func ForceFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithOutput sets where log lines are written. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithConfigurator reads log.level and log.format from c.
func WithConfigurator(c configurator) Option {
	return func(o *options) {
		o.c = c
	}
}

func WithHook(hook logrus.Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hook)
	}
}

func WithExitFunc(exitFunc func(int)) Option {
	return func(o *options) {
		o.exitFunc = exitFunc
	}
}

func ReportCaller(reportCaller bool) Option {
	return func(o *options) {
		o.reportCaller = reportCaller
	}
}

func UseLogger(l *logrus.Logger) Option {
	return func(o *options) {
		o.l = l
	}
}

type nullConfigurator struct{}

func (nullConfigurator) String(string) string { return "" }

func newOptions(opts []Option) *options {
	o := &options{c: nullConfigurator{}}
	for _, f := range opts {
		f(o)
	}
	return o
}

// New creates a new logger with all the important fields set.
func New(name string, version string, opts ...Option) *Logger {
	o := newOptions(opts)
	return &Logger{
		name:    name,
		version: version,
		Entry: newLogger(o).WithFields(logrus.Fields{
			"audience": "application", "service_name": name, "service_version": version}),
	}
}

// NewDiscarding returns a logger that drops everything. Useful as a default.
func NewDiscarding() *Logger {
	return New("", "", WithOutput(io.Discard))
}
