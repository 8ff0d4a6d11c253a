package configx

import (
	"io"

	"github.com/knadh/koanf"
	"github.com/spf13/pflag"

	"github.com/xbrlgl/glvalidate/logrusx"
)

type (
	OptionModifier func(p *Provider)
)

// WithFlags loads explicitly set flags. keys maps flag names to config keys;
// flags without an entry are ignored except for --config.
func WithFlags(flags *pflag.FlagSet, keys map[string]string) OptionModifier {
	return func(p *Provider) {
		p.flags = flags
		p.flagKeys = keys
	}
}

func WithConfigFiles(files ...string) OptionModifier {
	return func(p *Provider) {
		p.files = append(p.files, files...)
	}
}

func WithValue(key string, value interface{}) OptionModifier {
	return func(p *Provider) {
		p.forcedValues = append(p.forcedValues, tuple{Key: key, Value: value})
	}
}

func WithValues(values map[string]interface{}) OptionModifier {
	return func(p *Provider) {
		for key, value := range values {
			p.forcedValues = append(p.forcedValues, tuple{Key: key, Value: value})
		}
	}
}

func WithEnvPrefix(prefix string) OptionModifier {
	return func(p *Provider) {
		p.envPrefix = prefix
	}
}

func WithLogger(l *logrusx.Logger) OptionModifier {
	return func(p *Provider) {
		p.logger = l
	}
}

func SkipValidation() OptionModifier {
	return func(p *Provider) {
		p.skipValidation = true
	}
}

func WithValidationErrorReporter(w io.Writer) OptionModifier {
	return func(p *Provider) {
		p.onValidationError = func(k *koanf.Koanf, err error) {
			p.printHumanReadableValidationErrors(k, w, err)
		}
	}
}
