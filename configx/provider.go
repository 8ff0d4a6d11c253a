package configx

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/pflag"

	"github.com/xbrlgl/glvalidate/jsonschemax"
	"github.com/xbrlgl/glvalidate/jsonx"
	"github.com/xbrlgl/glvalidate/logrusx"
)

type tuple struct {
	Key   string
	Value interface{}
}

type Provider struct {
	*koanf.Koanf

	flags             *pflag.FlagSet
	flagKeys          map[string]string
	files             []string
	envPrefix         string
	forcedValues      []tuple
	validator         *jsonschema.Schema
	onValidationError func(k *koanf.Koanf, err error)
	skipValidation    bool
	logger            *logrusx.Logger
}

const (
	FlagConfig = "config"
	Delimiter  = "."
	EnvPrefix  = "GLVALIDATE_"
	NegateFlag = "!"
)

// RegisterConfigFlag registers the "--config" flag on pflag.FlagSet.
func RegisterConfigFlag(flags *pflag.FlagSet, fallback []string) {
	flags.StringSliceP(FlagConfig, "c", fallback, "Path to one or more .json, .yaml, .yml, .toml config files. Values are loaded in the order provided, meaning that the last config file overwrites values from the previous config file.")
}

// New creates a new provider instance or errors.
// Configuration values are loaded in the following order:
//
// 1. Built-in defaults
// 2. Config files (yaml, yml, toml, json)
// 3. Command line flags
// 4. Environment variables
func New(modifiers ...OptionModifier) (*Provider, error) {
	validator, err := newValidator()
	if err != nil {
		return nil, err
	}

	p := &Provider{
		envPrefix:         EnvPrefix,
		validator:         validator,
		onValidationError: func(k *koanf.Koanf, err error) {},
		logger:            logrusx.NewDiscarding(),
	}

	for _, m := range modifiers {
		m(p)
	}

	k, err := p.load()
	if err != nil {
		return nil, err
	}

	p.Koanf = k
	return p, nil
}

func (p *Provider) load() (*koanf.Koanf, error) {
	k := koanf.New(Delimiter)

	if err := k.Load(confmap.Provider(Defaults(), Delimiter), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	paths := append([]string{}, p.files...)
	if p.flags != nil {
		if fromFlag, err := p.flags.GetStringSlice(FlagConfig); err == nil {
			paths = append(paths, fromFlag...)
		}
	}

	p.logger.WithField("files", paths).Debug("Adding config files.")
	for _, path := range paths {
		kf, err := NewKoanfFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(kf, nil); err != nil {
			return nil, err
		}
	}

	if p.flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(p.flags, Delimiter, k, p.flagToKey), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err := k.Load(NewKoanfEnv(p.envPrefix, Defaults()), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, t := range p.forcedValues {
		if err := k.Load(confmap.Provider(map[string]interface{}{t.Key: t.Value}, Delimiter), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err := p.validate(k); err != nil {
		return nil, err
	}

	return k, nil
}

// flagToKey only picks up flags that were set explicitly and have a config key.
// Keys prefixed with NegateFlag receive the inverse of a boolean flag.
func (p *Provider) flagToKey(f *pflag.Flag) (string, interface{}) {
	key, ok := p.flagKeys[f.Name]
	if !ok || !f.Changed {
		return "", nil
	}
	switch f.Value.Type() {
	case "bool":
		v, _ := p.flags.GetBool(f.Name)
		if strings.HasPrefix(key, NegateFlag) {
			return strings.TrimPrefix(key, NegateFlag), !v
		}
		return key, v
	case "stringSlice":
		v, _ := p.flags.GetStringSlice(f.Name)
		return key, v
	default:
		return key, f.Value.String()
	}
}

func (p *Provider) validate(k *koanf.Koanf) error {
	if p.skipValidation {
		return nil
	}

	out, err := k.Marshal(json.Parser())
	if err != nil {
		return errors.WithStack(err)
	}

	doc, err := jsonx.DecodeBytes(out)
	if err != nil {
		return err
	}

	if err := p.validator.Validate(doc); err != nil {
		p.onValidationError(k, err)
		return errors.WithStack(err)
	}

	return nil
}

func (p *Provider) Set(key string, value interface{}) error {
	p.forcedValues = append(p.forcedValues, tuple{Key: key, Value: value})

	k, err := p.load()
	if err != nil {
		return err
	}

	p.Koanf = k
	return nil
}

func (p *Provider) BoolF(key string, fallback bool) bool {
	if !p.Koanf.Exists(key) {
		return fallback
	}

	return p.Bool(key)
}

func (p *Provider) StringF(key string, fallback string) string {
	if !p.Koanf.Exists(key) {
		return fallback
	}

	return p.String(key)
}

func (p *Provider) DurationF(key string, fallback time.Duration) (val time.Duration) {
	if !p.Koanf.Exists(key) {
		return fallback
	}

	return p.Duration(key)
}

// PrintHumanReadableValidationErrors prints human readable validation errors. Duh.
func (p *Provider) PrintHumanReadableValidationErrors(w io.Writer, err error) {
	p.printHumanReadableValidationErrors(p.Koanf, w, err)
}

func (p *Provider) printHumanReadableValidationErrors(k *koanf.Koanf, w io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = io.WriteString(w, "The configuration contains values or keys which are invalid:\n")
	conf, innerErr := k.Marshal(json.Parser())
	if innerErr != nil {
		_, _ = io.WriteString(w, "Unable to unmarshal configuration: "+innerErr.Error()+"\n")
	}

	jsonschemax.FormatValidationErrorForCLI(w, conf, err)
}

// BaseDir is the directory relative paths are resolved against.
func (p *Provider) BaseDir() string {
	return p.StringF(KeyBaseDir, ".")
}

// Path resolves a configured path against BaseDir. Absolute paths and
// locations with a scheme are returned unchanged.
func (p *Provider) Path(key string) string {
	v := p.String(key)
	if v == "" || filepath.IsAbs(v) || hasScheme(v) {
		return v
	}
	return filepath.Join(p.BaseDir(), v)
}

// Layout returns the on-disk layout the XBRL-GL resolver reads from.
func (p *Provider) Layout() jsonschemax.Layout {
	return jsonschemax.Layout{
		MetaSchema:      p.Path(KeyMetaSchema),
		Vocabularies:    p.Path(KeyVocabularies),
		BasicComponents: p.Path(KeyBasicComponents),
		Codelists:       p.Path(KeyCodelists),
	}
}

// PreloadSchema is a schema document registered under a fixed identifier.
type PreloadSchema struct {
	ID   string `json:"id" koanf:"id"`
	Path string `json:"path" koanf:"path"`
}

// PreloadSchemas returns the documents to register, with paths resolved against BaseDir.
func (p *Provider) PreloadSchemas() ([]PreloadSchema, error) {
	var schemas []PreloadSchema
	if err := p.Unmarshal(KeyPreloadSchemas, &schemas); err != nil {
		return nil, errors.WithStack(err)
	}

	for i := range schemas {
		if !filepath.IsAbs(schemas[i].Path) && !hasScheme(schemas[i].Path) {
			schemas[i].Path = filepath.Join(p.BaseDir(), schemas[i].Path)
		}
	}
	return schemas, nil
}

func (p *Provider) AllowRemote() bool {
	return p.BoolF(KeyRemoteAllow, false)
}

func (p *Provider) RemoteTimeout() time.Duration {
	return p.DurationF(KeyRemoteTimeout, time.Minute)
}

func (p *Provider) AssertFormat() bool {
	return p.BoolF(KeyAssertFormat, true)
}

func (p *Provider) OutputFormat() string {
	return p.StringF(KeyOutputFormat, "default")
}

func (p *Provider) Language() string {
	return p.StringF(KeyLanguage, "en")
}

func hasScheme(v string) bool {
	return strings.Contains(v, "://")
}

func newValidator() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	doc, err := jsonx.Decode(bytes.NewReader(ConfigSchema))
	if err != nil {
		return nil, err
	}
	if err := c.AddResource(ConfigSchemaID, doc); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := logrusx.AddConfigSchema(c); err != nil {
		return nil, err
	}

	s, err := c.Compile(ConfigSchemaID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return s, nil
}
