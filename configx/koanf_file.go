package configx

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/pkg/errors"
)

// KoanfFile implements a KoanfFile provider.
type KoanfFile struct {
	path   string
	parser koanf.Parser
}

// NewKoanfFile returns a file provider. The parser is chosen by file extension.
func NewKoanfFile(path string) (*KoanfFile, error) {
	kf := &KoanfFile{
		path: filepath.Clean(path),
	}

	switch e := filepath.Ext(path); e {
	case ".toml":
		kf.parser = toml.Parser()
	case ".json":
		kf.parser = json.Parser()
	case ".yaml", ".yml":
		kf.parser = yaml.Parser()
	default:
		return nil, errors.Errorf("unknown config file extension: %s", e)
	}

	return kf, nil
}

// ReadBytes is not supported by the file provider.
func (f *KoanfFile) ReadBytes() ([]byte, error) {
	return nil, errors.New("file provider does not support this method")
}

// Read reads the contents of a file on disk and parses them.
func (f *KoanfFile) Read() (map[string]interface{}, error) {
	//#nosec G304 -- false positive
	fc, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	v, err := f.parser.Unmarshal(fc)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %s", f.path)
	}

	return v, nil
}
