package configx

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/spf13/cast"
)

// NewKoanfEnv maps <prefix>SECTION_KEY environment variables to section.key.
// Only keys present in types are picked up, and their values are cast to the
// type of the prototype found there.
func NewKoanfEnv(prefix string, types map[string]interface{}) *env.Env {
	return env.ProviderWithValue(prefix, Delimiter, func(key string, value string) (string, interface{}) {
		key = strings.Replace(strings.ToLower(strings.TrimPrefix(key, prefix)), "_", Delimiter, -1)

		proto, ok := types[key]
		if !ok {
			return "", nil
		}

		switch proto.(type) {
		case bool:
			return key, cast.ToBool(value)
		case int:
			return key, cast.ToInt(value)
		case []string:
			return key, cast.ToStringSlice(strings.Split(value, ","))
		case []interface{}, map[string]interface{}:
			return "", nil
		default:
			return key, value
		}
	})
}
