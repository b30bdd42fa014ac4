package config

import (
	"github.com/bytedance/gg/gconv"
)

var (
	forceCookiesKeys = []string{"forceCookies", "force_cookies"}
	persistentKeys   = []string{"persistent"}
	multiplierKeys   = []string{"expirationMultiplier", "expiration_multiplier"}
)

// OptionsFromMap builds Options from a loosely typed map, such as one decoded
// from JSON. Only the recognized keys are read; everything else is ignored.
func OptionsFromMap(configMap map[string]any) Options {
	var opts Options
	if v, ok := lookup(configMap, forceCookiesKeys); ok {
		opts.ForceCookies = gconv.To[bool](v)
	}
	if v, ok := lookup(configMap, persistentKeys); ok {
		opts.Persistent = gconv.To[bool](v)
	}
	if v, ok := lookup(configMap, multiplierKeys); ok {
		opts.ExpirationMultiplier = gconv.To[float64](v)
	}
	opts.Normalize()
	return opts
}

func lookup(configMap map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := configMap[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
