package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigSearchHorizon    = "search-horizon"
	ConfigColumnOrder      = "column-order"
	ConfigTTCapacity       = "tt-capacity"
	ConfigTTMemoryFraction = "tt-memory-fraction"
	ConfigTTSlotHash       = "tt-slot-hash"
	ConfigLogLevel         = "log-level"
	ConfigConfigFile       = "config-file"
)

type Config struct {
	viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigSearchHorizon, 9)
	v.SetDefault(ConfigColumnOrder, []int{4, 3, 5, 2, 6, 1, 7, 0, 8})
	v.SetDefault(ConfigTTCapacity, 1<<24)
	v.SetDefault(ConfigTTMemoryFraction, 0.0)
	v.SetDefault(ConfigTTSlotHash, "modulo")
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigConfigFile, "")
}

// DefaultConfig returns a config holding only the built-in defaults.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	setDefaults(&c.Viper)
	return c
}

// Load reads settings from, in increasing priority: the defaults, an
// optional config file, CONNECT4_* environment variables, and args.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	setDefaults(&c.Viper)

	fs := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	fs.Int(ConfigSearchHorizon, 9, "deepest search depth below the root moves")
	fs.IntSlice(ConfigColumnOrder, []int{4, 3, 5, 2, 6, 1, 7, 0, 8}, "order in which columns are searched")
	fs.Int(ConfigTTCapacity, 1<<24, "number of transposition table slots")
	fs.Float64(ConfigTTMemoryFraction, 0, "if set, size the transposition table to this fraction of system memory")
	fs.String(ConfigTTSlotHash, "modulo", "transposition table slot function: modulo or xxhash")
	fs.String(ConfigLogLevel, "info", "debug, info, warn or disabled")
	fs.String(ConfigConfigFile, "", "optional yaml, toml or json config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.SetEnvPrefix("connect4")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	// Only flags that were passed explicitly override the environment.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if bindErr == nil {
			bindErr = c.BindPFlag(f.Name, f)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// GetIntList reads a list of ints that may come from a flag, a config file
// list, or a comma separated environment variable.
func (c *Config) GetIntList(key string) ([]int, error) {
	raw, ok := c.Get(key).(string)
	if !ok {
		return c.GetIntSlice(key), nil
	}
	fields := strings.Split(strings.Trim(raw, "[]"), ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, n)
	}
	return out, nil
}
