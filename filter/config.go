package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avscale/geometry"
	"github.com/xaionaro-go/avscale/scaler"
	"gopkg.in/yaml.v3"
)

// Config is the user configuration of the scale stage.
//
// Width and Height use the compact size encoding of geometry.DecodeAxis.
type Config struct {
	Width            int                  `yaml:"w"`
	Height           int                  `yaml:"h"`
	Param            float64              `yaml:"param"`
	Param2           float64              `yaml:"param2"`
	ChromaDrop       int                  `yaml:"chr-drop"`
	NoUpscale        geometry.AntiUpscale `yaml:"noup"`
	AccurateRounding bool                 `yaml:"arnd"`
	Algorithm        scaler.Algorithm     `yaml:"sws"`
}

func DefaultConfig() Config {
	return Config{
		Width:     -1,
		Height:    -1,
		Param:     scaler.ParamDefault,
		Param2:    scaler.ParamDefault,
		Algorithm: scaler.AlgorithmBicubic,
	}
}

func (cfg Config) String() string {
	return fmt.Sprintf(
		"w=%d:h=%d:param=%v:param2=%v:chr-drop=%d:noup=%d:arnd=%t:sws=%s",
		cfg.Width, cfg.Height, cfg.Param, cfg.Param2, cfg.ChromaDrop, cfg.NoUpscale, cfg.AccurateRounding, cfg.Algorithm,
	)
}

// Validate checks the value ranges; the size encoding is checked by Spec.
func (cfg Config) Validate() error {
	if cfg.Width < geometry.MinRawValue || cfg.Height < geometry.MinRawValue {
		return fmt.Errorf("w and h must not be less than %d, got %d and %d", geometry.MinRawValue, cfg.Width, cfg.Height)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"param", cfg.Param},
		{"param2", cfg.Param2},
	} {
		if p.value != scaler.ParamDefault && (p.value < 0 || p.value > 100) {
			return fmt.Errorf("%s must be within [0, 100], got %v", p.name, p.value)
		}
	}
	if cfg.ChromaDrop < 0 || cfg.ChromaDrop > 3 {
		return fmt.Errorf("chr-drop must be within [0, 3], got %d", cfg.ChromaDrop)
	}
	if err := cfg.NoUpscale.Validate(); err != nil {
		return fmt.Errorf("noup: %w", err)
	}
	if !cfg.Algorithm.IsValid() {
		return fmt.Errorf("invalid sws: %v", cfg.Algorithm)
	}
	return nil
}

// Spec decodes the size request.
func (cfg Config) Spec() (geometry.Spec, error) {
	return geometry.ParseSpec(cfg.Width, cfg.Height)
}

// AddFlags binds the configuration to command line flags; the current
// values become the defaults.
func (cfg *Config) AddFlags(flags *pflag.FlagSet) {
	flags.IntVar(&cfg.Width, "w", cfg.Width, "output width; 0: display width, -1: source width, -2/-3: keep the display/source aspect, <= -8: the same rounded to 16")
	flags.IntVar(&cfg.Height, "h", cfg.Height, "output height; same encoding as --w")
	flags.Float64Var(&cfg.Param, "param", cfg.Param, "first algorithm parameter, [0, 100]")
	flags.Float64Var(&cfg.Param2, "param2", cfg.Param2, "second algorithm parameter, [0, 100]")
	flags.IntVar(&cfg.ChromaDrop, "chr-drop", cfg.ChromaDrop, "skip chroma lines of the source, [0, 3]")
	flags.IntVar((*int)(&cfg.NoUpscale), "noup", int(cfg.NoUpscale), "1: do not upscale if any axis grows, 2: only if both do")
	flags.BoolVar(&cfg.AccurateRounding, "arnd", cfg.AccurateRounding, "accurate rounding")
	flags.Var(&cfg.Algorithm, "sws", "scaling algorithm: fast-bilinear, bilinear, bicubic, x, point, area, bicublin, gauss, sinc, lanczos, spline")
}

// ParseConfigYAML parses a YAML document on top of DefaultConfig.
func ParseConfigYAML(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to parse the YAML config: %w", err)
	}
	return cfg, nil
}

var positionalOptions = []string{"w", "h", "param", "param2", "chr-drop", "noup", "arnd"}

// ParseOptions parses an option string like "w=640:h=-3:sws=lanczos" or
// its positional form "640:-3" on top of DefaultConfig. Positional values
// follow the order w, h, param, param2, chr-drop, noup, arnd and may not
// come after named ones.
func ParseOptions(s string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(s) == "" {
		return cfg, nil
	}

	named := false
	for idx, item := range strings.Split(s, ":") {
		key, value, hasValue := strings.Cut(item, "=")
		if !hasValue && key == "arnd" {
			value, hasValue = "yes", true
		}
		if !hasValue {
			if named {
				return Config{}, fmt.Errorf("positional option '%s' after named ones", item)
			}
			if idx >= len(positionalOptions) {
				return Config{}, fmt.Errorf("too many positional options: '%s'", s)
			}
			key, value = positionalOptions[idx], item
		} else {
			named = true
		}
		if err := cfg.setOption(key, value); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (cfg *Config) lookup(key string) (any, bool) {
	switch key {
	case "w":
		return &cfg.Width, true
	case "h":
		return &cfg.Height, true
	case "param":
		return &cfg.Param, true
	case "param2":
		return &cfg.Param2, true
	case "chr-drop":
		return &cfg.ChromaDrop, true
	case "noup":
		return (*int)(&cfg.NoUpscale), true
	case "arnd":
		return &cfg.AccurateRounding, true
	case "sws":
		return &cfg.Algorithm, true
	}
	return nil, false
}

func (cfg *Config) setOption(key, value string) error {
	ptr, ok := cfg.lookup(key)
	if !ok {
		return fmt.Errorf("unknown option '%s'", key)
	}
	switch ptr := ptr.(type) {
	case *int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value of '%s': %w", key, err)
		}
		*ptr = v
	case *float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value of '%s': %w", key, err)
		}
		*ptr = v
	case *bool:
		v, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value of '%s': %w", key, err)
		}
		*ptr = v
	case *scaler.Algorithm:
		if err := ptr.Set(value); err != nil {
			return fmt.Errorf("invalid value of '%s': %w", key, err)
		}
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
