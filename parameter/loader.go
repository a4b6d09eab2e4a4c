package parameter

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment keys read by the executables
const (
	EnvConfig   = "GUARDIAN_CONFIG"
	EnvSeed     = "GUARDIAN_SEED"
	EnvDebug    = "GUARDIAN_DEBUG"
	EnvSpectate = "GUARDIAN_SPECTATE"
)

// Load reads a TOML file on top of Default, then sanitizes and validates
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	s, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return s, nil
}

// Parse decodes TOML text on top of Default
// Enemy and weapon tables merge field-wise onto the stock profile of the same name
func Parse(data string) (*Settings, error) {
	s := Default()
	md, err := toml.Decode(data, s)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	var raw struct {
		Enemies map[string]toml.Primitive `toml:"enemies"`
		Weapons map[string]toml.Primitive `toml:"weapons"`
	}
	rawMD, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode profiles")
	}
	stock := Default()
	for name, prim := range raw.Enemies {
		p := stock.Enemies[name]
		if err := rawMD.PrimitiveDecode(prim, &p); err != nil {
			return nil, errors.Wrapf(err, "enemy %q", name)
		}
		s.Enemies[name] = p
	}
	for name, prim := range raw.Weapons {
		p := stock.Weapons[name]
		if err := rawMD.PrimitiveDecode(prim, &p); err != nil {
			return nil, errors.Wrapf(err, "weapon %q", name)
		}
		s.Weapons[name] = p
	}

	s.Sanitize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadDotEnv loads .env files into the process environment without overriding set variables
// Missing files are not an error
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return errors.Wrapf(err, "load %s", p)
		}
	}
	return nil
}

// Launch carries the process-level options shared by the executables
type Launch struct {
	Config   string
	Seed     uint64
	Debug    bool
	Spectate string
}

// ApplyEnv overrides fields whose GUARDIAN_* variable is set
func (l *Launch) ApplyEnv() {
	l.Config = envString(EnvConfig, l.Config)
	l.Seed = envUint64(EnvSeed, l.Seed)
	l.Debug = envBool(EnvDebug, l.Debug)
	l.Spectate = envString(EnvSpectate, l.Spectate)
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// envBool parses a boolean variable, def on absence or parse failure
func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// envUint64 parses an unsigned variable, def on absence or parse failure
func envUint64(key string, def uint64) uint64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
