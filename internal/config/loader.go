package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/molforge/internal/domain/druglike"
)

// envPrefix is the prefix of every environment override.
const envPrefix = "MOLFORGE"

// newViper builds a Viper instance with YAML file type, the MOLFORGE_ env
// prefix and a "." to "_" key replacer so that "chem.driver" resolves to
// MOLFORGE_CHEM_DRIVER. Every key of Config is bound explicitly because
// AutomaticEnv alone is invisible to Unmarshal for keys absent from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v, reflect.TypeOf(Config{}), "")
	setRuleDefaults(v)
	return v
}

// setRuleDefaults registers the published cut-offs so that a file or
// environment overriding a single threshold keeps the others.
func setRuleDefaults(v *viper.Viper) {
	d := druglike.DefaultThresholds()
	v.SetDefault("rules.lipinski.max_h_bond_donors", d.Lipinski.MaxHBondDonors)
	v.SetDefault("rules.lipinski.max_h_bond_acceptors", d.Lipinski.MaxHBondAcceptors)
	v.SetDefault("rules.lipinski.max_molecular_weight", d.Lipinski.MaxMolecularWeight)
	v.SetDefault("rules.lipinski.max_logp", d.Lipinski.MaxLogP)
	v.SetDefault("rules.ghose.min_molecular_weight", d.Ghose.MinMolecularWeight)
	v.SetDefault("rules.ghose.max_molecular_weight", d.Ghose.MaxMolecularWeight)
	v.SetDefault("rules.ghose.min_logp", d.Ghose.MinLogP)
	v.SetDefault("rules.ghose.max_logp", d.Ghose.MaxLogP)
	v.SetDefault("rules.ghose.max_rotatable_bonds", d.Ghose.MaxRotatableBonds)
	v.SetDefault("rules.ghose.max_aromatic_rings", d.Ghose.MaxAromaticRings)
	v.SetDefault("rules.veber.max_rotatable_bonds", d.Veber.MaxRotatableBonds)
	v.SetDefault("rules.veber.max_molecular_weight", d.Veber.MaxMolecularWeight)
}

// bindEnvKeys walks the mapstructure tags of t and binds each leaf key.
func bindEnvKeys(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct && f.Type.String() != "time.Time" {
			bindEnvKeys(v, f.Type, key)
			continue
		}
		_ = v.BindEnv(key)
	}
}

// Load reads the YAML file at configPath, merges MOLFORGE_* overrides,
// applies defaults and validates the result. An empty path is LoadFromEnv.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from MOLFORGE_* variables and defaults only.
//
//	MOLFORGE_<SECTION>_<FIELD>   e.g.  MOLFORGE_CHEM_ENDPOINT, MOLFORGE_REDIS_ENABLED
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch re-reads configPath whenever it changes on disk and hands the new
// Config to onChange. A change that fails to parse or validate goes to
// onError instead (when non-nil) and onChange is not called. Watch returns
// after the initial read; viper runs the watcher in the background.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is Load that panics on error. Use it only in main.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
