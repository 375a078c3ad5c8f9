// Package config reads the program settings with viper. Settings come from
// darwinsheet.yaml (in the home directory or the working directory, or the
// file given with --config) and from DARWINSHEET_ environment variables.
package config

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/vocab"
)

const (
	ConfigName = "darwinsheet"
	EnvPrefix  = "DARWINSHEET"
)

// DefaultVocabularies are the Darwin Core and Dublin Core term files looked
// for in the config directory.
var DefaultVocabularies = []string{"dwcterms.rdf", "dcterms.rdf"}

// Settings are the runtime settings.
type Settings struct {
	Setup        string   `mapstructure:"setup"`
	HeaderRow    int      `mapstructure:"header_row"`
	Vocabularies []string `mapstructure:"vocabularies"`
	// DefaultVocabularies loads those of DefaultVocabularies that exist in
	// Dir before the configured vocabularies.
	DefaultVocabularies bool   `mapstructure:"default_vocabularies"`
	GearTypesFile       string `mapstructure:"gear_types_file"`
	SampleTypesFile     string `mapstructure:"sample_types_file"`
	LogLevel            string `mapstructure:"log_level"`
	LogFile             string `mapstructure:"log_file"`
	Listen              string `mapstructure:"listen"`

	// Setups holds the built in setups with the configured ones applied on
	// top. Fields holds extra or replacement field declarations.
	Setups Setups               `mapstructure:"-"`
	Fields []fields.Declaration `mapstructure:"-"`

	// Dir is the directory of the config file, or the working directory
	// when no config file was read. Relative vocabulary and list paths are
	// taken from here.
	Dir string `mapstructure:"-"`
}

// SetDefaults registers the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("setup", "aen")
	v.SetDefault("header_row", 3)
	v.SetDefault("vocabularies", []string{})
	v.SetDefault("default_vocabularies", true)
	v.SetDefault("gear_types_file", "")
	v.SetDefault("sample_types_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("listen", ":8080")
}

// Init points v at the config file and the environment. An empty cfgFile
// searches for darwinsheet.yaml in the home directory and then in the
// working directory. A missing config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(ConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return errors.Wrap(err, "unable to read config")
	}
	return nil
}

var listHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToSliceHookFunc(","),
)

// Load reads the settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s, viper.DecodeHook(listHook)); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}

	setups, err := loadSetups(v)
	if err != nil {
		return nil, err
	}
	s.Setups = setups

	s.Dir = "."
	if f := v.ConfigFileUsed(); f != "" {
		s.Dir = filepath.Dir(f)
	}

	if v.IsSet("fields") {
		if err := v.UnmarshalKey("fields", &s.Fields, viper.DecodeHook(listHook)); err != nil {
			return nil, errors.Wrap(err, "unable to decode fields")
		}
	}

	return &s, nil
}

// loadSetups applies the configured setups on top of the built in ones. A
// configured setup with the name of a built in one only changes the keys it
// sets, so a config file can replace the required list of "aen" and keep
// the rest.
func loadSetups(v *viper.Viper) (Setups, error) {
	setups := Setups(DefaultSetups())
	if !v.IsSet("setups") {
		return setups, nil
	}

	var raw []map[string]interface{}
	if err := v.UnmarshalKey("setups", &raw); err != nil {
		return nil, errors.Wrap(err, "unable to decode setups")
	}

	var setupErrs *multierror.Error
	for i, m := range raw {
		name := cast.ToString(m["name"])
		if name == "" {
			setupErrs = multierror.Append(setupErrs, errors.Errorf("setup %d has no name", i+1))
			continue
		}

		setup := setups[name]
		// Lists given for a known setup replace the built in ones.
		for key, list := range map[string]*[]string{
			"required":    &setup.Required,
			"extrasheet":  &setup.ExtraSheets,
			"gear_exempt": &setup.GearExempt,
		} {
			if _, ok := m[key]; ok {
				*list = nil
			}
		}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       listHook,
			WeaklyTypedInput: true,
			Result:           &setup,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(m); err != nil {
			setupErrs = multierror.Append(setupErrs, errors.Wrapf(err, "setup '%s'", name))
			continue
		}
		setups[name] = setup
	}

	return setups, setupErrs.ErrorOrNil()
}

// Catalogue builds the field catalogue the settings describe: the built in
// fields with the configured declarations applied, the gear and sample type
// lists, and the vocabulary files.
func (s *Settings) Catalogue(fs afero.Fs) (*fields.Catalogue, error) {
	lists, err := fields.LoadLists(fs, s.path(s.GearTypesFile), s.path(s.SampleTypesFile))
	if err != nil {
		return nil, err
	}

	var overrides []fields.Field
	var declErrs *multierror.Error
	for _, d := range s.Fields {
		f, err := d.Field()
		if err != nil {
			declErrs = multierror.Append(declErrs, err)
			continue
		}
		overrides = append(overrides, f)
	}
	if err := declErrs.ErrorOrNil(); err != nil {
		return nil, err
	}

	vocabularies, err := s.vocabularies(fs)
	if err != nil {
		return nil, err
	}

	var terms [][]vocab.Term
	for _, path := range vocabularies {
		t, err := vocab.LoadFiles(fs, path)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}

	return fields.NewCatalogue(fields.Merge(fields.Defaults(lists), overrides), terms...)
}

// vocabularies lists the vocabulary files to load. A default vocabulary
// that doesn't exist is skipped, a configured one has to exist.
func (s *Settings) vocabularies(fs afero.Fs) ([]string, error) {
	var paths []string
	if s.DefaultVocabularies {
		for _, name := range DefaultVocabularies {
			path := s.path(name)
			ok, err := afero.Exists(fs, path)
			if err != nil {
				return nil, errors.Wrapf(err, "vocabulary %s", path)
			}
			if ok {
				paths = append(paths, path)
			}
		}
	}
	for _, p := range s.Vocabularies {
		paths = append(paths, s.path(p))
	}
	return paths, nil
}

// path resolves a relative path against Dir. Empty paths stay empty.
func (s *Settings) path(p string) string {
	if p == "" || filepath.IsAbs(p) || s.Dir == "" {
		return p
	}
	return filepath.Join(s.Dir, p)
}
