// Package params resolves default object parameters from their three
// sources: a user configuration file, constructor options, and call-site
// overrides. Later sources win key-by-key; the merge is shallow.
package params

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	ftperrors "github.com/dudrev/s3ftp/errors"
)

// ConfigName is the base name of the configuration file holding default
// object parameters. The file is JSON and is searched for in the current
// working directory, then the user's home directory.
const ConfigName = ".s3ftp"

// Params maps object parameter names to values. Keys follow the names of
// the corresponding S3 request fields (ServerSideEncryption, ACL,
// StorageClass, Metadata, ...). Matching is case-insensitive so values
// loaded from a config file resolve the same as literal keys.
type Params map[string]any

// Merge combines parameter sources in increasing precedence order: for a
// key present in several sources the value from the last source wins.
// Keys are canonicalized to lower case, so sources whose keys differ only
// in case (a literal "ACL" over a config file's "acl") collide on one key
// instead of racing on map iteration order. Keys absent from every source
// are absent from the result. Merge never returns nil.
func Merge(sources ...Params) Params {
	merged := Params{}
	for _, src := range sources {
		for k, v := range src {
			merged[strings.ToLower(k)] = v
		}
	}
	return merged
}

// Lookup returns the value for name using case-insensitive key matching.
func (p Params) Lookup(name string) (any, bool) {
	if v, ok := p[name]; ok {
		return v, true
	}
	for k, v := range p {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// Load searches for the configuration file in the current working
// directory, then the home directory. A missing file yields empty Params;
// a file that exists but cannot be parsed is a configuration error.
func Load(fsys afero.Fs) (Params, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigName(ConfigName)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	return read(v)
}

// LoadFile reads default object parameters from an explicit file path.
// Unlike Load, a missing file is an error here: the caller asked for it.
func LoadFile(fsys afero.Fs, path string) (Params, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	return read(v)
}

func read(v *viper.Viper) (Params, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return Params{}, nil
		}
		return nil, ftperrors.New("loadConfig", ftperrors.ErrConfiguration).
			WithMessage(err.Error())
	}
	return Params(v.AllSettings()), nil
}
