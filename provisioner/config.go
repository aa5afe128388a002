package provisioner

import (
	"fmt"
	"os"

	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/envvar"
)

const (
	ConfigFileName = "firehosegen.yaml"

	// ConfigFileNameTOML is tried when the YAML file does not exist.
	ConfigFileNameTOML = "firehosegen.toml"
)

// GetConfig reads the firehosegen configuration and returns everything
// needed to resolve and deliver the provisioning document.
//
// It reads the firehosegen.yaml (or firehosegen.toml) file from the
// current working directory. The whole configuration can alternatively
// be passed via the FIREHOSEGEN_RAW_CONFIG environment variable, which
// is how CI systems inject it without checking the file in.
func GetConfig() (*config.Config, error) {
	if v := os.Getenv(envvar.RawConfig); v != "" {
		return config.ParseString(v)
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		return config.Load(ConfigFileName)
	}

	if _, err := os.Stat(ConfigFileNameTOML); err == nil {
		return config.Load(ConfigFileNameTOML)
	}

	return nil, fmt.Errorf("unable to find %s or %s in the current directory", ConfigFileName, ConfigFileNameTOML)
}
