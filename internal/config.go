package internal

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      RunEnv `envconfig:"ENV" default:"development"`
	EchoAddr string `envconfig:"ECHO_ADDR" default:":8080"`

	// GraphDB triplestore settings
	TriplestoreUrl      string `envconfig:"TRIPLESTORE_URL" default:"http://graphdb:7200"`
	TriplestoreRepo     string `envconfig:"TRIPLESTORE_REPOSITORY" default:"sbekms"`
	TriplestoreUser     string `envconfig:"TRIPLESTORE_USERNAME" default:""`
	TriplestorePassword string `envconfig:"TRIPLESTORE_PASSWORD" default:""`

	// Ontology namespaces
	WdoNamespace      string `envconfig:"WDO_NAMESPACE" default:"http://purl.example.org/web_dev_km_bfo#"`
	InstanceNamespace string `envconfig:"INSTANCE_NAMESPACE" default:"http://sbekms.example.org/instances/"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
