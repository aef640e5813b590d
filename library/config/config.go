package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/library-resource/pkg/kafka"
	"github.com/Astemirdum/library-resource/pkg/logger"
	"github.com/Astemirdum/library-resource/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8060"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Database postgres.DB  `yaml:"db"`
	Kafka    kafka.Config `yaml:"kafka"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
// Options set defaults; environment variables that are present override them.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		c, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = c
		printConfig(cfg)
	})

	return cfg
}

func Load(ops ...Option) (*Config, error) {
	var config Config
	for _, op := range ops {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func printConfig(cfg *Config) {
	masked := *cfg
	if masked.Database.Password != "" {
		masked.Database.Password = "***"
	}
	jscfg, _ := json.MarshalIndent(masked, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
