package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Bun        BunConfig
	Redis      RedisConfig
	LoggerMode LoggerMode
}

type Server struct {
	Port        string
	Environment string

	// DeviceLimit is the maximum number of devices one identity may hold.
	// Single-device deployments set this to 1.
	DeviceLimit int

	// PreKeyLimit caps unconsumed one-time prekeys per device.
	PreKeyLimit int

	// MaxContentBytes bounds the size of a relayed ciphertext blob.
	MaxContentBytes int
}

type BunConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr string
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.deviceLimit", 3)
	v.SetDefault("server.preKeyLimit", 100)
	v.SetDefault("server.maxContentBytes", 65536)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
