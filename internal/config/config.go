package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type GateConfig struct {
	Env             string `yaml:"env"`
	HTTPServer      `yaml:"http_server"`
	GateDB          `yaml:"gate_db"`
	LogConfig       `yaml:"log_config"`
	KafkaService    `yaml:"kafka-service"`
	WeightStream    `yaml:"weight_stream"`
	Correlator      `yaml:"correlator"`
	Auth            `yaml:"auth"`
	PrintingService `yaml:"printing-service"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type GateDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"gate-events"`
}

type WeightStream struct {
	ListenAddr  string        `yaml:"listen_addr" env-default:"0.0.0.0:4660"`
	BridgePort  string        `yaml:"bridge_port" env-default:"4660"`
	Handshake   string        `yaml:"handshake" env-default:"START\n"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"3s"`
}

type Correlator struct {
	Wait   time.Duration `yaml:"wait" env-default:"8s"`
	ArmTTL time.Duration `yaml:"arm_ttl" env-default:"30s"`
	// TruckWindow is the rolling lookback for the trucks-at-gate view.
	TruckWindow time.Duration `yaml:"truck_window" env-default:"40s"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type PrintingService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

func MustLoad() *GateConfig {

	// Processing env config variable and file
	configPath := os.Getenv("GATE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("GATE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg GateConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
