package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Payment  PaymentConfig  `mapstructure:"payment"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres | mysql
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogSQL       bool   `mapstructure:"log_sql"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GatewayConfig SabPaisa 商户参数，AuthKey 与 Password 不得写入日志
type GatewayConfig struct {
	InitURL     string `mapstructure:"init_url"`
	ClientCode  string `mapstructure:"client_code"`
	AuthKey     string `mapstructure:"auth_key"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	CallbackURL string `mapstructure:"callback_url"`
}

type PaymentConfig struct {
	InitLockSeconds int `mapstructure:"init_lock_seconds"`
}

const DefaultInitURL = "https://stage-secure.sabpaisa.in/SabPaisa/sabPaisaInit"

var (
	ErrMissingClientCode = errors.New("gateway.client_code is required")
	ErrMissingAuthKey    = errors.New("gateway.auth_key is required")
)

// 每个配置项除了 GATEWAY_AUTH_KEY 这类标准名称外，还兼容旧部署使用的扁平变量名
var envAliases = map[string][]string{
	"server.port":          {"PORT"},
	"database.dsn":         {"DATABASE_URL"},
	"gateway.client_code":  {"SABPAISA_CLIENT_CODE"},
	"gateway.auth_key":     {"SABPAISA_AUTH_KEY"},
	"gateway.username":     {"SABPAISA_USERNAME"},
	"gateway.password":     {"SABPAISA_PASSWORD"},
	"gateway.callback_url": {"SABPAISA_CALLBACK_URL"},
	"gateway.init_url":     {"SABPAISA_INIT_URL"},
}

var defaults = map[string]interface{}{
	"server.port":               5000,
	"database.driver":           "postgres",
	"database.dsn":              "",
	"database.max_open_conns":   20,
	"database.max_idle_conns":   5,
	"database.log_sql":          false,
	"redis.enabled":             false,
	"redis.host":                "localhost",
	"redis.port":                6379,
	"redis.password":            "",
	"redis.db":                  0,
	"gateway.init_url":          DefaultInitURL,
	"gateway.client_code":       "",
	"gateway.auth_key":          "",
	"gateway.username":          "",
	"gateway.password":          "",
	"gateway.callback_url":      "",
	"payment.init_lock_seconds": 10,
}

// LoadConfig 加载配置：.env -> yaml 文件 -> 环境变量，后者覆盖前者。
// configPath 为空或文件不存在时只使用默认值和环境变量。
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key := range defaults {
		names := append([]string{strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, envAliases[key]...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("绑定环境变量失败: %w", err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查网关签名所必需的参数
func (c *Config) Validate() error {
	if c.Gateway.ClientCode == "" {
		return ErrMissingClientCode
	}
	if c.Gateway.AuthKey == "" {
		return ErrMissingAuthKey
	}
	return nil
}
