package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MATHTUTOR_APP"

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	MathTutorAPI struct {
		BaseURL           string `mapstructure:"base_url"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
		OCRTimeoutSeconds int    `mapstructure:"ocr_timeout_seconds"`
		APIKey            string `mapstructure:"api_key"`
		DebugRequests     bool   `mapstructure:"debug_requests"`
	} `mapstructure:"mathtutor_api"`
	Upload struct {
		MaxFileSizeBytes   int64 `mapstructure:"max_file_size_bytes"`
		ProgressIntervalMs int   `mapstructure:"progress_interval_ms"`
	} `mapstructure:"upload"`
	Directory struct {
		DefaultPageSize int `mapstructure:"default_page_size"`
	} `mapstructure:"directory"`
	Workspace struct {
		IdleTTLMinutes int `mapstructure:"idle_ttl_minutes"`
	} `mapstructure:"workspace"`
	Labels struct {
		JSONPath string `mapstructure:"json_path"`
	} `mapstructure:"labels"`
}

func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.Upload.ProgressIntervalMs) * time.Millisecond
}

func (c *Config) OCRTimeout() time.Duration {
	return time.Duration(c.MathTutorAPI.OCRTimeoutSeconds) * time.Second
}

func (c *Config) IdleTTL() time.Duration {
	return time.Duration(c.Workspace.IdleTTLMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("mathtutor_api.base_url", "http://localhost:8000")
	v.SetDefault("mathtutor_api.timeout_seconds", 10)
	v.SetDefault("mathtutor_api.ocr_timeout_seconds", 60)
	v.SetDefault("mathtutor_api.api_key", "")
	v.SetDefault("mathtutor_api.debug_requests", false)
	v.SetDefault("upload.max_file_size_bytes", 5<<20)
	v.SetDefault("upload.progress_interval_ms", 200)
	v.SetDefault("directory.default_page_size", 20)
	v.SetDefault("workspace.idle_ttl_minutes", 30)
	v.SetDefault("labels.json_path", "")
}

// flagKeys 是可以由命令行覆盖的配置项。
var flagKeys = map[string]string{
	"port":     "server.port",
	"base-url": "mathtutor_api.base_url",
}

// Load 读取配置：.env → config.yaml（或 configFile）→ MATHTUTOR_APP_* 环境变量 → 命令行参数，后者优先。
// flags 可以为 nil。
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，跳过。")
	}

	v := viper.New()
	setDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("绑定命令行参数 %s 失败: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("警告：未找到 config.yaml 文件，将完全依赖环境变量进行配置。")
		} else {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if cfg.MathTutorAPI.BaseURL == "" {
		return nil, errors.New("mathtutor_api.base_url 不能为空")
	}
	return &cfg, nil
}
