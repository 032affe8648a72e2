// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Google        GoogleConfig        `mapstructure:"google"`
	RTC           RTCConfig           `mapstructure:"rtc"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// KafkaConfig 存储 Kafka 相关的配置。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// ElasticsearchConfig 存储 Elasticsearch 相关的配置。
type ElasticsearchConfig struct {
	Addresses string `mapstructure:"addresses"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	IndexName string `mapstructure:"index_name"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// LLMConfig 存储文本补全网关相关的配置。
type LLMConfig struct {
	APIKey string `mapstructure:"api_key"`
	// BaseURL 形如 https://openrouter.ai/api/v1
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	// RequestTimeoutSeconds 限制单次补全调用；TurnTimeoutSeconds 限制
	// 整个对话轮次（回复 + 三次标注 + 落库）。
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
	TurnTimeoutSeconds    int `mapstructure:"turn_timeout_seconds"`
	// ClassifierLenient 为 true 时，分类器返回标签集之外的文本也按原样接受
	// （仅去除首尾空白）。默认 false：越界标签视为上游契约违规，整轮失败。
	ClassifierLenient bool `mapstructure:"classifier_lenient"`
}

// TranscriptionConfig 存储语音转写服务（whisper 兼容接口）的配置。
type TranscriptionConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// GoogleConfig 存储 Google OAuth 与日历集成的配置。
// AuthURL / TokenURL / CalendarBaseURL 通常留空使用官方端点，测试时可指向本地假服务。
type GoogleConfig struct {
	ClientID        string `mapstructure:"client_id"`
	ClientSecret    string `mapstructure:"client_secret"`
	RedirectURL     string `mapstructure:"redirect_url"`
	AuthURL         string `mapstructure:"auth_url"`
	TokenURL        string `mapstructure:"token_url"`
	CalendarBaseURL string `mapstructure:"calendar_base_url"`
	// FrontendURL 是 OAuth 回调成功后跳转的前端地址。
	FrontendURL string `mapstructure:"frontend_url"`
	Timezone    string `mapstructure:"timezone"`
}

// RTCConfig 存储视频通话令牌签发的配置。
type RTCConfig struct {
	AppID         string `mapstructure:"app_id"`
	Secret        string `mapstructure:"secret"`
	ExpireSeconds int    `mapstructure:"expire_seconds"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}
