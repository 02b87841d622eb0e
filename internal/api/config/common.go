package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// RateLimitConfig 投票/上传接口的固定窗口限流配置
type RateLimitConfig struct {
	VoteLimit     int `mapstructure:"vote_limit"`
	UploadLimit   int `mapstructure:"upload_limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}
