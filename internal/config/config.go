// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找，环境变量覆盖文件中的值
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
	"github.com/caarlos0/env/v11"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName         string `toml:"appName" env:"RECKUE_APP_NAME"`                 // 应用名称，用于日志标识等
	Mode            string `toml:"mode" env:"RECKUE_MODE"`                        // 运行模式：dev / release
	Host            string `toml:"host" env:"RECKUE_HOST"`                        // 服务器监听地址，如 "0.0.0.0"
	Port            int    `toml:"port" env:"RECKUE_PORT"`                        // 服务器监听端口，如 8080
	ShutdownTimeout int    `toml:"shutdownTimeout" env:"RECKUE_SHUTDOWN_TIMEOUT"` // 优雅退出等待时间（秒）
}

// MysqlConfig MySQL 数据库连接配置
type MysqlConfig struct {
	Host         string `toml:"host" env:"RECKUE_MYSQL_HOST"`
	Port         int    `toml:"port" env:"RECKUE_MYSQL_PORT"`
	User         string `toml:"user" env:"RECKUE_MYSQL_USER"`
	Password     string `toml:"password" env:"RECKUE_MYSQL_PASSWORD"`
	DatabaseName string `toml:"databaseName" env:"RECKUE_MYSQL_DATABASE"`
	MaxIdleConns int    `toml:"maxIdleConns" env:"RECKUE_MYSQL_MAX_IDLE"`
	MaxOpenConns int    `toml:"maxOpenConns" env:"RECKUE_MYSQL_MAX_OPEN"`
	LogLevel     string `toml:"logLevel" env:"RECKUE_MYSQL_LOG_LEVEL"` // GORM 日志级别：silent, error, warn, info
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host" env:"RECKUE_REDIS_HOST"`
	Port     int    `toml:"port" env:"RECKUE_REDIS_PORT"`
	Password string `toml:"password" env:"RECKUE_REDIS_PASSWORD"` // 无密码留空
	Db       int    `toml:"db" env:"RECKUE_REDIS_DB"`
	PoolSize int    `toml:"poolSize" env:"RECKUE_REDIS_POOL_SIZE"`
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath" env:"RECKUE_LOG_PATH"`       // 日志文件存储目录
	FileName   string `toml:"fileName" env:"RECKUE_LOG_FILE"`      // 日志文件名
	MaxSize    int    `toml:"maxSize" env:"RECKUE_LOG_MAX_SIZE"`   // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups" env:"RECKUE_LOG_BACKUPS"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge" env:"RECKUE_LOG_MAX_AGE"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level" env:"RECKUE_LOG_LEVEL"`        // 日志级别：debug, info, warn, error
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret             string `toml:"secret" env:"RECKUE_JWT_SECRET"`                     // JWT 签名密钥，建议 32 字符以上
	Issuer             string `toml:"issuer" env:"RECKUE_JWT_ISSUER"`                     // 签发方
	AccessTokenExpiry  int    `toml:"accessTokenExpiry" env:"RECKUE_JWT_ACCESS_EXPIRY"`   // Access Token 有效期（分钟）
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry" env:"RECKUE_JWT_REFRESH_EXPIRY"` // Refresh Token 有效期（小时）
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins     []string `toml:"allowOrigins" env:"RECKUE_CORS_ORIGINS" envSeparator:","`
	AllowCredentials bool     `toml:"allowCredentials" env:"RECKUE_CORS_CREDENTIALS"`
	MaxAge           int      `toml:"maxAge" env:"RECKUE_CORS_MAX_AGE"` // 预检缓存时间（小时）
}

// SecurityConfig 安全响应头配置（unrolled/secure）
type SecurityConfig struct {
	SSLRedirect bool   `toml:"sslRedirect" env:"RECKUE_SSL_REDIRECT"` // 由 Nginx 终止 TLS 时保持关闭
	SSLHost     string `toml:"sslHost" env:"RECKUE_SSL_HOST"`
	STSSeconds  int64  `toml:"stsSeconds" env:"RECKUE_STS_SECONDS"`
}

// BootstrapConfig 初始管理员账号，仅在 migrate 命令中使用
type BootstrapConfig struct {
	AdminUsername string `toml:"adminUsername" env:"RECKUE_ADMIN_USERNAME"`
	AdminEmail    string `toml:"adminEmail" env:"RECKUE_ADMIN_EMAIL"`
	AdminPassword string `toml:"adminPassword" env:"RECKUE_ADMIN_PASSWORD"`
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	JWTConfig       `toml:"jwtConfig"`
	CORSConfig      `toml:"corsConfig"`
	SecurityConfig  `toml:"securityConfig"`
	BootstrapConfig `toml:"bootstrapConfig"`
}

// searchPaths 候选配置文件路径（优先加载本地配置）
var searchPaths = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml", // 从子目录运行时的路径
	"../../configs/config.toml",
}

// Default 返回开发环境可直接使用的默认配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName:         "reckue_account",
			Mode:            "dev",
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10,
		},
		MysqlConfig: MysqlConfig{
			Host:         "127.0.0.1",
			Port:         3306,
			User:         "root",
			DatabaseName: "reckue_account",
			MaxIdleConns: 5,
			MaxOpenConns: 50,
			LogLevel:     "warn",
		},
		RedisConfig: RedisConfig{
			Host:     "127.0.0.1",
			Port:     6379,
			PoolSize: 50,
		},
		LogConfig: LogConfig{
			LogPath:    "logs",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Level:      "info",
		},
		JWTConfig: JWTConfig{
			Secret:             "dev-secret-change-me-in-production",
			Issuer:             "reckue_account",
			AccessTokenExpiry:  30,
			RefreshTokenExpiry: 168,
		},
		CORSConfig: CORSConfig{
			AllowOrigins: []string{"*"},
			MaxAge:       12,
		},
	}
}

// Load 加载配置（优先级：环境变量 > 配置文件 > 默认值）
// path 为空时按 searchPaths 顺序查找，全部缺失时仅使用默认值
func Load(path string) (*Config, error) {
	conf := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	} else {
		for _, p := range searchPaths {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if _, err := toml.DecodeFile(p, conf); err != nil {
				return nil, fmt.Errorf("decode config %s: %w", p, err)
			}
			break
		}
	}

	if err := env.Parse(conf); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate 校验启动所必需的配置项
func (c *Config) Validate() error {
	if c.JWTConfig.Secret == "" {
		return errors.New("jwtConfig.secret must not be empty")
	}
	if c.JWTConfig.AccessTokenExpiry <= 0 || c.JWTConfig.RefreshTokenExpiry <= 0 {
		return errors.New("jwtConfig token expiry must be positive")
	}
	if c.BootstrapConfig.AdminUsername != "" && c.BootstrapConfig.AdminEmail == "" {
		return errors.New("bootstrapConfig.adminEmail is required when adminUsername is set")
	}
	if c.MainConfig.Port <= 0 {
		return fmt.Errorf("mainConfig.port %d is invalid", c.MainConfig.Port)
	}
	return nil
}

// IsRelease 判断当前是否生产模式
func (c *Config) IsRelease() bool {
	return c.MainConfig.Mode == "release"
}

// Addr 服务监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.MainConfig.Host, c.MainConfig.Port)
}

// MysqlDSN 构建 MySQL DSN 连接字符串
// 格式：user:password@tcp(host:port)/database?params
func (c *Config) MysqlDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.MysqlConfig.User,
		c.MysqlConfig.Password,
		c.MysqlConfig.Host,
		c.MysqlConfig.Port,
		c.MysqlConfig.DatabaseName,
	)
}

// Address 拼接 Redis 地址：host:port
func (r *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AccessTokenTTL Access Token 有效期
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWTConfig.AccessTokenExpiry) * time.Minute
}

// RefreshTokenTTL Refresh Token 有效期
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.JWTConfig.RefreshTokenExpiry) * time.Hour
}
