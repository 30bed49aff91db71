package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Kiosk    KioskConfig    `mapstructure:"kiosk"`
	Queue    QueueConfig    `mapstructure:"queue"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置（管理员令牌黑名单与限流）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 管理员会话 JWT 配置
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenTTL    time.Duration `mapstructure:"access_token_ttl"`
	LoginRateLimit    int           `mapstructure:"login_rate_limit"`    // 每分钟每 IP 登录尝试次数
	CheckoutRateLimit int           `mapstructure:"checkout_rate_limit"` // 每分钟每 IP 按座位退室次数（可用管理员密码）
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// KioskConfig 自习室运营参数
type KioskConfig struct {
	OpenHour             int    `mapstructure:"open_hour"`
	CloseHour            int    `mapstructure:"close_hour"`
	SlotMinutes          int    `mapstructure:"slot_minutes"`
	StudyRoomCount       int    `mapstructure:"study_room_count"`
	BookingWindowDays    int    `mapstructure:"booking_window_days"`
	StudentIDMaxUnits    int    `mapstructure:"student_id_max_units"` // 学号登录时的最长预约单位数
	InitialAdminPassword string `mapstructure:"initial_admin_password"`
	Timezone             string `mapstructure:"timezone"`
}

// Location 解析运营时区
func (c *KioskConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// QueueConfig RabbitMQ 事件队列配置；URL 为空时不发布事件
type QueueConfig struct {
	URL  string `mapstructure:"url"`
	Name string `mapstructure:"name"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "sanghak")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Seoul")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "2h")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.checkout_rate_limit", 30)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("kiosk.open_hour", 9)
	v.SetDefault("kiosk.close_hour", 22)
	v.SetDefault("kiosk.slot_minutes", 30)
	v.SetDefault("kiosk.study_room_count", 2)
	v.SetDefault("kiosk.booking_window_days", 7)
	v.SetDefault("kiosk.student_id_max_units", 2)
	v.SetDefault("kiosk.initial_admin_password", "1111")
	v.SetDefault("kiosk.timezone", "Asia/Seoul")

	v.SetDefault("queue.url", "")
	v.SetDefault("queue.name", "ledger.events")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("SANGHAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}

	k := c.Kiosk
	if k.OpenHour < 0 || k.CloseHour > 24 || k.OpenHour >= k.CloseHour {
		return fmt.Errorf("配置校验失败: kiosk.open_hour/close_hour 范围无效")
	}
	if k.SlotMinutes <= 0 || 60%k.SlotMinutes != 0 {
		return fmt.Errorf("配置校验失败: kiosk.slot_minutes 必须能整除 60")
	}
	if k.StudyRoomCount < 1 {
		return fmt.Errorf("配置校验失败: kiosk.study_room_count 至少为 1")
	}
	if k.BookingWindowDays < 1 {
		return fmt.Errorf("配置校验失败: kiosk.booking_window_days 至少为 1")
	}
	if _, err := k.Location(); err != nil {
		return fmt.Errorf("配置校验失败: kiosk.timezone 无效: %w", err)
	}
	return nil
}
