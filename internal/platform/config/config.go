package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	// Driver 选择关系型存储的驱动: "sqlite" 或 "postgres"
	Driver   string         `mapstructure:"driver"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SqliteConfig 定义了SQLite的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig 定义了PostgreSQL的配置
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GameConfig 定义了游戏模拟核心的可调参数
type GameConfig struct {
	// CronSecret 是外部调度器触发cron端点时必须携带的密钥
	CronSecret string `mapstructure:"cronSecret"`

	// SpreadIntervalMinutes 是扩散模拟的执行间隔（分钟）
	SpreadIntervalMinutes int `mapstructure:"spreadIntervalMinutes"`

	// BossWeekday 是每周Boss生成的星期几 (0=周日)
	BossWeekday int `mapstructure:"bossWeekday"`

	// SchedulerEnabled 控制是否启动进程内调度器
	// 部署在外部调度器（仅调用cron端点）后面时应设为false
	SchedulerEnabled bool `mapstructure:"schedulerEnabled"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 GAME_CRONSECRET=xxx
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 合理的默认值，保证配置文件缺项时也能启动
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "mascodex.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("game.spreadIntervalMinutes", 60)
	v.SetDefault("game.bossWeekday", 0)
	v.SetDefault("game.schedulerEnabled", true)

	// 5. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
