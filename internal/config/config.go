package config

import (
	"github.com/spf13/viper"
	"github.com/wasilah/csr/internal/logger"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SchedulerConfig 后台任务配置
type SchedulerConfig struct {
	Interval        int `mapstructure:"interval"`         // 任务执行间隔（秒）
	ReportIncrement int `mapstructure:"report_increment"` // 报告生成每轮推进的百分比
	DraftTTLHours   int `mapstructure:"draft_ttl_hours"`  // 草稿闲置多久后清理（小时）
}

// UploadConfig 上传校验配置
type UploadConfig struct {
	MaxSizeMB    int      `mapstructure:"max_size_mb"`   // 单文件大小上限（MB）
	AllowedTypes []string `mapstructure:"allowed_types"` // 允许的扩展名
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/csr")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "csr")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("scheduler.interval", 5)
	viper.SetDefault("scheduler.report_increment", 20)
	viper.SetDefault("scheduler.draft_ttl_hours", 72)
	viper.SetDefault("upload.max_size_mb", 25)
	viper.SetDefault("upload.allowed_types", []string{"jpg", "jpeg", "png", "mp4", "pdf", "docx"})
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
