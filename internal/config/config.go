package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string
	Debug      bool

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// 传感器模拟器
	SensorInterval time.Duration
	SensorPerturb  bool // 模拟事件是否随机扰动车位状态

	// Mock 数据
	Seed     bool
	RandSeed int64 // 0 表示使用当前时间
}

func Load() (*Config, error) {
	// 尝试加载 .env 文件（可选）
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:     getEnv("PORT", "5000"),
		Debug:          getEnvBool("DEBUG", false),
		JWTSecret:      getEnv("JWT_SECRET", "unipark-dev-secret"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 8*time.Hour),
		SensorInterval: getEnvDuration("SENSOR_INTERVAL", 2*time.Second),
		SensorPerturb:  getEnvBool("SENSOR_PERTURB", false),
		Seed:           getEnvBool("SEED", true),
		RandSeed:       getEnvInt64("RAND_SEED", 0),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
