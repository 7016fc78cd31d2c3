package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"budgetcache.app/pkg/errors"
)

const (
	maxRedisDB    = 15
	maxPortNumber = 65535
	maxPenalty    = 100
)

// Config represents the application configuration structure
type Config struct {
	Server      ServerConfig      `split_words:"true"`
	Database    DatabaseConfig    `split_words:"true"`
	Cache       CacheConfig       `split_words:"true"`
	Prefetch    PrefetchConfig    `split_words:"true"`
	Performance PerformanceConfig `split_words:"true"`
	DeadLetter  DeadLetterConfig  `split_words:"true"`
	Sampler     SamplerConfig     `split_words:"true"`
	Log         LogConfig         `split_words:"true"`
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        int    `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"budget"`
	SSLMode     string `envconfig:"DB_SSL_MODE" default:"disable"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type CacheConfig struct {
	Capacity             int           `envconfig:"CACHE_CAPACITY" default:"100"`
	TTL                  time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	WarmTTL              time.Duration `envconfig:"CACHE_WARM_TTL" default:"15m"`
	WarmStagger          time.Duration `envconfig:"CACHE_WARM_STAGGER" default:"100ms"`
	CleanupInterval      time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"1m"`
	CompressionEnabled   bool          `envconfig:"CACHE_COMPRESSION_ENABLED" default:"true"`
	CompressionThreshold int           `envconfig:"CACHE_COMPRESSION_THRESHOLD" default:"1024"`
	CommonPaymentMethods []string      `envconfig:"CACHE_COMMON_PAYMENT_METHODS" default:"cash,credit,debit"`
	SingleFlight         bool          `envconfig:"CACHE_SINGLE_FLIGHT" default:"false"`
}

type PrefetchConfig struct {
	Enabled   bool          `envconfig:"PREFETCH_ENABLED" default:"true"`
	Threshold int           `envconfig:"PREFETCH_THRESHOLD" default:"3"`
	Delay     time.Duration `envconfig:"PREFETCH_DELAY" default:"100ms"`
}

// PerformanceConfig carries the monitor policy. Memory thresholds are in MiB.
type PerformanceConfig struct {
	AggressiveCachingHitRate  float64       `envconfig:"PERF_AGGRESSIVE_CACHING_HIT_RATE" default:"0.7"`
	CompressionMemoryMB       float64       `envconfig:"PERF_COMPRESSION_MEMORY_MB" default:"50"`
	AnimationReductionRender  time.Duration `envconfig:"PERF_ANIMATION_REDUCTION_RENDER" default:"100ms"`
	MemoryOptimizationMB      float64       `envconfig:"PERF_MEMORY_OPTIMIZATION_MB" default:"30"`
	MemoryOptimizationSamples int           `envconfig:"PERF_MEMORY_OPTIMIZATION_SAMPLES" default:"10"`

	TargetHitRate     float64       `envconfig:"PERF_TARGET_HIT_RATE" default:"0.8"`
	MaxRenderTime     time.Duration `envconfig:"PERF_MAX_RENDER_TIME" default:"100ms"`
	MaxMemoryMB       float64       `envconfig:"PERF_MAX_MEMORY_MB" default:"50"`
	MaxAnimationFrame time.Duration `envconfig:"PERF_MAX_ANIMATION_FRAME" default:"16.67ms"`
	MaxNetworkCalls   int64         `envconfig:"PERF_MAX_NETWORK_CALLS" default:"30"`

	HitRatePenalty   int `envconfig:"PERF_HIT_RATE_PENALTY" default:"20"`
	RenderPenalty    int `envconfig:"PERF_RENDER_PENALTY" default:"25"`
	MemoryPenalty    int `envconfig:"PERF_MEMORY_PENALTY" default:"20"`
	AnimationPenalty int `envconfig:"PERF_ANIMATION_PENALTY" default:"15"`
	NetworkPenalty   int `envconfig:"PERF_NETWORK_PENALTY" default:"20"`
}

// StoreType selects the dead-letter log backend
type StoreType int

const (
	StoreTypeUnknown StoreType = iota
	StoreTypeMemory
	StoreTypeRedis
)

// String returns the string representation of store type
func (s StoreType) String() string {
	switch s {
	case StoreTypeMemory:
		return "memory"
	case StoreTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the store type is valid
func (s StoreType) IsValid() bool {
	return s == StoreTypeMemory || s == StoreTypeRedis
}

// StoreTypeFromString converts string to StoreType enum
func StoreTypeFromString(s string) StoreType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return StoreTypeMemory
	case "redis":
		return StoreTypeRedis
	default:
		return StoreTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (s *StoreType) UnmarshalText(text []byte) error {
	*s = StoreTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (s StoreType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type DeadLetterConfig struct {
	Type     StoreType   `envconfig:"DEAD_LETTER_TYPE" default:"memory"`
	Capacity int         `envconfig:"DEAD_LETTER_CAPACITY" default:"500"`
	RedisKey string      `envconfig:"DEAD_LETTER_REDIS_KEY" default:"budgetcache:dead_letters"`
	Redis    RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type SamplerConfig struct {
	Enabled  bool          `envconfig:"SAMPLER_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"SAMPLER_INTERVAL" default:"15s"`
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	FilePath string `envconfig:"LOG_FILE_PATH" default:""`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Prefetch.Validate(); err != nil {
		return err
	}
	if err := c.Performance.Validate(); err != nil {
		return err
	}
	if err := c.DeadLetter.Validate(); err != nil {
		return err
	}
	if err := c.Sampler.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if s.ShutdownTimeout <= 0 {
		return errors.NewConfigurationError("SERVER_SHUTDOWN_TIMEOUT must be positive", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (c *CacheConfig) Validate() error {
	if c.Capacity < 1 {
		return errors.NewConfigurationError("CACHE_CAPACITY must be at least 1", nil)
	}
	if c.TTL <= 0 {
		return errors.NewConfigurationError("CACHE_TTL must be positive", nil)
	}
	if c.WarmTTL < c.TTL {
		return errors.NewConfigurationError("CACHE_WARM_TTL cannot be shorter than CACHE_TTL", nil)
	}
	if c.WarmStagger < 0 {
		return errors.NewConfigurationError("CACHE_WARM_STAGGER cannot be negative", nil)
	}
	if c.CleanupInterval < 0 {
		return errors.NewConfigurationError("CACHE_CLEANUP_INTERVAL cannot be negative", nil)
	}
	if c.CompressionEnabled && c.CompressionThreshold < 1 {
		return errors.NewConfigurationError("CACHE_COMPRESSION_THRESHOLD must be at least 1 byte", nil)
	}
	for _, method := range c.CommonPaymentMethods {
		if strings.TrimSpace(method) == "" {
			return errors.NewConfigurationError("CACHE_COMMON_PAYMENT_METHODS cannot contain empty values", nil)
		}
	}
	return nil
}

func (p *PrefetchConfig) Validate() error {
	if p.Threshold < 1 {
		return errors.NewConfigurationError("PREFETCH_THRESHOLD must be at least 1", nil)
	}
	if p.Delay < 0 {
		return errors.NewConfigurationError("PREFETCH_DELAY cannot be negative", nil)
	}
	return nil
}

func (p *PerformanceConfig) Validate() error {
	rates := map[string]float64{
		"PERF_AGGRESSIVE_CACHING_HIT_RATE": p.AggressiveCachingHitRate,
		"PERF_TARGET_HIT_RATE":             p.TargetHitRate,
	}
	for name, rate := range rates {
		if rate < 0 || rate > 1 {
			return errors.NewConfigurationError(name+" must be between 0 and 1", nil)
		}
	}

	if p.CompressionMemoryMB <= 0 || p.MemoryOptimizationMB <= 0 || p.MaxMemoryMB <= 0 {
		return errors.NewConfigurationError("performance memory thresholds must be positive", nil)
	}
	if p.MemoryOptimizationSamples < 1 {
		return errors.NewConfigurationError("PERF_MEMORY_OPTIMIZATION_SAMPLES must be at least 1", nil)
	}
	if p.AnimationReductionRender <= 0 || p.MaxRenderTime <= 0 || p.MaxAnimationFrame <= 0 {
		return errors.NewConfigurationError("performance time thresholds must be positive", nil)
	}
	if p.MaxNetworkCalls < 0 {
		return errors.NewConfigurationError("PERF_MAX_NETWORK_CALLS cannot be negative", nil)
	}

	for _, penalty := range []int{p.HitRatePenalty, p.RenderPenalty, p.MemoryPenalty, p.AnimationPenalty, p.NetworkPenalty} {
		if penalty < 0 || penalty > maxPenalty {
			return errors.NewConfigurationError("performance penalties must be between 0 and 100", nil)
		}
	}
	return nil
}

func (d *DeadLetterConfig) Validate() error {
	if !d.Type.IsValid() {
		return errors.NewConfigurationError("DEAD_LETTER_TYPE must be one of: memory, redis", nil)
	}
	if d.Capacity < 1 {
		return errors.NewConfigurationError("DEAD_LETTER_CAPACITY must be at least 1", nil)
	}

	if d.Type == StoreTypeRedis {
		if d.RedisKey == "" {
			return errors.NewConfigurationError("DEAD_LETTER_REDIS_KEY cannot be empty when using Redis", nil)
		}
		return d.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (s *SamplerConfig) Validate() error {
	if s.Enabled && s.Interval <= 0 {
		return errors.NewConfigurationError("SAMPLER_INTERVAL must be positive when the sampler is enabled", nil)
	}
	return nil
}
