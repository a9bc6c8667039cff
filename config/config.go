package config

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"crpt-client/crpt"
	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Endpoint       string        `env:"CRPT_ENDPOINT" validate:"required,url"`
	TimeUnit       time.Duration `env:"RATE_TIME_UNIT" validate:"gt=0"`
	RequestLimit   int           `env:"RATE_REQUEST_LIMIT" validate:"gt=0"`
	LimiterBackend string        `env:"LIMITER_BACKEND" validate:"oneof=bucket xrate"`
	AcquireTimeout time.Duration `env:"ACQUIRE_TIMEOUT" validate:"gte=0"`
	ConcurrencyMax int           `env:"CONCURRENCY_MAX" validate:"gte=0"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" validate:"gt=0"`

	TrustPolicy        string `env:"TRUST_POLICY" validate:"oneof=system custom insecure"`
	TrustCAFile        string `env:"TRUST_CA_FILE" validate:"required_if=TrustPolicy custom"`
	TrustAllowInsecure bool   `env:"TRUST_ALLOW_INSECURE"`

	SignatureHeader string `env:"SIGNATURE_HEADER"`
	LogLevel        string `env:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR"`

	Stats StatsConfig
}

type StatsConfig struct {
	Enabled           bool          `env:"SUBMIT_STATS_ENABLED"`
	RedisAddr         string        `env:"SUBMIT_STATS_REDIS_ADDR" validate:"required_if=Enabled true"`
	RedisPassword     string        `env:"SUBMIT_STATS_REDIS_PASSWORD"`
	RedisDB           int           `env:"SUBMIT_STATS_REDIS_DB" validate:"gte=0"`
	Prefix            string        `env:"SUBMIT_STATS_PREFIX"`
	TTL               time.Duration `env:"SUBMIT_STATS_TTL" validate:"gte=0"`
	Bucket            string        `env:"SUBMIT_STATS_BUCKET" validate:"oneof=minute none"`
	TrackParticipants bool          `env:"SUBMIT_STATS_TRACK_PARTICIPANTS"`
}

var ErrInsecureNotAllowed = errors.New("TRUST_POLICY=insecure requires TRUST_ALLOW_INSECURE=true")

// Load lê o ambiente e valida o resultado.
func Load() (Config, error) {
	cfg := Config{
		Endpoint:       getenvDefault("CRPT_ENDPOINT", crpt.DefaultEndpoint),
		TimeUnit:       getenvDurationDefault("RATE_TIME_UNIT", time.Second),
		RequestLimit:   getenvIntDefault("RATE_REQUEST_LIMIT", 1),
		LimiterBackend: strings.ToLower(getenvDefault("LIMITER_BACKEND", string(crpt.BackendBucket))),
		AcquireTimeout: getenvDurationDefault("ACQUIRE_TIMEOUT", 0),
		ConcurrencyMax: getenvIntDefault("CONCURRENCY_MAX", 0),
		HTTPTimeout:    getenvDurationDefault("HTTP_TIMEOUT", infra.DefaultHTTPTimeout),

		TrustPolicy:        strings.ToLower(getenvDefault("TRUST_POLICY", string(infra.TrustSystem))),
		TrustCAFile:        getenvDefault("TRUST_CA_FILE", ""),
		TrustAllowInsecure: getenvBoolDefault("TRUST_ALLOW_INSECURE", false),

		SignatureHeader: getenvDefault("SIGNATURE_HEADER", ""),
		LogLevel:        strings.ToUpper(getenvDefault("LOG_LEVEL", "INFO")),

		Stats: StatsConfig{
			Enabled:           getenvBoolDefault("SUBMIT_STATS_ENABLED", false),
			RedisAddr:         getenvDefault("SUBMIT_STATS_REDIS_ADDR", ""),
			RedisPassword:     getenvDefault("SUBMIT_STATS_REDIS_PASSWORD", ""),
			RedisDB:           getenvIntDefault("SUBMIT_STATS_REDIS_DB", 0),
			Prefix:            getenvDefault("SUBMIT_STATS_PREFIX", "crpt:submit:stats"),
			TTL:               getenvDurationDefault("SUBMIT_STATS_TTL", 24*time.Hour),
			Bucket:            strings.ToLower(getenvDefault("SUBMIT_STATS_BUCKET", "minute")),
			TrackParticipants: getenvBoolDefault("SUBMIT_STATS_TRACK_PARTICIPANTS", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// erros citam a variável de ambiente, não o campo Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

func (c Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.TrustPolicy == string(infra.TrustInsecure) && !c.TrustAllowInsecure {
		return ErrInsecureNotAllowed
	}
	return nil
}

func (c Config) TransportConfig() infra.TransportConfig {
	return infra.TransportConfig{
		Timeout:       c.HTTPTimeout,
		Trust:         infra.TrustPolicy(c.TrustPolicy),
		CAFile:        c.TrustCAFile,
		AllowInsecure: c.TrustAllowInsecure,
	}
}

// ClientOptions converte a configuração em opções de crpt.New.
// Estatísticas ficam de fora: ver OpenStats.
func (c Config) ClientOptions() []crpt.Option {
	opts := []crpt.Option{
		crpt.WithEndpoint(c.Endpoint),
		crpt.WithLimiterBackend(crpt.LimiterBackend(c.LimiterBackend)),
		crpt.WithTransportConfig(c.TransportConfig()),
		crpt.WithConcurrencyMax(c.ConcurrencyMax),
		crpt.WithAcquireTimeout(c.AcquireTimeout),
	}
	if c.SignatureHeader != "" {
		opts = append(opts, crpt.WithSignatureHeader(c.SignatureHeader))
	}
	return opts
}

// OpenStats conecta no Redis quando as estatísticas estão habilitadas.
// Sem estatísticas devolve (nil, noop, nil). O close devolvido é sempre seguro.
func (c Config) OpenStats(ctx context.Context) (domain.StatsStore, func(), error) {
	if !c.Stats.Enabled {
		return nil, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Stats.RedisAddr,
		Password: c.Stats.RedisPassword,
		DB:       c.Stats.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	_, err := rdb.Ping(pingCtx).Result()
	cancel()
	if err != nil {
		_ = rdb.Close()
		return nil, func() {}, fmt.Errorf("redis stats ping: %w", err)
	}

	store := infra.NewRedisStatsStore(
		rdb,
		infra.WithStatsPrefix(c.Stats.Prefix),
		infra.WithStatsTTL(c.Stats.TTL),
		infra.WithStatsBucket(c.Stats.Bucket),
		infra.WithStatsTrackParticipants(c.Stats.TrackParticipants),
	)
	return store, func() { _ = rdb.Close() }, nil
}
