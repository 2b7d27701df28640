// Package config 벤치마크 설정 로딩.
//
// 우선순위: 명령줄 플래그 > QSORT_* 환경 변수 > 설정 파일 > 기본값.
// .env 파일이 있으면 먼저 환경 변수로 읽어 들인다.
package config

import (
	"io/fs"
	"runtime"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qsortbench/store"
)

// 설정 키
const (
	KeySize        = "size"
	KeyStages      = "stages"
	KeySeed        = "seed"
	KeyWorkers     = "nworkers"
	KeyPoolSize    = "pool-size"
	KeyStore       = "store"
	KeyStorePath   = "store-path"
	KeyReportDir   = "report-dir"
	KeyMetricsFile = "metrics-file"
	KeyVerbose     = "verbose"
)

// EnvPrefix 환경 변수 접두사. 예: QSORT_NWORKERS, QSORT_STORE_PATH
const EnvPrefix = "QSORT"

// 기본값
const (
	DefaultSize   = 10_000_000
	DefaultStages = 10
	DefaultStore  = store.KindNone
)

// ErrInvalid 설정 값 검증 실패
var ErrInvalid = errors.New("invalid config")

// Config 벤치마크 설정
type Config struct {
	Size   int
	Stages int
	Seed   int64
	// Workers 보고용 워커 수 (QSORT_NWORKERS). 0 이면 GOMAXPROCS.
	Workers int
	// PoolSize 포크-조인 풀 크기. 0 이면 GOMAXPROCS.
	PoolSize    int
	Store       string
	StorePath   string
	ReportDir   string
	MetricsFile string
	Verbose     bool
}

// BindFlags 벤치마크 플래그를 flags 에 정의한다.
func BindFlags(flags *pflag.FlagSet) {
	flags.Int(KeySize, DefaultSize, "array size per stage")
	flags.Int(KeyStages, DefaultStages, "number of timed stages after the warm-up run")
	flags.Int64(KeySeed, 0, "random seed (0 = time based)")
	flags.Int(KeyWorkers, 0, "worker count to report (default GOMAXPROCS)")
	flags.Int(KeyPoolSize, 0, "fork-join pool size (default GOMAXPROCS)")
}

// BindStoreFlags 저장소 플래그를 flags 에 정의한다.
func BindStoreFlags(flags *pflag.FlagSet) {
	flags.String(KeyStore, DefaultStore, "run history backend ("+strings.Join(store.Kinds, "|")+")")
	flags.String(KeyStorePath, "", "run history path (bbolt file or badger/pebble directory)")
}

// BindOutputFlags 보고서 출력 플래그를 flags 에 정의한다.
func BindOutputFlags(flags *pflag.FlagSet) {
	flags.String(KeyReportDir, "", "directory for JSON/YAML/Markdown reports")
	flags.String(KeyMetricsFile, "", "write Prometheus textfile metrics to this path")
}

// Load .env, 설정 파일, 환경 변수, flags 의 플래그를 합쳐 Config 를 만든다.
// envFile 과 configFile 은 비어 있을 수 있다.
func Load(flags *pflag.FlagSet, envFile, configFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "load env file %s", envFile)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeySize, DefaultSize)
	v.SetDefault(KeyStages, DefaultStages)
	v.SetDefault(KeyStore, DefaultStore)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", configFile)
		}
	}

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, errors.Wrap(err, "bind flags")
	}

	cfg := Config{
		Size:        v.GetInt(KeySize),
		Stages:      v.GetInt(KeyStages),
		Seed:        v.GetInt64(KeySeed),
		Workers:     v.GetInt(KeyWorkers),
		PoolSize:    v.GetInt(KeyPoolSize),
		Store:       v.GetString(KeyStore),
		StorePath:   v.GetString(KeyStorePath),
		ReportDir:   v.GetString(KeyReportDir),
		MetricsFile: v.GetString(KeyMetricsFile),
		Verbose:     v.GetBool(KeyVerbose),
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 값 범위 검사
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.Wrapf(ErrInvalid, "size must be positive, got %d", c.Size)
	}
	if c.Stages <= 0 {
		return errors.Wrapf(ErrInvalid, "stages must be positive, got %d", c.Stages)
	}
	if c.PoolSize < 0 {
		return errors.Wrapf(ErrInvalid, "pool-size must not be negative, got %d", c.PoolSize)
	}
	if !slices.Contains(store.Kinds, c.Store) {
		return errors.Wrapf(ErrInvalid, "store %q must be one of %v", c.Store, store.Kinds)
	}
	if c.Store != DefaultStore && c.StorePath == "" {
		return errors.Wrapf(ErrInvalid, "store %q needs store-path", c.Store)
	}
	return nil
}
