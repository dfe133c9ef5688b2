package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Event channels consumed by the websocket gateway / notifier.
	ValuationChannel string
	RiskChannel      string

	// Loan ledger thresholds, as LTV percentages.
	MaxLTV       decimal.Decimal
	WarnLTV      decimal.Decimal
	LiquidateLTV decimal.Decimal
	// LTVModel selects the current-LTV recomputation: "anchored" (upstream
	// compatible) or "face_value".
	LTVModel string

	// Risk scheduler sweep periods.
	AccrualInterval     time.Duration
	LiquidationInterval time.Duration

	// Oracle configuration. Sources is a comma list of
	// name:spread:confidence entries.
	OracleSources   string
	OracleTimeout   time.Duration
	OracleLatency   time.Duration
	ReviewThreshold decimal.Decimal

	// Valuation pipeline limits.
	StageDelay    time.Duration
	JobRunTimeout time.Duration
	MintLatency   time.Duration
	MintFailEvery uint64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getdur(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if p, err := time.ParseDuration(v); err == nil {
			return p
		}
	}
	return d
}

func getdec(k string, d decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(k); v != "" {
		if p, err := decimal.NewFromString(v); err == nil {
			return p
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "oqassets"),
		MySQLUser: getenv("MYSQL_USER", "oqassets"),
		MySQLPass: getenv("MYSQL_PASS", "oqassets"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		ValuationChannel: getenv("VALUATION_CHANNEL", "events:valuation"),
		RiskChannel:      getenv("RISK_CHANNEL", "events:risk"),

		MaxLTV:       getdec("MAX_LTV", decimal.NewFromInt(80)),
		WarnLTV:      getdec("WARN_LTV", decimal.NewFromInt(85)),
		LiquidateLTV: getdec("LIQUIDATE_LTV", decimal.NewFromInt(90)),
		LTVModel:     getenv("LTV_MODEL", "anchored"),

		AccrualInterval:     getdur("SWEEP_ACCRUAL_INTERVAL", time.Minute),
		LiquidationInterval: getdur("SWEEP_LIQUIDATION_INTERVAL", 5*time.Minute),

		OracleSources:   getenv("ORACLE_SOURCES", "marketdata:0.05:0.9,comps:0.10:0.8,risk:0.08:0.6"),
		OracleTimeout:   getdur("ORACLE_TIMEOUT", 5*time.Second),
		OracleLatency:   getdur("ORACLE_LATENCY", 300*time.Millisecond),
		ReviewThreshold: getdec("REVIEW_THRESHOLD", decimal.NewFromFloat(0.7)),

		StageDelay:    getdur("STAGE_DELAY", 500*time.Millisecond),
		JobRunTimeout: getdur("JOB_RUN_TIMEOUT", 2*time.Minute),
		MintLatency:   getdur("MINT_LATENCY", time.Second),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("MINT_FAIL_EVERY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MintFailEvery = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.MaxLTV.Sign() <= 0 || c.WarnLTV.LessThan(c.MaxLTV) || c.LiquidateLTV.LessThan(c.WarnLTV) {
		return errors.New("LTV thresholds must satisfy 0 < MAX_LTV <= WARN_LTV <= LIQUIDATE_LTV")
	}
	if c.AccrualInterval <= 0 || c.LiquidationInterval <= 0 {
		return errors.New("sweep intervals must be positive")
	}
	if c.OracleSources == "" {
		return errors.New("missing ORACLE_SOURCES")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
