package pg

import "time"

type Config struct {
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns is the maximum number of open connections to the database.
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`       // MaxIdleConns is the maximum number of idle connections kept in the pool.
	ConnMaxIdleTime time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"` // ConnMaxIdleTime is the maximum amount of time a connection may be idle to be reused.
	ConnMaxLifetime time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`  // ConnMaxLifetime is the maximum amount of time a connection may be reused.

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base interval between attempts, e.g. "5s".

	SSLMode string `env:"PG_SSLMODE" envDefault:"disable"` // SSLMode is passed through as the sslmode DSN parameter.
}

// normalized fills zero fields with usable defaults so a zero Config works
// without env parsing.
func (c Config) normalized() Config {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 5
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 1
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	return c
}
