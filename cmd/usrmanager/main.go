// Command usrmanager administers a userspace store: it adds, inspects,
// lists and deletes users and resets passwords, against either a SQLite
// file or a PostgreSQL database.
//
// Usage:
//
//	usrmanager [flags] <store> <command> [args]
//
// Commands:
//
//	adduser <email> [username]   create a user, prompting for a password
//	cpasswd <user>               reset the password for a user
//	delete  <user>               delete a user
//	list                         list all users
//	info    <user>               print one user's record
//
// A <user> argument is resolved as a username first, then as an email.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/userspacekit/userspace/pkg/pg"
	"github.com/userspacekit/userspace/pkg/sqlitedb"
	"github.com/userspacekit/userspace/userspace"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("usrmanager", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		showVersion bool
		driver      string
		dbUser      string
		dbPasswd    string
		dbHost      string
		dbPort      int
	)
	fs.BoolVar(&showVersion, "version", false, "print the version and exit")
	fs.StringVar(&driver, "driver", "", `database driver: "sqlite" or "postgres"`)
	fs.StringVar(&dbUser, "dbuser", "", "PostgreSQL database user")
	fs.StringVar(&dbPasswd, "dbpasswd", "", "password for the PostgreSQL user")
	fs.StringVar(&dbHost, "dbhost", "", "hostname for the PostgreSQL database")
	fs.IntVar(&dbPort, "dbport", 0, "port for the PostgreSQL database")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: usrmanager [flags] <store> <command> [args]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "usrmanager %s\n", version)
		return 0
	}

	rest := fs.Args()
	if len(rest) < 2 {
		fs.Usage()
		return 2
	}
	storeName, command, cmdArgs := rest[0], rest[1], rest[2:]

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	// Flags win over environment.
	if driver != "" {
		cfg.Driver = driver
	}
	if dbUser != "" {
		cfg.DBUser = dbUser
	}
	if dbPasswd != "" {
		cfg.DBPassword = dbPasswd
	}
	if dbHost != "" {
		cfg.DBHost = dbHost
	}
	if dbPort != 0 {
		cfg.DBPort = dbPort
	}

	conn, err := connectorFor(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx := context.Background()
	reg := userspace.New(conn, userspace.WithLogger(logger))
	us, err := reg.Open(ctx, storeName, userspace.Params{
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
	})
	if err != nil {
		fmt.Fprintf(stderr, "open store %q: %v\n", storeName, err)
		return 1
	}

	app := &app{us: us, stdout: stdout, stderr: stderr}

	switch command {
	case "adduser":
		return app.addUser(ctx, cmdArgs)
	case "cpasswd":
		return app.changePassword(ctx, cmdArgs)
	case "delete":
		return app.deleteUser(ctx, cmdArgs)
	case "list":
		return app.listUsers(ctx)
	case "info":
		return app.info(ctx, cmdArgs)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		fs.Usage()
		return 2
	}
}

func connectorFor(cfg Config) (userspace.Connector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return sqlitedb.New(), nil
	case "postgres":
		var pgCfg pg.Config
		if err := env.Parse(&pgCfg); err != nil {
			return nil, fmt.Errorf("postgres config: %w", err)
		}
		return pg.New(pgCfg), nil
	default:
		return nil, fmt.Errorf("unknown driver %q (want sqlite or postgres)", cfg.Driver)
	}
}
