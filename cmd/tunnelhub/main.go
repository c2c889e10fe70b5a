package main

import (
	"github.com/alecthomas/kong"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/app"
	"github.com/joho/godotenv"
)

var cli struct {
	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the dashboard server (default)."`
	Keygen  KeygenCmd  `cmd:"" help:"Generate an RSA key pair for the credential channel."`
	Hashpw  HashpwCmd  `cmd:"" help:"Hash an admin password for ADMIN_PASSWORD_HASH."`
	Version kong.VersionFlag
}

func main() {
	// A missing .env file is fine; the process environment wins either way.
	_ = godotenv.Load()

	ctx := kong.Parse(&cli,
		kong.Name("tunnelhub"),
		kong.Description("Password-gated dashboard for relay tunnels across many accounts."),
		kong.UsageOnError(),
		kong.Vars{"version": app.BuildVersion},
	)
	ctx.FatalIfErrorf(ctx.Run())
}
