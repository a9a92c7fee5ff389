// Command moviectl is a terminal front end for the movies API: it lists the
// catalog and adds, edits or deletes movies, re-reading the list after every
// change.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hafizmfadli/movie-catalog/internal/client"
	"github.com/hafizmfadli/movie-catalog/internal/ui"
)

type cli struct {
	API     string        `help:"Base URL of the movies API." default:"http://localhost:3001" env:"MOVIES_API_URL"`
	Timeout time.Duration `help:"Timeout for each request." default:"10s"`

	List   listCmd   `cmd:"" default:"1" help:"List all movies."`
	Add    addCmd    `cmd:"" help:"Add a movie."`
	Edit   editCmd   `cmd:"" help:"Edit a movie. Fields left out keep their value."`
	Delete deleteCmd `cmd:"" help:"Delete a movie."`
}

// session is bound into every command's Run method.
type session struct {
	ctx context.Context
	api ui.API
	in  *bufio.Reader
	out io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "moviectl: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	var c cli

	parser, err := kong.New(&c,
		kong.Name("moviectl"),
		kong.Description("Manage the movie catalog."),
		kong.Writers(stdout, stdout),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	s := &session{
		ctx: ctx,
		api: client.New(c.API, &http.Client{Timeout: c.Timeout}),
		in:  bufio.NewReader(stdin),
		out: stdout,
	}

	return kctx.Run(s)
}
