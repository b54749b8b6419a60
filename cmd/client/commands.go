package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-vidshare/internal/adapter"
	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/tui"
	"github.com/MKhiriev/go-vidshare/models"
)

var (
	errUsage          = errors.New("usage: client [-s url] [-t timeout] <command> [flags]")
	errUnknownCommand = errors.New("unknown command")
)

const commandsHelp = `commands:
  signup  -name -email -password   create an account
  login   -email -password         print a session token for VIDSHARE_TOKEN
  me                               show the logged in account
  logout                           end the session
  verify  -token                   confirm an email address
  resend  -email                   send a new verification email
  forgot  -email                   request a password reset email
  reset   -token -password         set a new password
  feed    -limit -offset           list the newest videos
  browse  -limit                   browse the feed interactively
  post    -id                      show one video
  health                           check the server
  version                          show client and server versions`

type cli struct {
	cfg    *config.Client
	out    io.Writer
	logger *logger.Logger
}

type command func(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error)

func (c *cli) commands() map[string]command {
	return map[string]command{
		"signup":  c.signup,
		"login":   c.login,
		"me":      c.me,
		"logout":  c.logout,
		"verify":  c.verify,
		"resend":  c.resend,
		"forgot":  c.forgot,
		"reset":   c.reset,
		"feed":    c.feed,
		"post":    c.post,
		"browse":  c.browse,
		"health":  c.health,
		"version": c.version,
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	global := flag.NewFlagSet("client", flag.ContinueOnError)
	global.SetOutput(c.out)
	global.StringVar(&c.cfg.ServerURL, "s", c.cfg.ServerURL, "API base URL")
	global.DurationVar(&c.cfg.Timeout, "t", c.cfg.Timeout, "request timeout")
	global.Usage = func() {
		fmt.Fprintln(c.out, errUsage.Error())
		global.PrintDefaults()
		fmt.Fprintln(c.out, commandsHelp)
	}
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errUsage
	}

	name := rest[0]
	cmd, ok := c.commands()[name]
	if !ok {
		return fmt.Errorf("%w %q", errUnknownCommand, name)
	}

	api, err := adapter.NewHTTPServerAdapter(c.cfg.ServerURL, c.cfg.Timeout, c.logger)
	if err != nil {
		return err
	}
	api.SetToken(c.cfg.Token)

	result, err := cmd(ctx, api, rest[1:])
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if result == nil {
		return nil
	}
	return c.print(result)
}

func (c *cli) print(v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(c.out, s)
		return err
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parse(name string, args []string, define func(fs *flag.FlagSet)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	define(fs)
	return fs.Parse(args)
}

func (c *cli) signup(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	var req models.SignupRequest
	if err := parse("signup", args, func(fs *flag.FlagSet) {
		fs.StringVar(&req.Name, "name", "", "display name")
		fs.StringVar(&req.Email, "email", "", "email address")
		fs.StringVar(&req.Password, "password", "", "password")
	}); err != nil {
		return nil, err
	}
	user, err := api.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	return models.UserResponse{Message: "Check your email to verify the account", User: user}, nil
}

func (c *cli) login(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	var req models.LoginRequest
	if err := parse("login", args, func(fs *flag.FlagSet) {
		fs.StringVar(&req.Email, "email", "", "email address")
		fs.StringVar(&req.Password, "password", "", "password")
	}); err != nil {
		return nil, err
	}
	if _, err := api.Login(ctx, req); err != nil {
		return nil, err
	}
	return "export VIDSHARE_TOKEN=" + api.Token(), nil
}

func (c *cli) me(ctx context.Context, api adapter.ServerAdapter, _ []string) (any, error) {
	return api.Me(ctx)
}

func (c *cli) logout(ctx context.Context, api adapter.ServerAdapter, _ []string) (any, error) {
	if err := api.Logout(ctx); err != nil {
		return nil, err
	}
	return "Logged out, unset VIDSHARE_TOKEN", nil
}

func (c *cli) verify(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	var token string
	if err := parse("verify", args, func(fs *flag.FlagSet) {
		fs.StringVar(&token, "token", "", "token from the verification email")
	}); err != nil {
		return nil, err
	}
	return api.VerifyEmail(ctx, strings.TrimSpace(token))
}

func (c *cli) resend(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	email, err := emailFlag("resend", args)
	if err != nil {
		return nil, err
	}
	return api.ResendVerification(ctx, email)
}

func (c *cli) forgot(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	email, err := emailFlag("forgot", args)
	if err != nil {
		return nil, err
	}
	return api.ForgotPassword(ctx, email)
}

func (c *cli) reset(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	var req models.ResetPasswordRequest
	if err := parse("reset", args, func(fs *flag.FlagSet) {
		fs.StringVar(&req.Token, "token", "", "token from the reset email")
		fs.StringVar(&req.Password, "password", "", "new password")
	}); err != nil {
		return nil, err
	}
	return api.ResetPassword(ctx, req)
}

func (c *cli) feed(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	var page models.Page
	if err := parse("feed", args, func(fs *flag.FlagSet) {
		fs.Uint64Var(&page.Limit, "limit", 20, "page size")
		fs.Uint64Var(&page.Offset, "offset", 0, "posts to skip")
	}); err != nil {
		return nil, err
	}
	posts, err := api.ListPosts(ctx, page)
	if err != nil {
		return nil, err
	}
	return models.PostsResponse{Posts: posts, Count: len(posts)}, nil
}

func (c *cli) post(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	var id int64
	if err := parse("post", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&id, "id", 0, "post id")
	}); err != nil {
		return nil, err
	}
	return api.GetPost(ctx, id)
}

func (c *cli) browse(ctx context.Context, api adapter.ServerAdapter, args []string) (any, error) {
	var pageSize uint64
	if err := parse("browse", args, func(fs *flag.FlagSet) {
		fs.Uint64Var(&pageSize, "limit", 20, "posts per page")
	}); err != nil {
		return nil, err
	}
	return nil, tui.New(api, c.cfg.ServerURL, pageSize, c.logger).Browse(ctx)
}

func (c *cli) health(ctx context.Context, api adapter.ServerAdapter, _ []string) (any, error) {
	return api.Health(ctx)
}

func (c *cli) version(ctx context.Context, api adapter.ServerAdapter, _ []string) (any, error) {
	printBuildInfo(c.out)
	return api.Version(ctx)
}

func emailFlag(name string, args []string) (string, error) {
	var email string
	err := parse(name, args, func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "email address")
	})
	return email, err
}
