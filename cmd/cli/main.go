// Command cli is the terminal front end of the Video Unpack client. It
// wires the token store, request client, session manager and job-list
// view-model together explicitly and exposes one subcommand per operation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/config"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/model"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/session"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/upload"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/videos"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/httpclient"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/tokenstore"
)

const usage = `usage: videounpack <command> [flags]

commands:
  signin    -username <name> -password <pw>
  signup    -cpf <cpf> -name <name> -email <email> -birth-date <yyyy-mm-dd> -username <name> -password <pw>
  signout
  whoami
  list      [-page <n>]
  upload    <file>
  download  <job_ref>
`

type app struct {
	cfg     *config.Config
	log     logger.Logger
	client  httpclient.Client
	session session.Manager
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger(cfg.LogLevel)

	tokenPath := cfg.Client.TokenPath
	if tokenPath == "" {
		tokenPath, err = tokenstore.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to resolve token path: %v", err)
		}
	}
	store := tokenstore.NewFileStore(tokenPath)

	client := httpclient.New(cfg.API.BaseURL, store, appLogger,
		httpclient.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
		httpclient.WithUnauthorizedHook(func() {
			fmt.Fprintln(os.Stderr, "session expired, please sign in again")
		}),
	)

	a := &app{
		cfg:     cfg,
		log:     appLogger,
		client:  client,
		session: session.NewManager(client, store, appLogger),
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		var apiErr *httpclient.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, "error:", apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signin":
		return a.signIn(ctx, args)
	case "signup":
		return a.signUp(ctx, args)
	case "signout":
		if err := a.session.SignOut(); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	case "whoami":
		return a.whoami()
	case "list":
		return a.list(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "download":
		return a.download(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) signIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	_, err := a.session.SignIn(ctx, model.SignInRequest{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	id, _ := a.session.Current()
	fmt.Printf("signed in as %s <%s>\n", id.Name, id.Email)
	return nil
}

func (a *app) signUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	cpf := fs.String("cpf", "", "CPF document number")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	birthDate := fs.String("birth-date", "", "birth date (yyyy-mm-dd)")
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	req := model.SignUpRequest{
		Person: model.Person{CPF: *cpf, Name: *name, Email: *email, BirthDate: *birthDate},
		User:   model.User{Name: *username, Password: *password},
	}
	_, err := a.session.SignUp(ctx, req)
	if err != nil {
		return err
	}
	id, _ := a.session.Current()
	fmt.Printf("account created, signed in as %s <%s>\n", id.Name, id.Email)
	return nil
}

func (a *app) whoami() error {
	id, ok := a.session.Current()
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s> (id %s)\n", id.Name, id.Email, id.ID)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 1, "page to display")
	fs.Parse(args)

	list := videos.NewList(a.client, a.log, a.cfg.Client.DownloadDir, videos.WithPerPage(a.cfg.Client.PageSize))
	if err := list.Refresh(ctx); err != nil {
		return err
	}
	if list.Len() == 0 {
		fmt.Println("no videos uploaded yet")
		return nil
	}

	list.GoToPage(*page)
	fmt.Printf("page %d of %d (%d jobs)\n", list.CurrentPage(), list.PageCount(), list.Len())
	for _, job := range list.PageItems() {
		name := job.Filename
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %-12s  %-10s  %-30s  created %s\n",
			job.JobRef, model.ParseStatus(job.Status), name, job.CreatedAt)
	}
	return nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("upload requires a file path")
	}

	sub := upload.NewSubmitter(a.client, a.log)
	resp, err := sub.Submit(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("video uploaded, job %s\n", resp.JobRef)
	return nil
}

func (a *app) download(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("download requires a job reference")
	}
	jobRef := args[0]

	list := videos.NewList(a.client, a.log, a.cfg.Client.DownloadDir, videos.WithPerPage(a.cfg.Client.PageSize))
	// Refresh first so the saved name can come from the job's filename.
	if err := list.Refresh(ctx); err != nil {
		return err
	}
	path, err := list.Download(ctx, jobRef)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", path)
	return nil
}
