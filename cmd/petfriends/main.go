package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/config"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/logger"
	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

const usage = `usage: petfriends <command> [flags]

commands:
  key         request an auth key for --email/--password
  list        list pets (--filter my_pets for your own)
  add         create a pet with an optional --photo
  add-simple  create a pet without a photo
  set-photo   attach --photo to pet --id
  update      replace name, type and age of pet --id
  delete      delete pet --id
`

var errUsage = errors.New("invalid usage")

var commands = map[string]bool{
	"key": true, "list": true, "add": true, "add-simple": true,
	"set-photo": true, "update": true, "delete": true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// options are the flags shared by every command.
type options struct {
	baseURL  string
	email    string
	password string
	key      string
	verbose  bool

	filter     string
	id         string
	name       string
	animalType string
	age        string
	photo      string
}

func (o *options) addFlags(f *pflag.FlagSet, cfg *config.ClientConfig) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = petfriends.DefaultBaseURL
	}
	f.StringVar(&o.baseURL, "base-url", baseURL, "API base URL")
	f.StringVar(&o.email, "email", cfg.Email, "account email")
	f.StringVar(&o.password, "password", cfg.Password, "account password")
	f.StringVar(&o.key, "key", "", "auth key; requested with --email/--password when empty")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log requests and responses")

	f.StringVar(&o.filter, "filter", "", "list filter: empty or my_pets")
	f.StringVar(&o.id, "id", "", "pet id")
	f.StringVar(&o.name, "name", "", "pet name")
	f.StringVar(&o.animalType, "type", "", "pet animal type")
	f.StringVar(&o.age, "age", "", "pet age")
	f.StringVar(&o.photo, "photo", "", "path to a JPEG or PNG photo")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	command := args[0]
	if !commands[command] {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return errUsage
	}

	cfg := config.LoadClientConfig()

	var o options
	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	o.addFlags(flags, cfg)
	if err := flags.Parse(args[1:]); err != nil {
		return errUsage
	}

	log := zap.NewNop()
	if o.verbose {
		log = logger.NewWriter(stderr, zap.DebugLevel)
	}

	client := petfriends.New(o.baseURL,
		petfriends.WithTimeout(cfg.RequestTimeout),
		petfriends.WithLogger(log),
		petfriends.WithRequestLogging(o.verbose, o.verbose),
	)

	if command == "key" {
		resp, err := client.GetAPIKey(ctx, o.email, o.password)
		if err != nil {
			return err
		}
		return printResponse(stdout, resp)
	}

	key, err := o.authKey(ctx, client)
	if err != nil {
		return err
	}

	var resp *petfriends.Response
	switch command {
	case "list":
		resp, err = client.ListPets(ctx, key, petfriends.Filter(o.filter))
	case "add":
		resp, err = client.AddPet(ctx, key, o.name, o.animalType, o.age, o.photoArg())
	case "add-simple":
		resp, err = client.AddPetSimple(ctx, key, o.name, o.animalType, o.age)
	case "set-photo":
		resp, err = client.SetPhoto(ctx, key, o.id, o.photoArg())
	case "update":
		resp, err = client.UpdatePet(ctx, key, o.id, o.name, o.animalType, o.age)
	case "delete":
		resp, err = client.DeletePet(ctx, key, o.id)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return errUsage
	}
	if err != nil {
		return err
	}
	return printResponse(stdout, resp)
}

// authKey returns --key, or requests one with the configured credentials.
func (o *options) authKey(ctx context.Context, client *petfriends.Client) (petfriends.AuthKey, error) {
	if o.key != "" {
		return petfriends.AuthKey{petfriends.AuthKeyField: o.key}, nil
	}
	resp, err := client.GetAPIKey(ctx, o.email, o.password)
	if err != nil {
		return nil, err
	}
	key, ok := resp.AuthKey()
	if !ok {
		return nil, fmt.Errorf("requesting auth key: status %d: %s", resp.StatusCode, resp.Text())
	}
	return key, nil
}

func (o *options) photoArg() petfriends.Photo {
	if o.photo == "" {
		return petfriends.Photo{}
	}
	return petfriends.PhotoFile(o.photo)
}

func printResponse(w io.Writer, resp *petfriends.Response) error {
	_, err := fmt.Fprintf(w, "%d\n%s\n", resp.StatusCode, resp.Text())
	return err
}
