package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/notes-api/internal/websocket"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "seed":
		err = seedCmd(ctx, apiURL, args)
	case "watch":
		err = watchCmd(ctx, apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Notes Simulator - Development tool for populating and observing the notes API

USAGE:
  simulator <command> [options]

COMMANDS:
  seed      Register users and give each of them a set of notes
  watch     Log in and print live note events for that account
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8000)

EXAMPLES:
  # Create 3 users with 5 notes each, pinning every third note
  simulator seed --users=3 --notes=5

  # Stream note events for an existing account
  simulator watch --email=alice@example.com --password=secret123`)
}

func seedCmd(ctx context.Context, apiURL string, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	users := fs.Int("users", 1, "Number of users to register")
	notes := fs.Int("notes", 5, "Notes to create per user")
	pinEvery := fs.Int("pin-every", 3, "Pin every Nth note (0 disables pinning)")
	password := fs.String("password", "testpassword123", "Password for every seeded user")
	fs.Parse(args)

	if *users < 1 {
		return fmt.Errorf("--users must be at least 1")
	}
	if *notes < 0 {
		return fmt.Errorf("--notes must not be negative")
	}

	client := NewAPIClient(apiURL)
	summary, err := seed(ctx, client, seedOptions{
		Users:    *users,
		Notes:    *notes,
		PinEvery: *pinEvery,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Println("=== Notes Simulator: Seed ===")
	fmt.Println()
	for _, u := range summary {
		fmt.Printf("  %s <%s>  notes=%d pinned=%d\n", u.FullName, u.Email, u.Notes, u.Pinned)
	}
	fmt.Println()
	fmt.Printf("  Password for all users: %s\n", *password)
	return nil
}

type seedOptions struct {
	Users    int
	Notes    int
	PinEvery int
	Password string
}

type seededUser struct {
	FullName string
	Email    string
	Token    string
	Notes    int
	Pinned   int
}

func seed(ctx context.Context, client *APIClient, opts seedOptions) ([]seededUser, error) {
	tags := [][]string{{"work"}, {"personal"}, {"ideas", "later"}, nil}

	var out []seededUser
	for i := 0; i < opts.Users; i++ {
		profile, token, err := client.RegisterUser(ctx, fmt.Sprintf("User%d", i+1), opts.Password)
		if err != nil {
			return out, fmt.Errorf("user %d: %w", i+1, err)
		}

		su := seededUser{FullName: profile.FullName, Email: profile.Email, Token: token}
		for n := 1; n <= opts.Notes; n++ {
			note, err := client.CreateNote(ctx, token,
				fmt.Sprintf("Note %d", n),
				fmt.Sprintf("Seeded note %d for %s", n, profile.FullName),
				tags[(n-1)%len(tags)],
			)
			if err != nil {
				return out, fmt.Errorf("user %d note %d: %w", i+1, n, err)
			}
			su.Notes++

			if opts.PinEvery > 0 && n%opts.PinEvery == 0 {
				if _, err := client.PinNote(ctx, token, note.ID.String(), true); err != nil {
					return out, fmt.Errorf("user %d pin %d: %w", i+1, n, err)
				}
				su.Pinned++
			}
		}
		out = append(out, su)
	}
	return out, nil
}

func watchCmd(ctx context.Context, apiURL string, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	token := fs.String("token", "", "Access token (skips login)")
	fs.Parse(args)

	client := NewAPIClient(apiURL)

	accessToken := *token
	if accessToken == "" {
		if *email == "" || *password == "" {
			return fmt.Errorf("either --token or both --email and --password are required")
		}
		var err error
		accessToken, err = client.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
	}

	conn, err := client.DialEvents(ctx, accessToken)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Println("Watching note events (Ctrl+C to stop)...")
	for {
		var msg websocket.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		fmt.Printf("[%s] %s %s\n", time.UnixMilli(msg.Timestamp).Format("15:04:05"), msg.Type, string(msg.Payload))
	}
}
