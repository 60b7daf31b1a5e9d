package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sclub/calendar/internal/auth"
	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/repository"
	"github.com/sclub/calendar/internal/timeutil"
)

// Creates the first admin account out-of-band. Registration through the API
// never grants the admin flag, so a fresh deployment runs this once.
func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "admin@sclub.local", "Admin email")
		displayName = flag.String("display-name", "admin", "Admin display name")
		password    = flag.String("password", os.Getenv("ADMIN_BOOTSTRAP_PASSWORD"), "Admin password")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "password is required (flag or ADMIN_BOOTSTRAP_PASSWORD)")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "run migrations:", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		Email:        *email,
		DisplayName:  *displayName,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    timeutil.Now(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			fmt.Printf("admin account %s already exists, nothing to do\n", *email)
			return
		}
		fmt.Fprintln(os.Stderr, "create admin:", err)
		os.Exit(1)
	}

	fmt.Printf("admin account created: id=%d email=%s\n", user.ID, *email)
}
