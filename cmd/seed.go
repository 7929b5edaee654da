package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"

	"github.com/spf13/pflag"
)

// SeedAdminCommand creates the first super_admin, which no HTTP route can.
const SeedAdminCommand = "seed-admin"

// SeedAdmin parses args and creates a super_admin through the admin service.
func SeedAdmin(ctx context.Context, admins usecase.AdminService, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet(SeedAdminCommand, pflag.ContinueOnError)
	flags.SetOutput(out)

	name := flags.String("name", "", "admin display name (3-30 characters)")
	email := flags.String("email", "", "admin email")
	password := flags.String("password", "", "admin password")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		flags.Usage()
		return errors.New("--name, --email and --password are required")
	}

	admin, err := admins.SeedSuperAdmin(ctx, &request.AdminRegisterRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created %s %s (%s)\n", admin.Role, admin.Email, admin.ID)
	return nil
}
