package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"GreenVest/internal/store"
)

var registerCmd = &cobra.Command{
	Use:   "register USERNAME",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	password := prompt("Create a password: ")
	if err := a.auth.Register(cmd.Context(), args[0], password); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return fmt.Errorf("username %q already exists", args[0])
		}
		return err
	}
	fmt.Println("User registered successfully!")
	return nil
}
