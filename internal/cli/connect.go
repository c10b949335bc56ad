package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/focuslog/internal/keyring"
)

type ConnectCmd struct {
	ConnectionString string `arg:"" optional:"" help:"Postgres connection string to store in the OS keyring."`
	Forget           bool   `help:"Remove the stored connection string."`
}

func (c *ConnectCmd) Run(ctx *Context) error {
	if c.Forget {
		if err := keyring.DeleteConnectionString(); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Println("No connection string stored.")
				return nil
			}
			return err
		}
		fmt.Println("✓ Connection string removed from keyring.")
		return nil
	}

	if c.ConnectionString == "" {
		// Status report
		if !keyring.IsAvailable() {
			return fmt.Errorf("OS keyring is not available on this system")
		}
		if _, err := keyring.GetConnectionString(); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Println("No connection string stored.")
				fmt.Println("Store one with: focuslog connect \"postgres://user@host:5432/focuslog\"")
				return nil
			}
			return err
		}
		fmt.Println("✓ A connection string is stored in the keyring.")
		fmt.Println("Use 'focuslog --remote <command>' to work against the remote database.")
		return nil
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored in the OS keyring.")
	fmt.Println("Use 'focuslog --remote <command>' to work against the remote database.")
	return nil
}
