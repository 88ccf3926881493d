package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Quiexx/selup-landing-demo/internal/config"
	"github.com/Quiexx/selup-landing-demo/internal/errors"
)

const configTemplate = `{
  "name": "%s",
  "addr": ":8080",
  "static": {
    "dir": "public"
  },
  "page": {
    "sections": ["hero", "features", "pricing"],
    "contact": {
      "form": "contact-form",
      "input": "contact-email",
      "error": "contact-error"
    }
  },
  "reveal": {
    "threshold": 0.2
  }
}
`

func initCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a selup.json in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "landing", "Project name")

	return cmd
}

func runInit(name string) error {
	path := filepath.Join(".", config.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.CategoryCLI, "%s already exists", path)
	}

	content := fmt.Sprintf(configTemplate, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("Next: put your page in public/index.html and run 'selup serve'")
	return nil
}
