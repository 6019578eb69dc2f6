// cmd/deploy/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/keshon/command-deploy/internal/command/core"
	_ "github.com/keshon/command-deploy/internal/command/dev"
)

func main() {
	if err := newRootCommand(newApp(os.Stdout)).Execute(); err != nil {
		if !errors.Is(err, errDeployFailed) {
			fmt.Fprintln(os.Stderr, "[ERR]", err)
		}
		os.Exit(1)
	}
}
