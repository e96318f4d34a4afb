// Command fibwhole computes Fibonacci numbers with linked-list whole-number
// accumulators.
package main

import (
	"context"
	"os"

	"github.com/agbru/fibwhole/internal/app"
	apperrors "github.com/agbru/fibwhole/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitCodeFor(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
