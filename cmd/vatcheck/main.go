package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Gunvolt24/vatcheck/cmd/vatcheck/cmd"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}
	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "vatcheck:", err)
	os.Exit(1)
}
