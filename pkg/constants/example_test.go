package constants_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/revcheck/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	dir, err := os.MkdirTemp("", "revcheck-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	// Create file with standard permissions
	file := filepath.Join(dir, constants.DefaultFormattedFile)
	data := []byte(constants.ColumnDocNo + "\n")
	if err := os.WriteFile(file, data, constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created %s with %o permissions\n", filepath.Base(file), constants.FilePermissions)
	// Output:
	// Created client_formatted.csv with 644 permissions
}

// Example_verdicts shows how downstream collaborators match verdict texts.
func Example_verdicts() {
	results := []string{constants.ResultVerified, "2/01/02/2020", constants.ResultNotFound}
	for _, r := range results {
		switch {
		case r == constants.ResultVerified:
			fmt.Println(r, "-> ok")
		case strings.Contains(r, constants.ResultNotFound):
			fmt.Println(r, "-> fill", constants.FillNotFound)
		default:
			fmt.Println(r, "-> fill", constants.FillNeedsCheck)
		}
	}
	// Output:
	// Verified -> ok
	// 2/01/02/2020 -> fill FFFF99
	// Not found -> fill FFCCCC
}
