package version

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var (
	Release   = "UNKNOWN"
	BuildDate = "UNKNOWN"
	GitHash   = "UNKNOWN"
)

func PrintVersion() {
	printVersion(os.Stdout)
}

func printVersion(w io.Writer) {
	if err := json.NewEncoder(w).Encode(struct {
		Release   string
		BuildDate string
		GitHash   string
	}{
		Release:   Release,
		BuildDate: BuildDate,
		GitHash:   GitHash,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error while encode version info: %v\n", err)
	}
}
