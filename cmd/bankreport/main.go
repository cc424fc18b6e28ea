// Command bankreport runs banking reports and data quality checks from the command line.
package main

import (
	"context"
	"os"

	_ "github.com/lib/pq"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
