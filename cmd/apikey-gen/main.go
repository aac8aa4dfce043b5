package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"analytics-gate.backend/internal/usecases"
)

var out io.Writer = os.Stdout

func main() {
	count := flag.Int("count", 1, "number of keys to generate")
	flag.Parse()

	if err := run(*count); err != nil {
		log.Fatal(err)
	}
}

func run(count int) error {
	if count <= 0 {
		return fmt.Errorf("invalid count: %d (must be positive)", count)
	}

	for i := 0; i < count; i++ {
		key, err := usecases.GenerateAPIKey()
		if err != nil {
			return fmt.Errorf("failed to generate api key: %w", err)
		}
		fmt.Fprintln(out, key)
	}
	return nil
}
