// Command reconcile processes extracted invoice JSON files in batch.
// Usage: reconcile process --input <dir> --output <dir> [--concurrency N] [--report csv|xlsx]
package main

import (
	"log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
