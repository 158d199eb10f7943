// Command newsctl runs schema migrations and seeding against the article store
package main

import (
	"context"
	"os"

	"github.com/community-news-api/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCommand(nil).ExecuteContext(context.Background()); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
