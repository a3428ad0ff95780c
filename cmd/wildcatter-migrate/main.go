package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/blackthreadai/wildcatter/pkg/store"
)

var (
	dsn = flag.String("dsn", os.Getenv("WILDCATTER_DSN"), "Postgres connection string (defaults to $WILDCATTER_DSN)")
)

func main() {
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Wildcatter Schema Migration Tool")
	log.Println("================================")

	if *dsn == "" {
		log.Fatal("no DSN given: pass -dsn or set WILDCATTER_DSN")
	}

	ctx := context.Background()

	st, err := store.New(ctx, *dsn)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer st.Close()

	applied, err := store.ApplyMigrations(ctx, st)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if applied == 0 {
		log.Println("✓ schema already up to date")
		return
	}
	log.Printf("✓ applied %d migration(s)", applied)
}
