// Command seed populates a development database with demo data.
package main

import (
	"flag"
	"log"

	"devbook/internal/config"
	"devbook/internal/database"
	"devbook/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "comments per post")
	flag.StringVar(&opts.Password, "password", opts.Password, "password for all seeded accounts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
