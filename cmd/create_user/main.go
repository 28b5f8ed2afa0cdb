package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"manager/models"
	"manager/pkg/store"
	"manager/repos"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <login> <password> [fullname]")
		os.Exit(2)
	}
	login := os.Args[1]
	password := os.Args[2]
	fullname := ""
	if len(os.Args) > 3 {
		fullname = strings.Join(os.Args[3:], " ")
	}

	dsn := os.Getenv("MANAGER_STORE_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("MANAGER_STORE_DSN not set in environment")
	}
	db, err := store.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	if err := db.Gorm().AutoMigrate(&models.User{}); err != nil {
		log.Printf("warning: migrate users: %v", err)
	}

	users := repos.NewUsers(db, repos.PlainCredentials{})
	u, err := users.Create(context.Background(), repos.CreateUserInput{
		Login:    login,
		Password: password,
		Fullname: fullname,
	})
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%s\n", u.Login, u.ID)
}
