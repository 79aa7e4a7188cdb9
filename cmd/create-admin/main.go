// create-admin seeds an approved administrator account. The API has no
// self-service path to admin: someone with server access runs this once.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"maeul-forum/internal/core/auth"
	"maeul-forum/internal/core/config"
	"maeul-forum/internal/core/database"
	"maeul-forum/internal/domain"
)

func main() {
	phone := flag.String("phone", "", "login phone number")
	password := flag.String("password", "", "initial password")
	nickname := flag.String("nickname", "관리자", "display nickname")
	dong := flag.String("dong", "101", "building number")
	ho := flag.String("ho", "101", "unit number")
	flag.Parse()

	if *phone == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -phone <phone> -password <password> [-nickname ...] [-dong ...] [-ho ...]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	db, err := database.New(database.Opts{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		LogLevel: cfg.DB.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		fmt.Fprintf(os.Stderr, "automigrate: %v\n", err)
		os.Exit(1)
	}

	var existing domain.User
	if err := db.First(&existing, "phone = ?", *phone).Error; err == nil {
		fmt.Fprintf(os.Stderr, "a user with phone %s already exists (id=%d)\n", *phone, existing.ID)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	admin := domain.User{
		Phone:      *phone,
		Password:   hash,
		Nickname:   *nickname,
		Dong:       *dong,
		Ho:         *ho,
		Status:     domain.UserApproved,
		Role:       domain.RoleAdmin,
		ApprovedAt: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		fmt.Fprintf(os.Stderr, "create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("admin account created: id=%d phone=%s\n", admin.ID, admin.Phone)
}
