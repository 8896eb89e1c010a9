package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"holdem-room/server/ai"
	"holdem-room/server/game"
	"holdem-room/server/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	migrateOnly := false
	for _, a := range os.Args[1:] {
		if a == "--migrate" {
			migrateOnly = true
		}
	}

	var db *store.DB
	if dsn := getenv("DATABASE_URL", ""); dsn != "" {
		d, err := store.Open(dsn)
		if err != nil {
			if migrateOnly {
				log.Fatalf("db open: %v", err)
			}
			log.Printf("db disabled (open failed): %v", err)
		} else {
			db = d
			defer db.Close(context.Background())
			if migrateOnly || asBool(getenv("AUTO_MIGRATE", "")) {
				if err := store.Migrate(context.Background(), db); err != nil {
					log.Fatalf("migrate: %v", err)
				}
				log.Println("schema migrated")
			}
		}
	} else if migrateOnly {
		log.Fatal("--migrate requires DATABASE_URL")
	}
	if migrateOnly {
		return
	}

	profiles := ai.DefaultProfiles
	if path := getenv("AI_PROFILES", ""); path != "" {
		m, err := ai.LoadProfiles(path)
		if err != nil {
			log.Fatalf("load AI profiles %s: %v", path, err)
		}
		profiles = m
		log.Printf("AI profiles loaded from %s", path)
	}

	reg := game.NewRegistry()

	addr := ":" + getenv("PORT", "8080")
	httpTimeout := time.Duration(atoiDef(os.Getenv("HTTP_TIMEOUT_SECONDS"), 15)) * time.Second
	srv := &http.Server{
		Addr:         addr,
		Handler:      Router(reg, db, profiles),
		ReadTimeout:  httpTimeout,
		WriteTimeout: httpTimeout,
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		<-ch
		log.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Printf("holdem-room listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

//
// ===== env helpers =====
//

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func asBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func atoiDef(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func intDef(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func strDef(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
