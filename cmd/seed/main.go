package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/leadtrackhq/mini-crm/backend/internal/config"
	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
	"github.com/leadtrackhq/mini-crm/backend/internal/repository"
	"github.com/leadtrackhq/mini-crm/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert random leads, 3: insert random followups)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("the number of users must be positive")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Seed.EmailDomain)
			if err != nil {
				slog.Error("unable to generate user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("unable to insert user", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("users inserted", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("the number of leads must be positive")
			return
		}

		// collect user ids so some leads come out assigned
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("unable to fetch users", slog.String("error", err.Error()))
			return
		}
		assigneeIDs := make([]int64, 0, len(users))
		for _, user := range users {
			assigneeIDs = append(assigneeIDs, user.ID)
		}

		cnt := n
		for i := 0; i < n; i++ {
			lead := utils.GenerateRandomLead(cfg.Seed.EmailDomain, assigneeIDs)
			if err := repo.CreateLead(lead); err != nil {
				slog.Error("unable to insert lead", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("leads inserted", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("the number of followups must be positive")
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("unable to fetch users", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 {
			slog.Error("no users to attribute followups to, run -op 1 first")
			return
		}

		leads, _, err := repo.ListLeads(domain.LeadFilter{Page: 1, Limit: 1000})
		if err != nil {
			slog.Error("unable to fetch leads", slog.String("error", err.Error()))
			return
		}
		if len(leads) == 0 {
			slog.Error("no leads to follow up on, run -op 2 first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			lead := leads[rand.Intn(len(leads))]
			creator := users[rand.Intn(len(users))]

			followup := utils.GenerateRandomFollowup(lead.ID, creator.ID)
			if err := repo.CreateFollowup(followup); err != nil {
				slog.Error("unable to insert followup", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("followups inserted", slog.Int("count", n-cnt))
	default:
		slog.Error("unknown operation")
	}
}
