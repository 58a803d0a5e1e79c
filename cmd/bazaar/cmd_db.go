package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/database/seeders"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/migration"
	"gorm.io/gorm"
)

// bootDB loads config and opens the database connection.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect()
}

// bazaar migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(db).Run()
	},
}

// bazaar migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(db).Rollback()
	},
}

// bazaar migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return migration.New(db).Status()
	},
}

// bazaar seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(db)
	},
}
