package main

import (
	"GIVD-Backend/cmd/config"
	migration "GIVD-Backend/cmd/database/migrate"
	"GIVD-Backend/internal/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		logrus.Fatalf("error running migrations: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		logrus.Fatalf("error setting up app: %v", err)
	}

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}
