package main

import (
	"github.com/mzhao28/commune/config"
	"github.com/mzhao28/commune/models"
	"github.com/mzhao28/commune/routes"
	"github.com/mzhao28/commune/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg,
		&models.User{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)

	r := routes.SetupRouter(cfg, db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
