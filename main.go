package main

import (
	"database/sql"
	"log"

	"github.com/Faus21/wander-wave-sub000/cmd/start"
	"github.com/Faus21/wander-wave-sub000/config"
	"github.com/Faus21/wander-wave-sub000/internal/handler"
	"github.com/Faus21/wander-wave-sub000/internal/middleware"
	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/internal/repository"
	"github.com/Faus21/wander-wave-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//@title Wander Wave API
//@version 1.0
//@description 旅行游记社区的api服务
//@host localhost:8080
//@BasePath /

func main() {
	if err := config.Init("config/config.yaml"); err != nil {
		log.Fatalf("Config init failed:%v", err)
	}
	gin.SetMode(config.Cfg.Server.Mode)
	dsn := config.Cfg.Database.GetDSN()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
		Logger:                                   logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Mysql init failed:%v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	defer func(sqlDB *sql.DB) {
		if err := sqlDB.Close(); err != nil {
			log.Fatal(err)
		}
	}(sqlDB)
	err = db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.HashTag{},
		&model.Subscription{},
		&model.Like{},
		&model.Save{},
		&model.Notification{},
	)
	if err != nil {
		log.Fatalf("Migrate failed:%v", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Cfg.Redis.GetAddr(),
		Password: config.Cfg.Redis.Password,
		DB:       config.Cfg.Redis.DB,
		PoolSize: config.Cfg.Redis.PoolSize,
	})
	repos := repository.NewRepositories(db)
	svc := service.NewService(db, rdb, repos, config.Cfg.JWT.Secret)
	httpHandler := handler.NewHandler(svc)
	r := gin.Default()
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatal(err)
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Use(middleware.CustomRecovery())
	start.SetRoute(r, httpHandler, repos, rdb)
}
