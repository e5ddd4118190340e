package main

import (
	"context"
	"os"
	"strings"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"
	"Group_Hub/internal/repository/mysql"
	"Group_Hub/internal/repository/redis"
	"Group_Hub/internal/router"
	"Group_Hub/internal/service"
)

func main() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "user:password@tcp(127.0.0.1:3306)/grouphub?charset=utf8mb4&parseTime=True"
	}
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接redis
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	if err := redis.Init(redisAddr, os.Getenv("REDIS_PASS"), 0); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Application{},
		&model.ApplicationOutbox{},
		&model.Comment{},
		&model.CommentLike{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// outbox 投递：配了 kafka 就发 kafka，否则先打日志
	sender := service.Sender(service.LogSender)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   "application-events",
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)

	// 通过人数冗余计数对账
	go service.NewGroupCountReconciler(mysql.DB).Run(ctx)

	// Gin
	r := router.InitRouter()
	if err := r.Run(":8080"); err != nil {
		return
	}
}
