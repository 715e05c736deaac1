package main

import (
	"context"
	"log"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/pkg"
	"Civic_Tracker/internal/repository/mysql"
	"Civic_Tracker/internal/repository/redis"
	"Civic_Tracker/internal/router"
	"Civic_Tracker/internal/service"
)

func main() {
	dsn := "user:password@tcp(127.0.0.1:3306)/civic?charset=utf8mb4&parseTime=True"
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init("127.0.0.1:6379", "", 0); err != nil {
		panic(err)
	}

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Complaint{},
		&model.Vote{},
		&model.Comment{},
		&model.AdminLog{},
		&model.ComplaintOutbox{},
	)

	// 生命周期事件投递：kafka 起不来就降级打日志
	sender := service.LogSender
	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
		Brokers: []string{"127.0.0.1:9092"},
		Topic:   "complaint-events",
	})
	if err != nil {
		log.Printf("kafka unavailable, events go to log: %v", err)
	} else {
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(sender).Run(ctx)

	// Gin
	r := router.InitRouter()
	if err := r.Run(":8080"); err != nil {
		return
	}
}
