package main

import (
	"context"
	"log"
	"time"

	"bloomora/internal/config"
	httpapi "bloomora/internal/controllers/http"
	"bloomora/internal/infra"
	mmysql "bloomora/internal/infra/mysql"
	"bloomora/internal/infra/rabbitmq"
	"bloomora/internal/infra/telegram"
	"bloomora/internal/notifier"
	mysqlrepo "bloomora/internal/repository/mysql"
	"bloomora/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

func main() {
	config.Load()

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	customerRepo := mysqlrepo.NewCustomerRepository(db)

	publisher, err := rabbitmq.NewPublisher(config.AMQPURL(), config.EventExchange())
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	consumer, err := rabbitmq.NewConsumer(config.AMQPURL(), config.EventExchange(), rabbitmq.EventQueue)
	if err != nil {
		log.Fatalf("failed to init consumer: %v", err)
	}
	defer consumer.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         config.RedisAddr(),
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	feed := infra.NewChangeFeed(redisClient)

	sink, err := telegram.NewSink(config.TelegramBotToken(), config.TelegramChatIDs())
	if err != nil {
		log.Fatalf("failed to init telegram sink: %v", err)
	}

	actors := infra.ContextActorProvider{}

	customerService := services.NewCustomerService(customerRepo, publisher, actors, feed)
	orderService := services.NewOrderService(orderRepo, customerRepo, publisher, actors, feed)
	orderService.SetRedisClient(redisClient)
	reportService := services.NewReportService(orderRepo, customerRepo)

	handler := httpapi.NewHandler(customerService, orderService, reportService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	worker := notifier.NewWorker(consumer, sink)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		log.Printf("starting notifier worker")
		return worker.Run(ctx)
	})
	g.Go(func() error {
		port := config.Port()
		log.Printf("starting bloomora service on port %s", port)
		return r.Run(":" + port)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("service stopped: %v", err)
	}
}
