package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ayzahstore/ayzah-backend/internal/aws"
	"github.com/ayzahstore/ayzah-backend/internal/handlers"
	"github.com/ayzahstore/ayzah-backend/internal/metrics"
)

func setupRouter(cfg handlers.Config, m *metrics.ServerMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	if m != nil {
		r.Use(m.Middleware())
	}

	// health
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "ayzah-backend"})
	})

	handlers.Register(r, cfg)

	return r
}

func main() {
	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	cfg := handlers.Config{
		DynamoDBClient:  clients.DynamoDB,
		SQSClient:       clients.SQS,
		UsersTable:      os.Getenv("USERS_TABLE"),
		ProductsTable:   os.Getenv("PRODUCTS_TABLE"),
		CategoriesTable: os.Getenv("CATEGORIES_TABLE"),
		CartsTable:      os.Getenv("CARTS_TABLE"),
		CouponsTable:    os.Getenv("COUPONS_TABLE"),
		OrdersTable:     os.Getenv("ORDERS_TABLE"),
		OrdersQueueURL:  os.Getenv("ORDERS_QUEUE_URL"),
	}

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		m := metrics.NewServerMetrics("api")
		r := setupRouter(cfg, m)
		r.GET("/metrics", gin.WrapH(metrics.Handler()))

		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter; CloudWatch carries the metrics there, so no scrape endpoint
	r := setupRouter(cfg, nil)
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
