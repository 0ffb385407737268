package main

import (
	"context"
	"net/http"
	"time"

	"github.com/featherdev/chirp/imagestore"
	"github.com/featherdev/chirp/server"
	"github.com/featherdev/chirp/server/middlewares"
	"github.com/featherdev/chirp/store"
	"github.com/featherdev/chirp/utils"
	"github.com/featherdev/chirp/utils/dotenv"
	Flag "github.com/featherdev/chirp/utils/flag"
	Logger "github.com/featherdev/chirp/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

const connectTimeout = 10 * time.Second

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	Flag.Parse()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	// re-init so the logger picks up parsed flags and loaded env
	Logger.InitLogger()

	middlewares.Setup()
	utils.InitTracer()
	utils.InitProfiler()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	db, err := store.Connect(ctx)
	if err != nil {
		Logger.Log.Fatal("fail to connect to mongodb: ", err)
	}
	stores := store.NewMongoStores(db)

	var images imagestore.ImageStore
	if Flag.IsDevelopment {
		// local runs don't need an S3 bucket
		images = &imagestore.FakeImageStore{}
	} else {
		images, err = imagestore.NewS3ImageStore()
		if err != nil {
			Logger.Log.Fatal("fail to setup image store: ", err)
		}
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(gintrace.Middleware(Flag.ServiceName))

	srv := server.NewServer(stores, images)
	srv.RegisterRoutes(router, middlewares.Session())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	Logger.Log.Info("api server starts up")
	router.Run(":8080")
}
