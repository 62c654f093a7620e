package main

import (
	"fmt"
	"os"
	"path/filepath"

	"charity-events-backend/cmd/charity-events/apis"
	"charity-events-backend/cmd/charity-events/model"
	"charity-events-backend/cmd/charity-events/repository"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type EnvCfg struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":3000"`
	PublicDir  string `envconfig:"PUBLIC_DIR" default:"public"`
	UploadDir  string `envconfig:"UPLOAD_DIR" default:"public/img"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`
}

func main() {
	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	// Optional .env; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg EnvCfg
	err = envconfig.Process("CHARITY_EVENTS", &cfg)
	if err != nil {
		panic(err)
	}

	gormCfg := &gorm.Config{}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(
		postgres.Open(
			fmt.Sprintf(
				"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBName,
			),
		),
		gormCfg,
	)
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(&model.Event{}, &model.Registration{})
	if err != nil {
		panic(err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	rootg := e.Group("")
	apig := rootg.Group("/api")
	admng := apig.Group("/admin")

	apis.
		NewHealthCheckAPI(db).
		Setup(rootg)

	eventRepo := repository.NewEventRepo(db)
	registrationRepo := repository.NewRegistrationRepo(db)

	apis.
		NewEventAPI(eventRepo, registrationRepo, cfg.Debug).
		Setup(apig)

	apis.
		NewAdminAPI(eventRepo, registrationRepo, cfg.Debug).
		Setup(admng)

	apis.
		NewUploadAPI(cfg.UploadDir).
		Setup(apig)

	// Static pages; the presentation layer lives entirely in public/.
	e.Static("/", cfg.PublicDir)
	e.GET("/", pageHandler(cfg.PublicDir, "index.html"))
	e.GET("/search", pageHandler(cfg.PublicDir, "search.html"))
	e.GET("/event/:id", pageHandler(cfg.PublicDir, "detail.html"))
	e.GET("/admin", pageHandler(cfg.PublicDir, "admin.html"))

	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}

func pageHandler(dir, page string) echo.HandlerFunc {
	path := filepath.Join(dir, page)
	return func(c echo.Context) error {
		return c.File(path)
	}
}
