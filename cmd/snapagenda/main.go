package main

import (
	"context"
	"os"
	"snapagenda-backend/cmd/snapagenda/apis"
	"snapagenda-backend/cmd/snapagenda/extract"
	"snapagenda-backend/cmd/snapagenda/model"
	"snapagenda-backend/cmd/snapagenda/repository"
	"snapagenda-backend/cmd/snapagenda/session"

	"github.com/glebarez/sqlite"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type EnvCfg struct {
	ListenAddress string `envconfig:"LISTEN_ADDRESS" default:":8080"`
	DBPath        string `envconfig:"DB_PATH" default:"snapagenda.db"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`
	GeminiModel   string `envconfig:"GEMINI_MODEL"`
}

func main() {

	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	var cfg EnvCfg
	err = envconfig.Process("SNAPAGENDA", &cfg)
	if err != nil {
		panic(err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath))
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(&model.Slot{})
	if err != nil {
		panic(err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1")

	apis.
		NewHealthCheckAPI(db).
		Setup(rootg)

	slotRepo := repository.NewSlotRepo(db)
	eventStore := repository.NewEventStore(context.Background(), slotRepo)
	extractor := extract.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	controller := session.NewController(eventStore, extractor)

	apis.
		NewEventAPI(eventStore).
		Setup(v1g)

	apis.
		NewSessionAPI(controller).
		Setup(v1g)

	e.Start(cfg.ListenAddress)

}
