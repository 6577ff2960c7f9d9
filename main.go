package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg/routes"
	"github.com/DedS3t/monopoly-engine/platform/cache"
	"github.com/DedS3t/monopoly-engine/platform/config"
	"github.com/DedS3t/monopoly-engine/platform/database"
	"github.com/DedS3t/monopoly-engine/platform/logging"
	"github.com/DedS3t/monopoly-engine/platform/queries"
	"github.com/DedS3t/monopoly-engine/platform/session"
	socket "github.com/DedS3t/monopoly-engine/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

// archiveFor is how long a finished game's snapshot stays readable.
const archiveFor = 24 * time.Hour

func main() {
	simulate := flag.String("simulate", "", "play an AI-only game with these comma separated levels and print the result")
	turns := flag.Int("turns", 500, "turn limit for -simulate")
	seed := flag.Int64("seed", 0, "seed for -simulate, 0 picks one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.Init(cfg); err != nil {
		log.WithError(err).Fatal("bad log level")
	}

	if *simulate != "" {
		if err := runSimulation(cfg, *simulate, *turns, *seed); err != nil {
			log.WithError(err).Fatal("simulation failed")
		}
		return
	}
	if err := cfg.CheckServer(); err != nil {
		log.WithError(err).Fatal("server not configured")
	}

	db := database.PostgreSQLConnection(cfg)
	defer db.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.CreateSchema(ctx, db); err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	cancel()
	records := queries.New(db)

	pool := cache.CreateRedisPool(cfg.RedisURL)
	defer pool.Close()

	store := cache.NewStore(pool)

	var (
		sockets *socket.Server
		mgr     *session.Manager
	)
	mgr, err = session.NewManager(session.Options{
		BoardFile: cfg.BoardFile,
		CardsFile: cfg.CardsFile,
		Saver:     store,
		OnEnd: func(s *session.Session, winner *models.Player) {
			name := ""
			if winner != nil {
				name = winner.Name
			}
			if err := records.SetStatus(s.ID, models.GameStatusOver, name); err != nil {
				log.WithError(err).WithField("game", s.ID).Warn("game record not closed")
			}
			if err := store.Retire(s.ID, archiveFor); err != nil {
				log.WithError(err).WithField("game", s.ID).Warn("snapshot not retired")
			}
			if sockets != nil {
				sockets.Forget(s)
			}
			mgr.Remove(s.ID)
		},
	})
	if err != nil {
		log.WithError(err).Fatal("board or cards invalid")
	}

	sockets, err = socket.New(mgr, log.StandardLogger())
	if err != nil {
		log.WithError(err).Fatal("socket server")
	}
	go func() {
		if err := sockets.Serve(); err != nil {
			log.WithError(err).Error("socket server stopped")
		}
	}()
	defer sockets.Close()
	go func() {
		if err := http.ListenAndServe(cfg.SocketAddr, sockets.Handler(cfg.CORSOrigins)); err != nil {
			log.WithError(err).Fatal("socket listener")
		}
	}()

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: strings.Join(cfg.CORSOrigins, ",")}))
	routes.AuthRoutes(app, &controllers.AuthController{Users: records, Secret: []byte(cfg.JWTSecret), Log: log.StandardLogger()})
	routes.GameRoutes(app, &controllers.GameController{Sessions: mgr, Records: records, Archive: store, Log: log.StandardLogger()})

	log.WithFields(log.Fields{"http": cfg.HTTPAddr, "socket": cfg.SocketAddr}).Info("listening")
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("http listener")
	}
}

// runSimulation plays one game between AI seats without any storage.
func runSimulation(cfg *config.Config, levels string, turns int, seed int64) error {
	mgr, err := session.NewManager(session.Options{BoardFile: cfg.BoardFile, CardsFile: cfg.CardsFile})
	if err != nil {
		return err
	}
	dto := models.GameCreateDto{Name: "simulation", Seed: seed, RollForOrder: true}
	for i, level := range strings.Split(levels, ",") {
		dto.Players = append(dto.Players, models.PlayerSpec{
			Name:       fmt.Sprintf("%s %d", strings.TrimSpace(level), i+1),
			Controller: models.AI,
			Level:      strings.TrimSpace(level),
		})
	}
	s, err := mgr.Create(dto)
	if err != nil {
		return err
	}
	if _, err := s.Run(turns); err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Seed     int64       `json:"seed"`
		Snapshot interface{} `json:"snapshot"`
	}{s.Seed, s.Snapshot()})
}
