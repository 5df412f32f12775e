package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/halalhustle/gatekeeper/internal/config"
	"github.com/halalhustle/gatekeeper/internal/handlers"
	appMiddleware "github.com/halalhustle/gatekeeper/internal/middleware"
	"github.com/halalhustle/gatekeeper/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatalf("discord session: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers

	// Moderation pipeline
	tracker := services.NewRateWindowTracker(cfg.TimeWindow)
	engine := services.NewModerationEngine(tracker, services.ModerationEngineConfig{
		MonitoredChannelID:       cfg.FreeChannelID,
		AllowlistedRoleIDs:       cfg.WhitelistedRoleIDs,
		MaxMessages:              cfg.MaxMessages,
		MaxLength:                cfg.MaxLength,
		MuteDuration:             cfg.MuteDuration,
		DeleteOnProhibitedPhrase: cfg.ProhibitedPhraseAction == "delete",
	})
	actions := services.NewModerationActions(session, cfg.FreeSessionChannelID)

	var scanner *services.AttachmentScanner
	if cfg.SafeSearchEnabled {
		scanner = services.NewAttachmentScanner(actions, nil)
		log.Printf("attachment SafeSearch enabled")
	}

	// Verification pipeline
	var normalizer services.Normalizer
	if cfg.OpenAIAPIKey != "" {
		normalizer = services.NewCountryNormalizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Printf("OPENAI_API_KEY not set, country normalization disabled")
	}

	var submitter services.Submitter
	switch cfg.Submitter() {
	case config.SubmitterWebinarJam:
		submitter = services.NewWebinarJamSubmitter(cfg.WebinarAPIURL, cfg.WebinarAPIKey, cfg.WebinarID, cfg.WebinarSchedule)
		log.Printf("verification submitter: webinarjam (webinar=%s)", cfg.WebinarID)
	default:
		if cfg.FormSparkURL == "" {
			log.Fatal("either FORMSPARK_URL or WEBINAR_API_URL is required")
		}
		submitter = services.NewFormSparkSubmitter(cfg.FormSparkURL)
		log.Printf("verification submitter: formspark")
	}

	roleGuard := services.NewRoleGrantGuard(session, cfg.GuildID, cfg.VerifyRoleID, cfg.UnverifiedRoleID)
	workflow := services.NewVerificationWorkflow(normalizer, submitter, roleGuard)

	// Gateway handlers
	memberHandler := handlers.NewMemberHandler(cfg, roleGuard)
	messageHandler := handlers.NewMessageHandler(cfg, engine, actions, scanner)
	interactionHandler := handlers.NewInteractionHandler(cfg, workflow)

	session.AddHandler(memberHandler.HandleGuildMemberAdd)
	session.AddHandler(messageHandler.HandleMessageCreate)
	session.AddHandler(interactionHandler.HandleInteractionCreate)
	session.AddHandlerOnce(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("✅ Logged in as %s", r.User.String())
	})

	// Ops HTTP surface
	go serveOps(cfg, engine)

	if err := session.Open(); err != nil {
		log.Fatalf("gateway open: %v", err)
	}
	defer session.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Printf("shutting down")
}

func serveOps(cfg *config.Config, engine *services.ModerationEngine) {
	statusHandler := handlers.NewStatusHandler(engine)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.OpsJWTSecret != "" {
		r.Route("/api", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.JWTAuth(cfg.OpsJWTSecret))
				r.Get("/stats", statusHandler.GetStats)
			})
		})
	} else {
		log.Printf("OPS_JWT_SECRET not set, /api/stats disabled")
	}

	log.Printf("ops server listening on %s", cfg.OpsAddr)
	if err := http.ListenAndServe(cfg.OpsAddr, r); err != nil {
		log.Printf("ops server stopped: %v", err)
	}
}
