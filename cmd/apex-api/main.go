package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/trigenys/apex-forge/internal/adapters/http"
	"github.com/trigenys/apex-forge/internal/adapters/llm"
	firestorestore "github.com/trigenys/apex-forge/internal/adapters/storage/firestore"
	memstore "github.com/trigenys/apex-forge/internal/adapters/storage/memory"
	appforge "github.com/trigenys/apex-forge/internal/app/forge"
	"github.com/trigenys/apex-forge/internal/app/distill"
	"github.com/trigenys/apex-forge/internal/app/mentor"
	"github.com/trigenys/apex-forge/internal/config"
	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	// Generation gateway: mock for dev, Gemini otherwise.
	var gen domain.Generator
	if cfg.UseMockLLM || cfg.Mode == config.ModeLocal {
		log.Println("[LLM] Using mock generator")
		gen = llm.NewMockGenerator()
	} else {
		log.Println("[LLM] Using Gemini generator")
		gen, err = llm.NewGeminiGateway(ctx, cfg)
		if err != nil {
			log.Fatalf("error initializing Gemini gateway: %v", err)
		}
	}

	// Storage: Firestore or memory.
	var (
		projectStore domain.ProjectStore
		messageStore domain.MessageStore
		userStore    domain.UserStore
	)

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 3 interfaces
		projectStore = fsStore
		messageStore = fsStore
		userStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		projectStore = memstore.NewProjectStore()
		messageStore = memstore.NewMessageStore()
		userStore = memstore.NewUserStore()
	}

	registry := forge.NewRegistry(nil)

	forgeSvc := appforge.NewService(gen, projectStore, messageStore, userStore, registry, cfg.ProModel, cfg.FlashModel)
	mentorSvc := mentor.NewService(gen, projectStore, messageStore, userStore, cfg.FlashModel)

	distiller := distill.NewDistiller(gen, projectStore, messageStore, userStore, cfg.FlashModel, cfg.DistillDebounce)
	defer distiller.Stop()
	mentorSvc.SetHistoryListener(distiller)

	handler := httpadapter.NewServer(forgeSvc, mentorSvc, projectStore, userStore)

	addr := ":" + cfg.Port
	log.Println("Apex Forge API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
