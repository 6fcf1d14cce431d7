package main

import (
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/danmarai/slingshot-flyer/internal/api"
	"github.com/danmarai/slingshot-flyer/internal/catalog"
	"github.com/danmarai/slingshot-flyer/internal/progress"
	"github.com/danmarai/slingshot-flyer/internal/replay"
	"github.com/danmarai/slingshot-flyer/internal/sim"
)

func main() {
	var (
		savePath     = flag.String("save", "data/save.json", "path to the player save file")
		upgradesPath = flag.String("upgrades", "", "optional YAML file overriding the built-in upgrade catalog")
		recordPath   = flag.String("record", "", "optional path to record flight keyframes to")
		seed         = flag.Int64("seed", 0, "obstacle layout seed (0 = derive from clock)")
	)
	flag.Parse()

	cat := catalog.Default()
	if *upgradesPath != "" {
		loaded, err := catalog.LoadFile(*upgradesPath)
		if err != nil {
			log.Fatalf("failed to load upgrade catalog: %v", err)
		}
		cat = loaded
		log.Printf("loaded upgrade catalog from %s", *upgradesPath)
	}

	store := progress.NewStore(*savePath)
	store.Load()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	engine := sim.NewEngine(cat, store, rand.New(rand.NewSource(*seed)))

	if *recordPath != "" {
		rec, err := replay.NewRecorder(*recordPath)
		if err != nil {
			log.Fatalf("failed to open replay recorder: %v", err)
		}
		defer rec.Close()
		engine.SetRecorder(rec)
		log.Printf("recording keyframes to %s", *recordPath)
	}

	engine.Start()
	defer engine.Pause()

	handler := api.New(engine)
	defer handler.Close()

	port := getPort()
	log.Printf("Server listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "4000"
}
