// C:\Users\wasab\OneDrive\デスクトップ\REGI\main.go
package main

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"regi/advisor"
	"regi/cart"
	"regi/config"
	"regi/database"
	"regi/ledger"
	"regi/loader"
	"regi/scanner"
	"regi/stock"
	"regi/undo"
)

var appTemplate *template.Template

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
		cfg = config.GetConfig()
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	store := database.NewSQLiteStore(dbConn)
	state := loader.LoadState(store, cfg.LowStockThreshold)

	catalog := stock.NewCatalog(cfg.LowStockThreshold)
	catalog.Load(state.Products, state.Threshold)

	sales := ledger.NewLedger()
	sales.Load(state.Sales)

	undoMgr := undo.NewManager(time.Duration(cfg.UndoSeconds) * time.Second)

	engine := cart.NewEngine(store, catalog, sales, undoMgr)
	engine.LoadCart(state.Cart)
	engine.Subscribe(func(ev cart.Event) {
		log.Printf("INFO: event %s product=%s sale=%s", ev.Type, ev.ProductID, ev.SaleID)
	})

	advisorClient := advisor.NewClient()
	scanManager := scanner.NewManager()

	staticFS := os.DirFS("static")
	appTemplate, err = template.ParseFS(staticFS, "index.html")
	if err != nil {
		log.Fatalf("Failed to parse index.html: %v", err)
	}
	log.Println("HTML templates loaded and parsed.")

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := appTemplate.ExecuteTemplate(w, "index.html", struct {
			Kiosk bool
		}{
			Kiosk: cfg.Kiosk,
		})
		if err != nil {
			log.Printf("Error executing main template: %v", err)
		}
	})

	SetupRoutes(mux, engine, advisorClient, scanManager)

	url := "http://localhost" + cfg.ListenAddr
	log.Printf("Starting server on %s", url)

	if cfg.Kiosk {
		go launchKiosk(url)
	} else {
		openBrowser(url)
	}

	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
