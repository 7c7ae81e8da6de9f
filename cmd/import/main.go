package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/catalog-console/config"
	"github.com/ikkim/catalog-console/internal/app/repository"
	"github.com/ikkim/catalog-console/internal/app/service"
	"github.com/ikkim/catalog-console/internal/db"
	"github.com/ikkim/catalog-console/internal/storage"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/ikkim/catalog-console/pkg/logger"
)

func main() {
	assumeYes := flag.Bool("y", false, "skip the confirmation prompt")
	flag.Parse()

	// 명령줄 인자 확인
	if flag.NArg() < 1 {
		log.Fatal("Usage: go run cmd/import/main.go [-y] <xlsx_file_path>")
	}
	filePath := flag.Arg(0)

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      "console",
		EnableColor: true,
	})

	client, err := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Token:   cfg.Catalog.Token,
		Timeout: cfg.Catalog.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create catalog client:", err)
	}

	var submissionRepo repository.SubmissionRepository
	if cfg.Database.Enabled {
		if err := db.Initialize(&cfg.Database); err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		submissionRepo = repository.NewSubmissionRepository(db.GetDB())
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	variants := 0
	for _, p := range products {
		variants += len(p.Variants)
	}
	fmt.Printf("Products to import: %d (variants: %d)\n", len(products), variants)

	// 사용자 확인
	if !*assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	editor := service.NewEditorService(
		client,
		storage.NewMemoryPreviewStore(""),
		nil,
		service.NewLocalGuard(),
		service.NewSubmissionService(submissionRepo),
		service.EditorConfig{ImageLimit: cfg.Session.ImageLimit, MaxUploadBytes: cfg.Session.MaxUploadBytes},
	)
	defer editor.Shutdown(context.Background())

	imported, failed := run(context.Background(), NewImporter(editor), products)

	fmt.Println("Import finished.")
	fmt.Printf("Imported: %d, failed: %d\n", imported, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// run imports every product and keeps going past failures
func run(ctx context.Context, im *Importer, products []*ProductRow) (imported, failed int) {
	for _, p := range products {
		result, err := im.Import(ctx, p)
		if err != nil {
			failed++
			fmt.Printf("  row %d %q: %v\n", p.Line, p.Name, err)
			continue
		}
		imported++
		fmt.Printf("  row %d %q: %s (%s)\n", p.Line, p.Name, result.Message, result.Slug)
	}
	return imported, failed
}
