package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/config"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/importer"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/store"
)

var (
	filePath = flag.String("file", "", "主数据工作簿路径 (.xlsx)")
	dbURL    = flag.String("db", "", "PostgreSQL 连接串 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	if *filePath == "" {
		exitWith("file is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if *dbURL != "" {
		cfg.Database.URL = *dbURL
	}

	ctx := context.Background()

	st, err := store.New(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		exitWith(err.Error())
	}
	defer st.Close()

	result, err := importer.New(st).ImportWorkbook(ctx, *filePath)
	if result != nil && len(result.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, warning := range result.Warnings {
			fmt.Printf("- %s\n", warning)
		}
		fmt.Println()
	}
	if err != nil {
		exitWith(err.Error())
	}

	fmt.Println("Master Data Import Summary")
	fmt.Println("--------------------------")
	fmt.Printf("Batch:    %s\n", result.BatchID)
	fmt.Printf("Rows:     %d\n", result.TotalRows)
	fmt.Printf("Imported: %d\n", result.ImportedRows)
	fmt.Printf("Errors:   %d\n", result.ErrorRows)
}

func exitWith(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	os.Exit(1)
}
