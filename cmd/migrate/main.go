package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"ai-voiceshop-be/internal/model"
	"ai-voiceshop-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	dim := 768
	if raw := os.Getenv("EMBEDDING_DIM"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Fatalf("Error: EMBEDDING_DIM must be a positive integer, got %q", raw)
		}
		dim = parsed
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		log.Printf("Warn: Failed to create vector extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	log.Printf("Step 3: Fixing embedding column to vector(%d)...", dim)
	alterSQL := fmt.Sprintf(`ALTER TABLE products ALTER COLUMN embedding TYPE vector(%d);`, dim)
	if err := db.Exec(alterSQL).Error; err != nil {
		log.Fatal("Error: Failed to set embedding dimension:", err)
	}

	log.Println("Step 4: Creating vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_products_embedding
		ON products USING hnsw (embedding vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create vector index: %v. Continuing...", err)
	}

	log.Println("Migration complete.")
}
