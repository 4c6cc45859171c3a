package main

import (
	"context"
	"os"

	"ai-voiceshop-be/internal/config"
	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/internal/repository/implementation"
	"ai-voiceshop-be/pkg/catalog"
	"ai-voiceshop-be/pkg/database"

	"github.com/fatih/color"
)

func demoProducts() []*entity.Product {
	return []*entity.Product{
		{
			Id:              "nft-001",
			Name:            "元宇宙音乐派对通行证",
			Description:     "可进入元宇宙音乐派对的限量 NFT 门票，含 VIP 区域权限",
			Category:        "活动门票",
			Price:           50,
			Currency:        "MATIC",
			Chain:           "Polygon",
			ContractAddress: "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b",
			TokenId:         "1001",
			Metadata:        map[string]interface{}{"supply": 500, "vip": true},
		},
		{
			Id:              "nft-002",
			Name:            "像素骑士之剑",
			Description:     "链上游戏《像素王国》中的传说级武器道具",
			Category:        "游戏道具",
			Price:           80,
			Currency:        "MATIC",
			Chain:           "Polygon",
			ContractAddress: "0x2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c",
			TokenId:         "2042",
			Metadata:        map[string]interface{}{"rarity": "legendary"},
		},
		{
			Id:              "nft-003",
			Name:            "Genesis 数字艺术藏品",
			Description:     "创世系列数字艺术作品，限量发行 100 份",
			Category:        "艺术品",
			Price:           120,
			Currency:        "ETH",
			Chain:           "Ethereum",
			ContractAddress: "0x3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d",
			TokenId:         "7",
			Metadata:        map[string]interface{}{"artist": "Nova", "edition": "1/100"},
		},
		{
			Id:              "nft-004",
			Name:            "赛博龙蛋",
			Description:     "可孵化的赛博宠物龙蛋，孵化后属性随机",
			Category:        "游戏道具",
			Price:           35,
			Currency:        "MATIC",
			Chain:           "Polygon",
			ContractAddress: "0x4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e",
			TokenId:         "888",
		},
		{
			Id:              "tok-001",
			Name:            "Arcade Token",
			Description:     "街机游戏平台通用代币，可兑换游戏时长与皮肤",
			Category:        "Token",
			Price:           2,
			Currency:        "USDC",
			Chain:           "Polygon",
			ContractAddress: "0x5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e4f",
		},
		{
			Id:              "nft-005",
			Name:            "极光音乐会门票",
			Description:     "极光乐队线上音乐会门票，持有者可参与抽奖",
			Category:        "活动门票",
			Price:           28,
			Currency:        "MATIC",
			Chain:           "Polygon",
			ContractAddress: "0x6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e4f5a",
			TokenId:         "3005",
		},
	}
}

func main() {
	color.Cyan("Seeding voice-shop catalog")

	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)

	var store catalog.Store
	if cfg.Ai.RetrievalBackend == "vector" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			color.Red("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		store = catalog.NewDBStore(implementation.NewProductRepository(db))
		color.Yellow("Target: Postgres catalog")
	} else {
		store = catalog.NewFileStore(cfg.Ai.CatalogFilePath, sysLogger)
		color.Yellow("Target: %s", cfg.Ai.CatalogFilePath)
	}

	ctx := context.Background()
	seeded := 0
	for _, product := range demoProducts() {
		if err := store.Upsert(ctx, product); err != nil {
			color.Red("Failed to seed %s: %v", product.Id, err)
			continue
		}
		color.Green("Seeded %s (%s)", product.Id, product.Name)
		seeded++
	}

	color.Cyan("Done: %d products", seeded)
}
