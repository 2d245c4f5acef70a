package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"shop_backend/internal/config"
	db "shop_backend/internal/database"
	messages "shop_backend/internal/msg_gen"

	"github.com/samber/mo"
	"gorm.io/gorm"
)

const usage = `usage: shop_backend <command> [args]

commands:
  migrate               create or update the schema
  seed                  load the demo catalog
  pricelist <shop-id>   print a shop's price list
  prices <shop-id>      print an editable price sheet
  apply-prices <file>   apply an edited price sheet
  add-listing <file>    add a shop listing
  order <order-id>      print an order summary`

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute возвращает код выхода, чтобы соединение с базой закрывалось и при ошибке
func execute(args []string) int {
	if len(args) < 1 {
		fmt.Println(usage)
		return 2
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Println("config:", err)
		return 1
	}
	DB, err := db.Connect(cfg)
	if err != nil {
		log.Println(err)
		return 1
	}
	defer db.Close(DB)

	if err := run(DB, args[0], args[1:]); err != nil {
		log.Println(err)
		return 1
	}
	return 0
}

func run(DB *gorm.DB, command string, args []string) error {
	switch command {
	case "migrate":
		return db.Migrate(DB)

	case "seed":
		if err := db.Migrate(DB); err != nil {
			return err
		}
		if err := db.SeedTestData(DB); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Println("demo catalog loaded")
		return nil

	case "pricelist", "prices":
		id, err := idArg(args)
		if err != nil {
			return err
		}
		shop, err := db.GetShop(DB, id)
		if err != nil {
			return err
		}
		infos, err := db.ListProductInfos(DB, db.ProductFilter{Shop: mo.Some(id)})
		if err != nil {
			return err
		}
		if command == "prices" {
			fmt.Println(messages.MakePriceSheet(infos))
		} else {
			fmt.Println(messages.MakeMessagePriceList(shop, infos))
		}
		return nil

	case "apply-prices":
		text, err := fileArg(args)
		if err != nil {
			return err
		}
		updated, err := db.ApplyPriceSheet(DB, text)
		if err != nil {
			return fmt.Errorf("price update failed: %w", err)
		}
		log.Printf("updated %d listings", updated)
		return nil

	case "add-listing":
		text, err := fileArg(args)
		if err != nil {
			return err
		}
		info, shop, product, err := messages.ParseNewListing(text)
		if err != nil {
			return err
		}
		if err := db.AddListing(DB, shop, product, &info); err != nil {
			return fmt.Errorf("listing save error: %w", err)
		}
		log.Printf("listing %d added", info.ID)
		return nil

	case "order":
		id, err := idArg(args)
		if err != nil {
			return err
		}
		order, err := db.GetOrder(DB, id)
		if err != nil {
			return err
		}
		fmt.Println(messages.MakeOrderSummary(order))
		return nil
	}

	return fmt.Errorf("unknown command %q\n%s", command, usage)
}

func idArg(args []string) (uint, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing id argument")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q: %w", args[0], err)
	}
	return uint(id), nil
}

func fileArg(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("missing file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
