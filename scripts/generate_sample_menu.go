package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"kiosk/internal/model"

	"github.com/shopspring/decimal"
)

// generateSampleMenu writes the local fallback menu in the upstream envelope
// format, plain and gzipped:
//
//	data/menu.json     used by MENU_SOURCE=file and as the remote fallback
//	data/menu.json.gz  same content, for S3_KEY=menu.json.gz
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	// upstream sends prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	var envelope model.MenuEnvelope
	envelope.D.Menu = sampleMenu()

	body, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode menu: %v", err)
	}

	plainPath := filepath.Join(dataDir, "menu.json")
	if err := os.WriteFile(plainPath, append(body, '\n'), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", plainPath, err)
	}
	fmt.Printf("Created %s with %d categories\n", plainPath, len(envelope.D.Menu))

	gzPath := filepath.Join(dataDir, "menu.json.gz")
	if err := writeGzip(gzPath, body); err != nil {
		log.Fatalf("Failed to write %s: %v", gzPath, err)
	}
	fmt.Printf("Created %s\n", gzPath)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func drinkChoices() model.ComboGroup {
	return model.ComboGroup{
		GroupName:     "İçecek",
		IsForcedGroup: true,
		MaxQuantity:   1,
		Items: []model.ComboItem{
			{MenuItemKey: "cola", MenuItemText: "Kola", ExtraPriceTakeOutTL: decimal.Zero},
			{MenuItemKey: "ayran", MenuItemText: "Ayran", ExtraPriceTakeOutTL: decimal.Zero},
			{MenuItemKey: "lemonade", MenuItemText: "Limonata", ExtraPriceTakeOutTL: price("7.5")},
		},
	}
}

func sideChoices() model.ComboGroup {
	return model.ComboGroup{
		GroupName:     "Yan Ürün",
		IsForcedGroup: true,
		MaxQuantity:   1,
		Items: []model.ComboItem{
			{MenuItemKey: "fries", MenuItemText: "Patates Kızartması", ExtraPriceTakeOutTL: decimal.Zero},
			{MenuItemKey: "onion-rings", MenuItemText: "Soğan Halkası", ExtraPriceTakeOutTL: price("10")},
		},
	}
}

func sauceChoices() model.ComboGroup {
	return model.ComboGroup{
		GroupName:   "Sos",
		MaxQuantity: 3,
		Items: []model.ComboItem{
			{MenuItemKey: "ketchup", MenuItemText: "Ketçap", ExtraPriceTakeOutTL: decimal.Zero},
			{MenuItemKey: "mayonnaise", MenuItemText: "Mayonez", ExtraPriceTakeOutTL: decimal.Zero},
			{MenuItemKey: "bbq", MenuItemText: "Barbekü Sos", ExtraPriceTakeOutTL: price("2.5")},
		},
	}
}

func sampleMenu() []model.RawCategory {
	return []model.RawCategory{
		{
			MenuGroupKey:  "menus",
			MenuGroupText: "Menüler",
			Items: []model.RawItem{
				{
					MenuItemKey:     "whopper-menu",
					MenuItemText:    "Whopper Menü",
					Description:     "Whopper, yan ürün ve içecek",
					TakeOutPriceTL:  price("185.5"),
					DeliveryPriceTL: price("195"),
					Combo:           []model.ComboGroup{drinkChoices(), sideChoices(), sauceChoices()},
					IsMainCombo:     true,
				},
				{
					MenuItemKey:     "spicy-chicken-menu",
					MenuItemText:    "Acılı Tavuk Menü",
					TakeOutPriceTL:  price("165"),
					DeliveryPriceTL: price("175"),
					Badges:          []string{"Acılı"},
					Combo:           []model.ComboGroup{drinkChoices(), sideChoices()},
					IsMainCombo:     true,
				},
			},
		},
		{
			MenuGroupKey:  "burgers",
			MenuGroupText: "Burgerler",
			Items: []model.RawItem{
				{
					MenuItemKey:     "cheeseburger",
					MenuItemText:    "Cheeseburger",
					Description:     "Çedar peynirli klasik burger",
					TakeOutPriceTL:  price("120"),
					DeliveryPriceTL: price("130"),
				},
				{
					MenuItemKey:     "veggie-burger",
					MenuItemText:    "Veggie Burger",
					TakeOutPriceTL:  price("115"),
					DeliveryPriceTL: price("125"),
					Badges:          []string{"Vejetaryen"},
				},
			},
		},
		{
			MenuGroupKey:  "drinks",
			MenuGroupText: "İçecekler",
			Items: []model.RawItem{
				{MenuItemKey: "cola", MenuItemText: "Kola", TakeOutPriceTL: price("30"), DeliveryPriceTL: price("35")},
				{MenuItemKey: "ayran", MenuItemText: "Ayran", TakeOutPriceTL: price("25"), DeliveryPriceTL: price("30")},
				{MenuItemKey: "lemonade", MenuItemText: "Limonata", TakeOutPriceTL: price("37.5"), DeliveryPriceTL: price("42.5")},
			},
		},
	}
}

func writeGzip(filePath string, body []byte) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if _, err := gzipWriter.Write(body); err != nil {
		return fmt.Errorf("failed to write menu: %w", err)
	}

	return gzipWriter.Close()
}
