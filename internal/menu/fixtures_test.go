package menu

import (
	"kiosk/internal/model"

	"github.com/shopspring/decimal"
)

const sampleEnvelope = `{
  "d": {
    "Menu": [
      {
        "MenuGroupKey": "burgers",
        "MenuGroupText": "Burgerler",
        "Items": [
          {
            "MenuItemKey": "whopper-menu",
            "MenuItemText": "Whopper Menü",
            "Description": "Whopper, patates ve içecek",
            "TakeOutPrice_TL": 185.5,
            "DeliveryPrice_TL": 195,
            "Badges": ["Acılı"],
            "IsMainCombo": true,
            "Combo": [
              {
                "GroupName": "İçecek",
                "IsForcedGroup": true,
                "MaxQuantity": 1,
                "Items": [
                  {"MenuItemKey": "cola", "MenuItemText": "Kola", "ExtraPriceTakeOut_TL": 0},
                  {"MenuItemKey": "ayran", "MenuItemText": "Ayran", "ExtraPriceTakeOut_TL": 5}
                ]
              },
              {
                "GroupName": "Sos",
                "IsForcedGroup": false,
                "MaxQuantity": 0,
                "Items": []
              }
            ]
          },
          {
            "MenuItemKey": "veggie-burger",
            "MenuItemText": "Veggie Burger",
            "TakeOutPrice_TL": 120,
            "DeliveryPrice_TL": 130,
            "Badges": ["Vejetaryen"],
            "Combo": []
          }
        ]
      },
      {
        "MenuGroupKey": "drinks",
        "MenuGroupText": "İçecekler",
        "Items": [
          {
            "MenuItemKey": "cola",
            "MenuItemText": "Kola",
            "TakeOutPrice_TL": 30,
            "DeliveryPrice_TL": 35,
            "Badges": []
          }
        ]
      }
    ]
  }
}`

func rawMenu() []model.RawCategory {
	return []model.RawCategory{
		{
			MenuGroupKey:  "burgers",
			MenuGroupText: "Burgerler",
			Items: []model.RawItem{
				{
					MenuItemKey:    "whopper-menu",
					MenuItemText:   "Whopper Menü",
					Description:    "Whopper, patates ve içecek",
					TakeOutPriceTL: decimal.RequireFromString("185.5"),
					Badges:         []string{BadgeSpicy},
					Combo: []model.ComboGroup{
						{
							GroupName:     "İçecek",
							IsForcedGroup: true,
							MaxQuantity:   1,
							Items: []model.ComboItem{
								{MenuItemKey: "cola", MenuItemText: "Kola", ExtraPriceTakeOutTL: decimal.Zero},
								{MenuItemKey: "ayran", MenuItemText: "Ayran", ExtraPriceTakeOutTL: decimal.NewFromInt(5)},
							},
						},
					},
				},
				{
					MenuItemKey:    "veggie-burger",
					MenuItemText:   "Veggie Burger",
					TakeOutPriceTL: decimal.NewFromInt(120),
					Badges:         []string{BadgeVegetarian},
				},
			},
		},
		{
			MenuGroupKey:  "drinks",
			MenuGroupText: "İçecekler",
			Items: []model.RawItem{
				{MenuItemKey: "cola", MenuItemText: "Kola", TakeOutPriceTL: decimal.NewFromInt(30)},
			},
		},
	}
}
