package menu

import (
	"math/rand/v2"
	"sync"

	"kiosk/internal/model"
)

var categoryImages = []string{
	"/images/categories/burgers.jpg",
	"/images/categories/chicken.jpg",
	"/images/categories/sides.jpg",
	"/images/categories/drinks.jpg",
	"/images/categories/desserts.jpg",
}

var productImages = []string{
	"/images/products/product-1.jpg",
	"/images/products/product-2.jpg",
	"/images/products/product-3.jpg",
	"/images/products/product-4.jpg",
	"/images/products/product-5.jpg",
	"/images/products/product-6.jpg",
}

var generatedDescriptions = []string{
	"Freshly prepared to order with quality ingredients.",
	"A house favourite, served hot.",
	"Made with locally sourced ingredients.",
	"Our classic recipe, loved by regulars.",
}

// Enricher fills cosmetic display fields that upstream does not provide.
// Values are random filler and carry no meaning.
type Enricher struct {
	mu           sync.Mutex
	rng          *rand.Rand
	nextCategory int
	nextProduct  int
}

// NewEnricher creates an Enricher whose output is reproducible for a seed.
func NewEnricher(seed uint64) *Enricher {
	return &Enricher{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// CategoryImage returns the next category image in rotation.
func (e *Enricher) CategoryImage() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	image := categoryImages[e.nextCategory%len(categoryImages)]
	e.nextCategory++
	return image
}

// Product sets the image and display hints of p, and a description when
// upstream sent none.
func (e *Enricher) Product(p *model.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p.Image = productImages[e.nextProduct%len(productImages)]
	e.nextProduct++

	if p.Description == "" {
		p.Description = generatedDescriptions[e.rng.IntN(len(generatedDescriptions))]
		p.Display.DescriptionGenerated = true
	}

	p.Display.Rating = 4.9
	p.Display.Calories = 200 + e.rng.IntN(600)
	p.Display.PrepTimeMinutes = 15 + e.rng.IntN(20)
}
