package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"kiosk/internal/cart"
	"kiosk/internal/combo"
	"kiosk/internal/events"
	"kiosk/internal/middleware"
	"kiosk/internal/model"
	"kiosk/internal/receipt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultIdleTimeout is how long an untouched kiosk session is kept.
const DefaultIdleTimeout = 15 * time.Minute

// kioskSession is the state of one customer at one kiosk.
type kioskSession struct {
	mu        sync.Mutex
	id        uuid.UUID
	cart      *cart.Cart
	config    *combo.Session
	order     *model.Order
	receipt   string
	total     decimal.Decimal
	published bool
}

// orderService implements OrderService.
type orderService struct {
	menu        MenuStore
	formatter   *receipt.Formatter
	printer     receipt.Printer
	publisher   events.Publisher
	idleTimeout time.Duration
	now         func() time.Time
	logger      zerolog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*kioskSession
	lastSeen map[uuid.UUID]time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	menu MenuStore,
	formatter *receipt.Formatter,
	printer receipt.Printer,
	publisher events.Publisher,
	idleTimeout time.Duration,
	logger zerolog.Logger,
) OrderService {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	if printer == nil {
		printer = receipt.NewDisabledPrinter()
	}

	return &orderService{
		menu:        menu,
		formatter:   formatter,
		printer:     printer,
		publisher:   publisher,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger.With().Str("service", "order").Logger(),
		sessions:    make(map[uuid.UUID]*kioskSession),
		lastSeen:    make(map[uuid.UUID]time.Time),
	}
}

// StartSession opens an empty kiosk session.
func (s *orderService) StartSession(ctx context.Context) (*model.CartView, error) {
	ks := &kioskSession{
		id:   uuid.New(),
		cart: cart.New(),
	}

	s.mu.Lock()
	s.evictIdleLocked()
	s.sessions[ks.id] = ks
	s.lastSeen[ks.id] = s.now()
	s.mu.Unlock()

	s.logger.Info().Str("session_id", ks.id.String()).Msg("kiosk session started")

	ks.mu.Lock()
	defer ks.mu.Unlock()
	return s.cartView(ks), nil
}

// EndSession drops a session and anything in progress.
func (s *orderService) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return model.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.lastSeen, sessionID)

	s.logger.Info().Str("session_id", sessionID.String()).Msg("kiosk session ended")
	return nil
}

// GetCart returns the priced cart of a session.
func (s *orderService) GetCart(ctx context.Context, sessionID uuid.UUID) (*model.CartView, error) {
	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	return s.cartView(ks), nil
}

// AddItem adds a product directly. Combo selections are replayed through a
// fresh configuration so the same limits apply as in the interactive flow.
func (s *orderService) AddItem(ctx context.Context, sessionID uuid.UUID, req *model.AddItemRequest) (*model.CartView, error) {
	if req == nil || req.ProductID == "" {
		return nil, model.ErrMissingProductID
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}

	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.order != nil {
		return nil, model.ErrSessionCheckedOut
	}

	product, ok := s.menu.Product(req.ProductID)
	if !ok {
		return nil, model.ErrProductNotFound
	}

	var selections model.ComboSelections
	if product.IsCombo {
		cs, err := combo.NewSession(product)
		if err != nil {
			return nil, err
		}
		if err := cs.Apply(req.Selections); err != nil {
			s.logger.Debug().Err(err).Str("product_id", product.ID).Msg("combo selections rejected")
			return nil, err
		}
		if selections, err = cs.Commit(); err != nil {
			return nil, err
		}
	} else if len(req.Selections) > 0 {
		return nil, model.ErrInvalidCartItem
	}

	if err := ks.cart.AddItemQuantity(product, selections, quantity); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", sessionID.String()).
		Str("product_id", product.ID).
		Int("quantity", quantity).
		Msg("item added to cart")

	return s.cartView(ks), nil
}

// UpdateQuantity changes the quantity of a cart line; 0 removes it.
func (s *orderService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, index, quantity int) (*model.CartView, error) {
	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.order != nil {
		return nil, model.ErrSessionCheckedOut
	}
	if err := ks.cart.UpdateQuantity(index, quantity); err != nil {
		return nil, err
	}

	return s.cartView(ks), nil
}

// RemoveItem removes a cart line.
func (s *orderService) RemoveItem(ctx context.Context, sessionID uuid.UUID, index int) (*model.CartView, error) {
	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.order != nil {
		return nil, model.ErrSessionCheckedOut
	}
	if err := ks.cart.Remove(index); err != nil {
		return nil, err
	}

	return s.cartView(ks), nil
}

// StartConfiguration opens a combo configuration for a product.
func (s *orderService) StartConfiguration(ctx context.Context, sessionID uuid.UUID, productID string) (*model.ConfigurationView, error) {
	if productID == "" {
		return nil, model.ErrMissingProductID
	}

	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.order != nil {
		return nil, model.ErrSessionCheckedOut
	}

	product, ok := s.menu.Product(productID)
	if !ok {
		return nil, model.ErrProductNotFound
	}

	cs, err := combo.NewSession(product)
	if err != nil {
		return nil, err
	}

	if ks.config != nil {
		s.logger.Debug().
			Str("session_id", sessionID.String()).
			Str("product_id", ks.config.Product().ID).
			Msg("discarding open combo configuration")
	}
	ks.config = cs

	return configurationView(cs), nil
}

// GetConfiguration returns the open combo configuration.
func (s *orderService) GetConfiguration(ctx context.Context, sessionID uuid.UUID) (*model.ConfigurationView, error) {
	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.config == nil {
		return nil, model.ErrNoActiveConfiguration
	}
	return configurationView(ks.config), nil
}

// SelectComboItem sets the quantity of one item in the open configuration.
func (s *orderService) SelectComboItem(ctx context.Context, sessionID uuid.UUID, choice model.ComboChoice) (*model.ConfigurationView, error) {
	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.order != nil {
		return nil, model.ErrSessionCheckedOut
	}
	if ks.config == nil {
		return nil, model.ErrNoActiveConfiguration
	}

	if _, err := ks.config.Select(choice.GroupName, choice.ItemKey, choice.Quantity); err != nil {
		s.logger.Debug().
			Err(err).
			Str("group", choice.GroupName).
			Str("item", choice.ItemKey).
			Int("quantity", choice.Quantity).
			Msg("combo selection rejected")
		return nil, err
	}

	return configurationView(ks.config), nil
}

// CommitConfiguration adds the configured combo to the cart and closes the
// configuration.
func (s *orderService) CommitConfiguration(ctx context.Context, sessionID uuid.UUID) (*model.CartView, error) {
	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.order != nil {
		return nil, model.ErrSessionCheckedOut
	}
	if ks.config == nil {
		return nil, model.ErrNoActiveConfiguration
	}

	if !ks.config.IsComplete() {
		return nil, model.ErrIncompleteCombo
	}

	product := ks.config.Product()
	if err := ks.cart.AddItem(product, ks.config.Selections()); err != nil {
		return nil, err
	}
	// the cart line is in place, so the commit itself cannot fail
	_, _ = ks.config.Commit()
	ks.config = nil

	s.logger.Debug().
		Str("session_id", sessionID.String()).
		Str("product_id", product.ID).
		Msg("combo added to cart")

	return s.cartView(ks), nil
}

// DiscardConfiguration drops the open configuration without touching the cart.
func (s *orderService) DiscardConfiguration(ctx context.Context, sessionID uuid.UUID) error {
	ks, err := s.session(sessionID)
	if err != nil {
		return err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.config == nil {
		return model.ErrNoActiveConfiguration
	}
	ks.config = nil
	return nil
}

// Checkout places the order on first call and prints the receipt on every
// call. The cart is left as it was.
func (s *orderService) Checkout(ctx context.Context, sessionID uuid.UUID) (*model.CheckoutResponse, error) {
	ks, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.order == nil {
		if ks.cart.Len() == 0 {
			return nil, model.ErrEmptyCart
		}

		id := uuid.New()
		ks.order = &model.Order{
			ID:        id,
			Number:    orderNumber(id),
			SessionID: ks.id,
			PlacedAt:  s.now(),
		}
		ks.config = nil
		ks.total = ks.cart.Total()
		ks.receipt = s.formatter.Generate(ks.cart.Items(), ks.total, receipt.Order{
			Number:   ks.order.Number,
			PlacedAt: ks.order.PlacedAt,
		})

		s.logger.Info().
			Str("session_id", sessionID.String()).
			Str("order_id", id.String()).
			Str("order_number", ks.order.Number).
			Str("total", ks.total.StringFixed(2)).
			Int("lines", ks.cart.Len()).
			Msg("order placed")
	} else {
		s.logger.Info().
			Str("session_id", sessionID.String()).
			Str("order_number", ks.order.Number).
			Msg("reprinting receipt")
	}

	if !ks.published {
		if err := s.publisher.PublishOrderPlaced(ctx, s.orderPlaced(ks), events.Metadata{
			CorrelationID: middleware.GetCorrelationID(ctx),
		}); err != nil {
			s.logger.Warn().Err(err).Str("order_number", ks.order.Number).Msg("failed to publish order placed event")
		} else {
			ks.published = true
		}
	}

	resp := &model.CheckoutResponse{
		OrderID:     ks.order.ID,
		OrderNumber: ks.order.Number,
		Total:       ks.total,
		Receipt:     ks.receipt,
		PlacedAt:    ks.order.PlacedAt,
	}

	if err := s.printer.Print(ctx, ks.receipt); err != nil {
		s.logger.Warn().Err(err).Str("order_number", ks.order.Number).Msg("receipt printing failed")
		resp.PrintError = err.Error()
	} else {
		resp.Printed = true
	}

	return resp, nil
}

// session looks up a live session and marks it as used.
func (s *orderService) session(id uuid.UUID) (*kioskSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictIdleLocked()

	ks, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	s.lastSeen[id] = s.now()
	return ks, nil
}

// evictIdleLocked must be called with mu held.
func (s *orderService) evictIdleLocked() {
	now := s.now()
	for id, seen := range s.lastSeen {
		if now.Sub(seen) > s.idleTimeout {
			delete(s.sessions, id)
			delete(s.lastSeen, id)
			s.logger.Info().Str("session_id", id.String()).Msg("idle kiosk session evicted")
		}
	}
}

// cartView must be called with ks.mu held.
func (s *orderService) cartView(ks *kioskSession) *model.CartView {
	items := ks.cart.Items()
	view := &model.CartView{
		SessionID: ks.id,
		Items:     make([]model.CartLineView, len(items)),
		Total:     cart.Total(items),
	}
	for i, item := range items {
		view.Items[i] = model.CartLineView{
			Index:           i,
			Product:         item.Product,
			Quantity:        item.Quantity,
			ComboSelections: item.ComboSelections,
			UnitPrice:       cart.UnitPrice(item),
			LineTotal:       cart.LineTotal(item),
		}
	}
	if ks.order != nil {
		view.OrderNumber = ks.order.Number
	}
	return view
}

func (s *orderService) orderPlaced(ks *kioskSession) events.OrderPlaced {
	items := ks.cart.Items()
	event := events.OrderPlaced{
		OrderID:     ks.order.ID.String(),
		OrderNumber: ks.order.Number,
		SessionID:   ks.id.String(),
		Total:       ks.total,
		Items:       make([]events.OrderLine, len(items)),
		PlacedAt:    ks.order.PlacedAt,
	}

	for i, item := range items {
		line := events.OrderLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: cart.UnitPrice(item),
			LineTotal: cart.LineTotal(item),
		}
		// product group order keeps the event stable
		for _, group := range item.Product.Combo {
			for _, sel := range item.ComboSelections[group.GroupName] {
				line.Selections = append(line.Selections, events.Selection{
					GroupName: group.GroupName,
					ItemKey:   sel.Item.MenuItemKey,
					Quantity:  sel.Quantity,
				})
			}
		}
		event.Items[i] = line
	}

	return event
}

func configurationView(cs *combo.Session) *model.ConfigurationView {
	groups := cs.Groups()
	selections := cs.Selections()

	view := &model.ConfigurationView{
		ProductID:  cs.Product().ID,
		State:      string(cs.State()),
		Complete:   cs.IsComplete(),
		Groups:     make([]model.GroupProgress, len(groups)),
		Selections: selections,
		Extra:      cs.Extra(),
		UnitPrice:  cs.UnitPrice(),
	}
	for i, group := range groups {
		view.Groups[i] = model.GroupProgress{
			GroupName:     group.GroupName,
			IsForcedGroup: group.IsForcedGroup,
			MaxQuantity:   group.MaxQuantity,
			Selected:      combo.GroupTotal(selections, group.GroupName),
			Progress:      cs.Progress(group.GroupName),
		}
	}
	return view
}

// orderNumber derives the short number called out at the counter.
func orderNumber(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
}
