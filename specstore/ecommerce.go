package specstore

// ecommerceFallback is the hard-coded GA4 standard ecommerce event
// table that Store.EventDefinition returns whenever the development
// guide does not document an event by name — the engine's last line of
// defense against an undocumented but GA4-standard event name slipping
// through as "unknown" at Stage 1.
//
// Page-type constraints here are intentionally permissive: a
// container's own trigger filters (container.Model.EventPageMappings)
// take precedence when their mapping confidence reaches the gating
// engine's GTM threshold (page-type equality or URL regex filters). An
// unconditional trigger falls below it, and then the page types listed
// here decide.
var ecommerceFallback = map[string]*ParsedEventDefinition{
	"view_item_list": {
		EventName:        "view_item_list",
		Required:         false,
		FiringCondition:  "a list of items is rendered (category, search results, recommendations)",
		AllowedPageTypes: []string{"PRODUCT_LIST", "SEARCH_RESULT", "MAIN"},
		AutoFire:         true,
	},
	"select_item": {
		EventName:          "select_item",
		FiringCondition:    "a user clicks an item within a list",
		AllowedPageTypes:   []string{"PRODUCT_LIST", "SEARCH_RESULT", "MAIN"},
		UserActionType:     "click",
		RequiresUserAction: true,
	},
	"view_item": {
		EventName:        "view_item",
		Required:         true,
		FiringCondition:  "a product detail page is rendered",
		AllowedPageTypes: []string{"PRODUCT_DETAIL"},
		AutoFire:         true,
	},
	"add_to_wishlist": {
		EventName:          "add_to_wishlist",
		FiringCondition:    "a user adds an item to a wishlist",
		AllowedPageTypes:   []string{"PRODUCT_DETAIL", "PRODUCT_LIST"},
		UserActionType:     "click",
		RequiresUserAction: true,
	},
	"add_to_cart": {
		EventName:          "add_to_cart",
		Required:           true,
		FiringCondition:    "a user adds an item to the cart",
		AllowedPageTypes:   []string{"PRODUCT_DETAIL", "PRODUCT_LIST", "CART"},
		UserActionType:     "click",
		RequiresUserAction: true,
	},
	"remove_from_cart": {
		EventName:          "remove_from_cart",
		FiringCondition:    "a user removes an item from the cart",
		AllowedPageTypes:   []string{"CART"},
		UserActionType:     "click",
		RequiresUserAction: true,
	},
	"view_cart": {
		EventName:        "view_cart",
		FiringCondition:  "the cart page is rendered",
		AllowedPageTypes: []string{"CART"},
		AutoFire:         true,
	},
	"begin_checkout": {
		EventName:        "begin_checkout",
		Required:         true,
		FiringCondition:  "the checkout flow is entered",
		AllowedPageTypes: []string{"CART", "ORDER"},
	},
	"add_shipping_info": {
		EventName:        "add_shipping_info",
		FiringCondition:  "shipping information is submitted during checkout",
		AllowedPageTypes: []string{"ORDER"},
	},
	"add_payment_info": {
		EventName:        "add_payment_info",
		FiringCondition:  "payment information is submitted during checkout",
		AllowedPageTypes: []string{"ORDER"},
	},
	"purchase": {
		EventName:        "purchase",
		Required:         true,
		FiringCondition:  "an order is confirmed",
		AllowedPageTypes: []string{"ORDER_COMPLETE"},
		AutoFire:         true,
	},
	"refund": {
		EventName:        "refund",
		FiringCondition:  "an order or line item is refunded",
		AllowedPageTypes: []string{"ORDER_COMPLETE", "MY"},
	},
	"search": {
		EventName:          "search",
		FiringCondition:    "a user submits a search query",
		AllowedPageTypes:   []string{"SEARCH_RESULT", "MAIN"},
		UserActionType:     "submit",
		RequiresUserAction: true,
	},
}

// EcommerceFallback returns the hard-coded standard definition for a
// GA4 ecommerce event name, if one exists.
func EcommerceFallback(eventName string) (*ParsedEventDefinition, bool) {
	def, ok := ecommerceFallback[eventName]
	return def, ok
}
