package cart

import "storefront/internal/domain"

// ActionType names a cart transition. The values match the storefront client.
type ActionType string

const (
	ActionAdd       ActionType = "ADD_TO_CART"
	ActionRemove    ActionType = "REMOVE_FROM_CART"
	ActionIncrement ActionType = "INCREMENT"
	ActionDecrement ActionType = "DECREMENT"
	ActionSet       ActionType = "SET_CART"
	ActionClear     ActionType = "CLEAR_CART"
)

// Action is one cart transition. Which fields are read depends on Type.
type Action struct {
	Type      ActionType       `json:"type"`
	Item      *domain.LineItem `json:"item,omitempty"`
	ProductID int64            `json:"productId,omitempty"`
	Quantity  int              `json:"quantity,omitempty"`
	Cart      domain.Cart      `json:"cart,omitempty"`
}

// AddToCart merges item into the cart, adding quantity units.
func AddToCart(item domain.LineItem, quantity int) Action {
	return Action{Type: ActionAdd, Item: &item, Quantity: quantity}
}

// RemoveFromCart drops the line for productID.
func RemoveFromCart(productID int64) Action {
	return Action{Type: ActionRemove, ProductID: productID}
}

// Increment adds one unit to an existing line.
func Increment(productID int64) Action {
	return Action{Type: ActionIncrement, ProductID: productID}
}

// Decrement removes one unit, never going below one.
func Decrement(productID int64) Action {
	return Action{Type: ActionDecrement, ProductID: productID}
}

// SetCart replaces the whole cart, as when hydrating from storage.
func SetCart(cart domain.Cart) Action {
	return Action{Type: ActionSet, Cart: cart}
}

// Clear empties the cart.
func Clear() Action {
	return Action{Type: ActionClear}
}

// Apply returns the cart that results from a. It never modifies state and
// never fails: unknown product ids and unknown action types leave the cart
// as it was.
func Apply(state domain.Cart, a Action) domain.Cart {
	switch a.Type {
	case ActionAdd:
		if a.Item == nil {
			return state.Clone()
		}
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		next := state.Clone()
		if i := next.Find(a.Item.ProductID); i >= 0 {
			next[i].Quantity += qty
			return next
		}
		line := *a.Item
		line.Quantity = qty
		return append(next, line)

	case ActionRemove:
		next := make(domain.Cart, 0, len(state))
		for _, line := range state {
			if line.ProductID != a.ProductID {
				next = append(next, line)
			}
		}
		return next

	case ActionIncrement:
		next := state.Clone()
		if i := next.Find(a.ProductID); i >= 0 {
			next[i].Quantity++
		}
		return next

	case ActionDecrement:
		next := state.Clone()
		if i := next.Find(a.ProductID); i >= 0 && next[i].Quantity > 1 {
			next[i].Quantity--
		}
		return next

	case ActionSet:
		return Normalize(a.Cart)

	case ActionClear:
		return domain.Cart{}

	default:
		return state.Clone()
	}
}

// Normalize drops lines with a quantity below 1 and folds duplicate product
// ids into the first occurrence.
func Normalize(in domain.Cart) domain.Cart {
	out := make(domain.Cart, 0, len(in))
	for _, line := range in {
		if line.Quantity < 1 {
			continue
		}
		if i := out.Find(line.ProductID); i >= 0 {
			out[i].Quantity += line.Quantity
			continue
		}
		out = append(out, line)
	}
	return out
}
