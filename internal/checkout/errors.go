package checkout

import "errors"

var (
	ErrEmptyCart    = errors.New("cart is empty, nothing to checkout")
	ErrNoValidItems = errors.New("no valid products found in cart")
)
