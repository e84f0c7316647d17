package store

// ClientStore holds account-level settings; only the settlement currency is used here.
type ClientStore struct {
	currency *Value[string]
}

// NewClientStore creates a store with the given currency.
func NewClientStore(currency string) *ClientStore {
	return &ClientStore{currency: NewValue(currency)}
}

// Currency returns the active settlement currency.
func (s *ClientStore) Currency() string {
	return s.currency.Get()
}

// SetCurrency switches the settlement currency.
func (s *ClientStore) SetCurrency(currency string) {
	s.currency.Set(currency)
}

// OnCurrency subscribes to currency changes.
func (s *ClientStore) OnCurrency(fn func(string)) func() {
	return s.currency.Subscribe(fn)
}
