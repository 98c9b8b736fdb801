package handlers

// HandlerBundle groups the endpoint handlers handed to the router.
type HandlerBundle struct {
	Auth     *AuthHandler
	User     *UserHandler
	Provider *ProviderHandler
	Service  *ServiceHandler
	Booking  *BookingHandler
	Review   *ReviewHandler
	Admin    *AdminHandler
}
