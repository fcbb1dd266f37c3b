package common

const (
	KEY_PRICE_SERIES = "price_series:%s:%s"
)
