package shared

import "errors"

// Domain-specific errors
var (
	// Item errors
	ErrItemNotFound         = errors.New("item not found")
	ErrItemClosed           = errors.New("item is closed and no longer accepts bids")
	ErrItemNameRequired     = errors.New("item name is required")
	ErrInvalidStartingPrice = errors.New("starting price must be greater than 0")

	// Bid errors
	ErrBidAmountTooLow        = errors.New("bid amount must be higher than current highest bid")
	ErrBidAmountInvalid       = errors.New("bid amount must be greater than 0")
	ErrBidAmountBelowStarting = errors.New("bid amount must be higher than starting price")
	ErrBidderNameRequired     = errors.New("bidder name is required")
	ErrBidderEmailRequired    = errors.New("bidder email is required")
	ErrNoBidsFound            = errors.New("no bids found")

	// Image errors
	ErrImageNotFound         = errors.New("image not found")
	ErrImageFilenameRequired = errors.New("image filename is required")

	// Admin errors
	ErrUnauthorized = errors.New("invalid or missing admin credential")

	// Validation errors
	ErrInvalidRequest = errors.New("invalid request")

	// Database errors
	ErrDatabaseConnection  = errors.New("database connection failed")
	ErrDatabaseQuery       = errors.New("database query failed")
	ErrDatabaseTransaction = errors.New("database transaction failed")

	// Mailer errors (never surfaced past the notifier boundary)
	ErrMailerNotConfigured = errors.New("smtp settings incomplete, mailer disabled")
	ErrMailerSendFailed    = errors.New("failed to send notification email")
)
