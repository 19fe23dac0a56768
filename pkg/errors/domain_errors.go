package errors

var (
	// Identity / device registry
	ErrIdentityNotFound   = NotFound("identity not found")
	ErrNoDevice           = NotFound("user has not yet registered this device")
	ErrDeviceExists       = AlreadyExists("a device has already been created for this address")
	ErrDeviceLimitReached = ResourceExhausted("you have reached the maximum number of devices")
	ErrDeviceChanged      = FailedPrecondition("device registration id does not match the registered device")

	// Prekey ledger
	ErrPreKeyLimitReached = ResourceExhausted("you have reached the maximum number of prekeys")
	ErrNoPreKeysAvailable = FailedPrecondition("no prekeys are available for the requested device")
	ErrDuplicatePreKeyID  = InvalidArg("duplicate one-time prekey id")

	// Message relay
	ErrNoRecipient       = NotFound("recipient not found")
	ErrNoRecipientDevice = NotFound("recipient has no registered device")
	ErrRecipientChanged  = FailedPrecondition("recipient registration id has changed")
	ErrMessageNotFound   = Forbidden("one of the messages you are trying to delete does not exist")
	ErrNotMessageOwner   = Forbidden("you do not own one of the messages you are trying to delete")

	// Validation
	ErrInvalidIdentityKey   = InvalidArg("identity key must be exactly 32 bytes")
	ErrInvalidSignedPreKey  = InvalidArg("signed prekey public key must be exactly 32 bytes")
	ErrInvalidSignature     = InvalidArg("signed prekey signature must be exactly 64 bytes")
	ErrInvalidOneTimePreKey = InvalidArg("one-time prekey public key must be exactly 32 bytes")
	ErrInvalidKeyID         = InvalidArg("key id must be between 0 and 999999")
	ErrInvalidRegistration  = InvalidArg("registration id must be between 0 and 999999")
	ErrInvalidAddress       = InvalidArg("device address must be 1-100 characters")
	ErrContentTooLarge      = InvalidArg("message content exceeds the maximum allowed size")
	ErrEmptyContent         = InvalidArg("message content must not be empty")
)

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "device registration failed", cause)
}

func ErrPreKeyBundleFailed(cause error) error {
	return Wrap(CodeFailedPrecondition, "failed to fetch prekey bundle", cause)
}
